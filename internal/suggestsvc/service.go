// Package suggestsvc is a local suggestion service that answers in the same
// toolbar XML document format as the remote endpoint. It backs -offline mode
// and the end-to-end tests.
package suggestsvc

import (
	"bufio"
	_ "embed"
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/atomicstack/suggestbox/internal/logging"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultLimit caps the number of candidates per response.
const DefaultLimit = 10

//go:embed words.txt
var defaultWords string

// DefaultWords returns the built-in vocabulary.
func DefaultWords() []string {
	words, _ := readWords(bufio.NewScanner(strings.NewReader(defaultWords)))
	return words
}

// LoadWords reads a vocabulary file: one entry per line, blank lines and
// lines starting with # ignored.
func LoadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	words, err := readWords(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	return words, nil
}

func readWords(sc *bufio.Scanner) ([]string, error) {
	var words []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, sc.Err()
}

// Service answers suggestion queries from a fixed vocabulary. Prefix matches
// come first in vocabulary order, followed by fuzzy matches ranked by
// distance.
type Service struct {
	words []string
	trie  *patricia.Trie
	limit int
}

// New indexes words. Duplicates (case-insensitive) keep their first position.
// limit <= 0 selects DefaultLimit.
func New(words []string, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s := &Service{trie: patricia.NewTrie(), limit: limit}
	for _, w := range words {
		if s.trie.Insert(patricia.Prefix(strings.ToLower(w)), len(s.words)) {
			s.words = append(s.words, w)
		}
	}
	return s
}

// Len reports the vocabulary size.
func (s *Service) Len() int {
	return len(s.words)
}

// Suggest returns up to limit candidates for query.
func (s *Service) Suggest(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var prefixed []int
	seen := make(map[int]bool)
	err := s.trie.VisitSubtree(patricia.Prefix(strings.ToLower(query)), func(_ patricia.Prefix, item patricia.Item) error {
		idx := item.(int)
		prefixed = append(prefixed, idx)
		seen[idx] = true
		return nil
	})
	if err != nil {
		logging.Errorf("suggestsvc: prefix search for %q: %v", query, err)
	}
	sort.Ints(prefixed)

	out := make([]string, 0, s.limit)
	for _, idx := range prefixed {
		if len(out) == s.limit {
			return out
		}
		out = append(out, s.words[idx])
	}

	ranks := fuzzy.RankFindNormalizedFold(query, s.words)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	for _, r := range ranks {
		if len(out) == s.limit {
			break
		}
		if seen[r.OriginalIndex] {
			continue
		}
		seen[r.OriginalIndex] = true
		out = append(out, r.Target)
	}
	return out
}

type toplevel struct {
	XMLName xml.Name             `xml:"toplevel"`
	Items   []completeSuggestion `xml:"CompleteSuggestion"`
}

type completeSuggestion struct {
	Suggestion struct {
		Data string `xml:"data,attr"`
	} `xml:"suggestion"`
}

// ServeHTTP answers GET requests carrying the query in q. The hl parameter is
// accepted and ignored.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	doc := toplevel{}
	for _, c := range s.Suggest(r.URL.Query().Get("q")) {
		var item completeSuggestion
		item.Suggestion.Data = c
		doc.Items = append(doc.Items, item)
	}
	body, err := xml.Marshal(doc)
	if err != nil {
		logging.Errorf("suggestsvc: encode response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
