package suggest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/suggestbox/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

const testEndpoint = "http://suggest.test/complete?hl={locale}&q={query}"

type submitMsg struct{ text string }

type fakeEditor struct {
	text      []rune
	caret     int
	anchor    int
	submitted []string
}

func (f *fakeEditor) Text() string { return string(f.text) }

func (f *fakeEditor) SetText(text string) {
	f.text = []rune(text)
	f.caret = len(f.text)
	f.anchor = f.caret
}

func (f *fakeEditor) Caret() int { return f.caret }

func (f *fakeEditor) SetSelection(start, end int) {
	f.anchor = start
	f.caret = end
}

func (f *fakeEditor) selected() string {
	start, end := f.anchor, f.caret
	if start > end {
		start, end = end, start
	}
	return string(f.text[start:end])
}

func (f *fakeEditor) Submit() tea.Cmd {
	text := f.Text()
	f.submitted = append(f.submitted, text)
	return func() tea.Msg { return submitMsg{text: text} }
}

// typed simulates the user typing text with the caret at the end.
func (f *fakeEditor) typed(text string) {
	f.SetText(text)
}

type fakeList struct {
	shown       []string
	visible     bool
	highlighted int
	pageSize    int
	shows       int
}

func (l *fakeList) ShowCandidates(c []string) {
	l.shown = append([]string(nil), c...)
	l.visible = true
	l.shows++
}

func (l *fakeList) Hide() {
	l.visible = false
	l.highlighted = -1
}

func (l *fakeList) Highlight(i int) { l.highlighted = i }

func (l *fakeList) PageSize() int { return l.pageSize }

// fakeTransport answers from a table keyed by the q parameter.
type fakeTransport struct {
	payloads map[string][]byte
	err      error
	urls     []string
}

func (f *fakeTransport) Get(_ context.Context, raw string) ([]byte, error) {
	f.urls = append(f.urls, raw)
	if f.err != nil {
		return nil, f.err
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	payload, ok := f.payloads[u.Query().Get("q")]
	if !ok {
		return nil, errors.New("no payload")
	}
	return payload, nil
}

func toolbarPayload(words ...string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><toplevel>`)
	for _, w := range words {
		fmt.Fprintf(&b, `<CompleteSuggestion><suggestion data="%s"/></CompleteSuggestion>`, w)
	}
	b.WriteString(`</toplevel>`)
	return []byte(b.String())
}

type testRig struct {
	engine    *Engine
	editor    *fakeEditor
	list      *fakeList
	transport *fakeTransport
}

func newTestRig(payloads map[string][]byte) *testRig {
	tr := &fakeTransport{payloads: payloads}
	ed := &fakeEditor{}
	list := &fakeList{highlighted: -1}
	fetcher := NewFetcher(tr, testEndpoint, 0)
	return &testRig{
		engine:    NewEngine(ed, list, fetcher, Options{Locale: "en_GB"}),
		editor:    ed,
		list:      list,
		transport: tr,
	}
}

// dispatch types text, lets the debounce fire and returns the fetch command
// without running it.
func (r *testRig) dispatch(t *testing.T, text string) tea.Cmd {
	t.Helper()
	r.editor.typed(text)
	if cmd := r.engine.TextEdited(); cmd == nil {
		t.Fatalf("expected debounce command")
	}
	handled, cmd := r.engine.Update(debounceMsg{tag: r.engine.scheduler.tag})
	if !handled {
		t.Fatalf("expected debounce message to be handled")
	}
	return cmd
}

// suggest runs a full edit -> fire -> fetch -> apply cycle.
func (r *testRig) suggest(t *testing.T, text string) {
	t.Helper()
	cmd := r.dispatch(t, text)
	if cmd == nil {
		t.Fatalf("expected fetch command for %q", text)
	}
	r.apply(t, cmd)
}

func (r *testRig) apply(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	msg, ok := cmd().(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg")
	}
	if handled, _ := r.engine.Update(msg); !handled {
		t.Fatalf("expected result to be handled")
	}
}

func (r *testRig) key(t *testing.T, msg tea.KeyMsg) (bool, tea.Cmd) {
	t.Helper()
	return r.engine.Update(msg)
}

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "suggest-test")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "suggest.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
