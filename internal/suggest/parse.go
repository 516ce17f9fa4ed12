package suggest

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	suggestionElement = "suggestion"
	dataAttribute     = "data"
)

// ErrMalformedPayload wraps XML syntax errors found while reading a payload.
var ErrMalformedPayload = errors.New("malformed suggestion payload")

// ParseSuggestions extracts the data attribute of every suggestion element in
// document order. Records without a usable data attribute are skipped. On a
// syntax error the records read so far are returned together with an error
// wrapping ErrMalformedPayload.
func ParseSuggestions(payload []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(payload))
	dec.CharsetReader = charsetReader

	var out []string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != suggestionElement {
			continue
		}
		if value, ok := dataValue(start.Attr); ok {
			out = append(out, value)
		}
	}
}

func dataValue(attrs []xml.Attr) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Local != dataAttribute {
			continue
		}
		if strings.TrimSpace(attr.Value) == "" {
			return "", false
		}
		return attr.Value, true
	}
	return "", false
}

// charsetReader lets non UTF-8 payloads (the service answers in the
// requested locale's legacy charset) decode instead of failing outright.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
