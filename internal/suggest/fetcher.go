package suggest

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/suggestbox/internal/logging/events"
	"github.com/atomicstack/suggestbox/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
)

// Transport fetches a raw payload. *transport.Client satisfies it.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Fetcher dispatches queries and owns the generation counter.
type Fetcher struct {
	transport  Transport
	endpoint   string
	timeout    time.Duration
	generation uint64
}

// NewFetcher builds a fetcher for the endpoint template (see
// transport.BuildURL). An empty endpoint selects transport.DefaultEndpoint;
// timeout <= 0 means requests are bounded only by the transport.
func NewFetcher(t Transport, endpoint string, timeout time.Duration) *Fetcher {
	if endpoint == "" {
		endpoint = transport.DefaultEndpoint
	}
	return &Fetcher{transport: t, endpoint: endpoint, timeout: timeout}
}

// Endpoint returns the URL template in use.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Current returns the generation of the most recent dispatch, 0 before any.
func (f *Fetcher) Current() uint64 {
	return f.generation
}

// IsCurrent reports whether generation belongs to the most recent dispatch.
func (f *Fetcher) IsCurrent(generation uint64) bool {
	return generation != 0 && generation == f.generation
}

// Dispatch assigns the next generation and returns the query together with
// the command that performs the fetch. The generation is final before the
// command runs.
func (f *Fetcher) Dispatch(text, locale string, caret int) (Query, tea.Cmd) {
	f.generation++
	q := Query{Text: text, Locale: locale, Generation: f.generation, Caret: caret}
	events.Suggest.Dispatch(q.Generation, q.Text, q.Locale)

	url := transport.BuildURL(f.endpoint, locale, text)
	t := f.transport
	timeout := f.timeout
	return q, func() tea.Msg {
		return fetch(t, timeout, q, url)
	}
}

func fetch(t Transport, timeout time.Duration, q Query, url string) ResultMsg {
	if t == nil {
		return ResultMsg{Query: q, Err: fmt.Errorf("no transport configured")}
	}
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	payload, err := t.Get(ctx, url)
	if err != nil {
		return ResultMsg{Query: q, Err: fmt.Errorf("fetch suggestions for %q: %w", q.Text, err)}
	}
	candidates, err := ParseSuggestions(payload)
	if err != nil {
		return ResultMsg{Query: q, Candidates: candidates, Err: fmt.Errorf("parse suggestions for %q: %w", q.Text, err)}
	}
	return ResultMsg{Query: q, Candidates: candidates}
}
