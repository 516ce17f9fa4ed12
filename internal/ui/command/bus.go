package command

import (
	"strings"

	"github.com/atomicstack/suggestbox/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler acts on a submitted query.
type Handler func(query string) error

// SubmittedMsg reports the outcome of a submission.
type SubmittedMsg struct {
	Query string
	Err   error
}

// Bus coordinates query submissions.
type Bus struct {
	handler Handler
}

// New initialises a bus. A nil handler accepts every query.
func New(handler Handler) *Bus {
	return &Bus{handler: handler}
}

// Submit wraps the handler into a Bubble Tea command while emitting trace logs.
// Blank queries produce no message.
func (b *Bus) Submit(query string) tea.Cmd {
	events.Submit.Queue(query)
	handler := b.handler
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			events.Submit.Skip(query)
			return nil
		}
		var err error
		if handler != nil {
			err = handler(query)
		}
		events.Submit.Result(query, err)
		return SubmittedMsg{Query: query, Err: err}
	}
}
