package ui

import (
	"github.com/atomicstack/suggestbox/internal/ui/command"
	"github.com/atomicstack/suggestbox/internal/ui/field"
	tea "github.com/charmbracelet/bubbletea"
)

// editor adapts the edit field to the engine's Editor collaborator. Writes
// made through it are not reported back to the engine as user edits.
type editor struct {
	field *field.Field
	bus   *command.Bus
	dirty *bool
}

func (e editor) Text() string { return e.field.Text() }

func (e editor) SetText(text string) {
	e.field.SetText(text)
	*e.dirty = true
}

func (e editor) Caret() int { return e.field.Caret() }

func (e editor) SetSelection(start, end int) {
	e.field.SetSelection(start, end)
	*e.dirty = true
}

func (e editor) Submit() tea.Cmd {
	return e.bus.Submit(e.field.Text())
}
