package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		return tea.Quit
	}
	if handled, cmd := m.engine.Update(keyMsg); handled {
		return cmd
	}
	switch keyMsg.String() {
	case "esc":
		return tea.Quit
	case "enter":
		m.engine.PreventSuggest()
		if m.field.Text() == "" {
			return nil
		}
		return m.bus.Submit(m.field.Text())
	}
	return m.handleTextInput(keyMsg)
}

// handleTextInput applies an editing key to the field. Text changes restart
// the suggestion countdown; caret moves do not.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	before := m.field.Text()
	caretBefore := m.field.Caret()
	changed := false
	switch msg.String() {
	case "ctrl+u":
		changed = m.field.Clear()
	case "ctrl+w", "alt+backspace":
		changed = m.field.DeleteWordBackward()
	case "ctrl+a", "home":
		changed = m.field.MoveStart()
	case "ctrl+e", "end":
		changed = m.field.MoveEnd()
	case "alt+b", "ctrl+left":
		changed = m.field.MoveWordLeft()
	case "alt+f", "ctrl+right":
		changed = m.field.MoveWordRight()
	default:
		changed = m.handleEditKey(msg)
	}
	if !changed {
		return nil
	}
	if caretBefore != m.field.Caret() || before != m.field.Text() {
		m.caretDirty = true
	}
	if before == m.field.Text() {
		return nil
	}
	m.errMsg = ""
	return m.engine.TextEdited()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.field.DeleteBackward()
	case tea.KeyDelete, tea.KeyCtrlD:
		return m.field.DeleteForward()
	case tea.KeyLeft, tea.KeyCtrlB:
		return m.field.MoveLeft()
	case tea.KeyRight, tea.KeyCtrlF:
		return m.field.MoveRight()
	case tea.KeySpace:
		return m.field.Insert(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.field.Insert(string(msg.Runes))
	}
	return false
}

// fieldLine renders the prompt, the text with its selection, and the caret.
func (m *Model) fieldLine() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FieldPrompt != nil {
		prompt = styles.FieldPrompt.Render(prompt)
	}
	if styles.Field != nil {
		m.caret.TextStyle = styles.Field.Copy()
	}
	runes := []rune(m.field.Text())
	if len(runes) == 0 {
		placeholder := []rune("(type to search)")
		if styles.FieldPlaceholder != nil {
			m.caret.TextStyle = styles.FieldPlaceholder.Copy()
		}
		return prompt + m.renderCaret(string(placeholder[0])) + render(styles.FieldPlaceholder, string(placeholder[1:]))
	}

	start, end := m.field.Selection()
	caret := m.field.Caret()
	out := prompt
	segment := func(from, to int, style *lipgloss.Style) {
		for from < to {
			if from == caret {
				out += m.renderCaret(string(runes[from]))
				from++
				continue
			}
			next := to
			if caret > from && caret < next {
				next = caret
			}
			out += render(style, string(runes[from:next]))
			from = next
		}
	}
	segment(0, start, styles.Field)
	segment(start, end, styles.Selection)
	segment(end, len(runes), styles.Field)
	if caret == len(runes) {
		out += m.renderCaret(" ")
	}
	return out
}

func (m *Model) renderCaret(char string) string {
	if char == "" {
		char = " "
	}
	m.caret.SetChar(char)

	base := m.caret.TextStyle.Copy().Inline(true)
	if m.caret.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
