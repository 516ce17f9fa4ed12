package suggest

import tea "github.com/charmbracelet/bubbletea"

// Action is what the popup does with a key while it is showing.
type Action int

const (
	// ActionForward hides the popup and lets the editor handle the key.
	ActionForward Action = iota
	ActionConfirm
	ActionCancel
	ActionNavigate
)

func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	case ActionNavigate:
		return "navigate"
	default:
		return "forward"
	}
}

// Classify maps a key event to a popup action.
func Classify(msg tea.KeyMsg) Action {
	switch msg.String() {
	case "enter":
		return ActionConfirm
	case "esc":
		return ActionCancel
	case "up", "down", "home", "end", "pgup", "pgdown":
		return ActionNavigate
	}
	return ActionForward
}
