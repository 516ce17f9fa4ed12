package suggest

// State enumerates the popup states.
type State int

const (
	Hidden State = iota
	Showing
)

func (s State) String() string {
	if s == Showing {
		return "showing"
	}
	return "hidden"
}

// Selection owns the candidate list and the highlighted index. The cursor is
// -1 whenever the popup is hidden.
type Selection struct {
	state      State
	candidates []string
	cursor     int
}

// NewSelection returns a hidden selection.
func NewSelection() *Selection {
	return &Selection{cursor: -1}
}

// State reports the current state.
func (s *Selection) State() State {
	return s.state
}

// Showing reports whether the popup is visible.
func (s *Selection) Showing() bool {
	return s.state == Showing
}

// Cursor returns the highlighted index or -1.
func (s *Selection) Cursor() int {
	if s.state != Showing {
		return -1
	}
	return s.cursor
}

// Candidates returns a copy of the displayed candidates.
func (s *Selection) Candidates() []string {
	if s.state != Showing {
		return nil
	}
	dup := make([]string, len(s.candidates))
	copy(dup, s.candidates)
	return dup
}

// Current returns the highlighted candidate.
func (s *Selection) Current() (string, bool) {
	if s.state != Showing || s.cursor < 0 || s.cursor >= len(s.candidates) {
		return "", false
	}
	return s.candidates[s.cursor], true
}

// Show replaces the list and highlights the first candidate. An empty list
// leaves the selection untouched and returns false.
func (s *Selection) Show(candidates []string) bool {
	if len(candidates) == 0 {
		return false
	}
	next := make([]string, len(candidates))
	copy(next, candidates)
	s.candidates = next
	s.cursor = 0
	s.state = Showing
	return true
}

// Hide drops the list and the cursor.
func (s *Selection) Hide() {
	s.state = Hidden
	s.candidates = nil
	s.cursor = -1
}

// Confirm hides the popup and returns the highlighted candidate.
func (s *Selection) Confirm() (string, bool) {
	text, ok := s.Current()
	s.Hide()
	return text, ok
}

// MoveNext advances the cursor, stopping at the last candidate.
func (s *Selection) MoveNext() bool {
	return s.moveCursorBy(1)
}

// MovePrev retreats the cursor, stopping at the first candidate.
func (s *Selection) MovePrev() bool {
	return s.moveCursorBy(-1)
}

// MoveHome moves the cursor to the first candidate.
func (s *Selection) MoveHome() bool {
	return s.moveCursorTo(0)
}

// MoveEnd moves the cursor to the last candidate.
func (s *Selection) MoveEnd() bool {
	return s.moveCursorTo(len(s.candidates) - 1)
}

// MovePageUp moves the cursor up by the given page size.
func (s *Selection) MovePageUp(pageSize int) bool {
	return s.moveCursorBy(-s.pageSize(pageSize))
}

// MovePageDown moves the cursor down by the given page size.
func (s *Selection) MovePageDown(pageSize int) bool {
	return s.moveCursorBy(s.pageSize(pageSize))
}

// Hover highlights index i. Out of range indexes are ignored.
func (s *Selection) Hover(i int) bool {
	if i < 0 || i >= len(s.candidates) {
		return false
	}
	return s.moveCursorTo(i)
}

func (s *Selection) moveCursorTo(i int) bool {
	if s.state != Showing || len(s.candidates) == 0 {
		return false
	}
	return s.moveCursorBy(i - s.cursor)
}

func (s *Selection) moveCursorBy(delta int) bool {
	if s.state != Showing || len(s.candidates) == 0 {
		return false
	}
	old := s.cursor
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.candidates) {
		s.cursor = len(s.candidates) - 1
	}
	return s.cursor != old
}

func (s *Selection) pageSize(visible int) int {
	total := len(s.candidates)
	if total == 0 {
		return 0
	}
	size := visible
	if size <= 0 || size > total {
		size = total
	}
	return size
}
