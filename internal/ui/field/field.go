// Package field holds the single-line edit buffer behind the search box:
// text, caret and an optional selection anchor, all in rune offsets.
package field

import "unicode"

// Field is a single-line edit buffer. When anchor differs from caret the
// runes between them are selected.
type Field struct {
	runes  []rune
	caret  int
	anchor int
}

// New returns a field holding text with the caret at the end.
func New(text string) *Field {
	f := &Field{}
	f.SetText(text)
	return f
}

// Text returns the buffer contents.
func (f *Field) Text() string {
	return string(f.runes)
}

// Len returns the length in runes.
func (f *Field) Len() int {
	return len(f.runes)
}

// SetText replaces the contents and collapses the caret at the end.
func (f *Field) SetText(text string) {
	f.runes = []rune(text)
	f.caret = len(f.runes)
	f.anchor = f.caret
}

// Caret returns the caret offset.
func (f *Field) Caret() int {
	return f.caret
}

// Selection returns the selected range, start <= end. An empty range means
// nothing is selected.
func (f *Field) Selection() (start, end int) {
	if f.anchor <= f.caret {
		return f.anchor, f.caret
	}
	return f.caret, f.anchor
}

// HasSelection reports whether a non-empty range is selected.
func (f *Field) HasSelection() bool {
	return f.anchor != f.caret
}

// SetSelection selects [start, end) and places the caret at end. Offsets are
// clamped to the buffer.
func (f *Field) SetSelection(start, end int) {
	f.anchor = f.clamp(start)
	f.caret = f.clamp(end)
}

// Insert replaces the selection (if any) with text.
func (f *Field) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	f.deleteSelection()
	updated := make([]rune, 0, len(f.runes)+len(insert))
	updated = append(updated, f.runes[:f.caret]...)
	updated = append(updated, insert...)
	updated = append(updated, f.runes[f.caret:]...)
	f.runes = updated
	f.caret += len(insert)
	f.anchor = f.caret
	return true
}

// DeleteBackward removes the selection, or the rune before the caret.
func (f *Field) DeleteBackward() bool {
	if f.deleteSelection() {
		return true
	}
	if f.caret == 0 {
		return false
	}
	f.runes = append(f.runes[:f.caret-1], f.runes[f.caret:]...)
	f.caret--
	f.anchor = f.caret
	return true
}

// DeleteForward removes the selection, or the rune after the caret.
func (f *Field) DeleteForward() bool {
	if f.deleteSelection() {
		return true
	}
	if f.caret >= len(f.runes) {
		return false
	}
	f.runes = append(f.runes[:f.caret], f.runes[f.caret+1:]...)
	return true
}

// DeleteWordBackward removes the selection, or the word preceding the caret.
func (f *Field) DeleteWordBackward() bool {
	if f.deleteSelection() {
		return true
	}
	i := f.wordStart()
	if i == f.caret {
		return false
	}
	f.runes = append(f.runes[:i], f.runes[f.caret:]...)
	f.caret = i
	f.anchor = i
	return true
}

// Clear empties the buffer.
func (f *Field) Clear() bool {
	if len(f.runes) == 0 {
		return false
	}
	f.SetText("")
	return true
}

// MoveStart moves the caret to the start, dropping any selection.
func (f *Field) MoveStart() bool {
	return f.moveTo(0)
}

// MoveEnd moves the caret to the end, dropping any selection.
func (f *Field) MoveEnd() bool {
	return f.moveTo(len(f.runes))
}

// MoveLeft moves the caret one rune back. With a selection the caret lands on
// its start instead.
func (f *Field) MoveLeft() bool {
	if f.HasSelection() {
		start, _ := f.Selection()
		return f.moveTo(start)
	}
	return f.moveTo(f.caret - 1)
}

// MoveRight moves the caret one rune forward. With a selection the caret
// lands on its end instead.
func (f *Field) MoveRight() bool {
	if f.HasSelection() {
		_, end := f.Selection()
		return f.moveTo(end)
	}
	return f.moveTo(f.caret + 1)
}

// MoveWordLeft moves the caret to the start of the previous word.
func (f *Field) MoveWordLeft() bool {
	return f.moveTo(f.wordStart())
}

// MoveWordRight moves the caret past the next word.
func (f *Field) MoveWordRight() bool {
	i := f.caret
	for i < len(f.runes) && !unicode.IsSpace(f.runes[i]) {
		i++
	}
	for i < len(f.runes) && unicode.IsSpace(f.runes[i]) {
		i++
	}
	return f.moveTo(i)
}

func (f *Field) moveTo(pos int) bool {
	pos = f.clamp(pos)
	changed := pos != f.caret || f.anchor != f.caret
	f.caret = pos
	f.anchor = pos
	return changed
}

func (f *Field) wordStart() int {
	i := f.caret
	for i > 0 && unicode.IsSpace(f.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(f.runes[i-1]) {
		i--
	}
	return i
}

func (f *Field) deleteSelection() bool {
	if !f.HasSelection() {
		return false
	}
	start, end := f.Selection()
	f.runes = append(f.runes[:start], f.runes[end:]...)
	f.caret = start
	f.anchor = start
	return true
}

func (f *Field) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(f.runes) {
		return len(f.runes)
	}
	return pos
}
