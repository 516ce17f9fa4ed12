package suggest

// Query is the immutable snapshot taken when the debounce countdown fires.
type Query struct {
	Text       string
	Locale     string
	Generation uint64
	// Caret is the editor caret at dispatch time, restored on cancel.
	Caret int
}

// ResultMsg carries the outcome of one fetch back to the update loop.
type ResultMsg struct {
	Query      Query
	Candidates []string
	Err        error
}
