package ui

// DefaultMaxRows is the popup height used when none is configured.
const DefaultMaxRows = 8

// popup is the candidate list display. It only mirrors what the engine tells
// it; the engine's selection owns the cursor.
type popup struct {
	candidates     []string
	cursor         int
	viewportOffset int
	maxRows        int
	visible        bool
}

func newPopup(maxRows int) *popup {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &popup{maxRows: maxRows, cursor: -1}
}

func (p *popup) ShowCandidates(candidates []string) {
	p.candidates = append([]string(nil), candidates...)
	p.cursor = 0
	p.viewportOffset = 0
	p.visible = len(p.candidates) > 0
}

func (p *popup) Hide() {
	p.visible = false
	p.candidates = nil
	p.cursor = -1
	p.viewportOffset = 0
}

func (p *popup) Highlight(index int) {
	p.cursor = index
	p.ensureCursorVisible()
}

func (p *popup) PageSize() int {
	return p.maxRows
}

// rows returns the visible slice of candidates and the index of its first
// entry.
func (p *popup) rows() ([]string, int) {
	if !p.visible {
		return nil, 0
	}
	end := p.viewportOffset + p.maxRows
	if end > len(p.candidates) {
		end = len(p.candidates)
	}
	return p.candidates[p.viewportOffset:end], p.viewportOffset
}

func (p *popup) ensureCursorVisible() {
	if len(p.candidates) == 0 {
		p.cursor = -1
		p.viewportOffset = 0
		return
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.candidates) {
		p.cursor = len(p.candidates) - 1
	}
	maxOffset := len(p.candidates) - p.maxRows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.viewportOffset > maxOffset {
		p.viewportOffset = maxOffset
	}
	if p.cursor < p.viewportOffset {
		p.viewportOffset = p.cursor
	}
	if upper := p.viewportOffset + p.maxRows - 1; p.cursor > upper {
		p.viewportOffset = p.cursor - p.maxRows + 1
	}
}
