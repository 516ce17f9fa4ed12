package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/suggestbox/internal/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	minPopupWidth = 20
	popupZone     = "popup"
	footerText    = "↑/↓ move  enter select  esc cancel  ctrl+c quit"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{m.fieldLine()}
	if box := m.popupBox(); box != "" {
		sections = append(sections, box)
	}

	lines := make([]styledLine, 0, historyLimit+4)
	if len(m.history) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "recent searches", style: styles.Header})
		for i := len(m.history) - 1; i >= 0; i-- {
			lines = append(lines, styledLine{text: "  " + m.history[i], style: styles.Info})
		}
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	if len(lines) > 0 {
		sections = append(sections, renderLines(applyWidth(lines, m.width)))
	}
	return m.zones.Scan(strings.Join(sections, "\n"))
}

func (m *Model) popupWidth() int {
	w := m.width - 2
	if w < minPopupWidth {
		w = minPopupWidth
	}
	return w
}

// popupBox renders the visible candidate rows inside a border. Every row is
// marked as a mouse zone so clicks and motion can be mapped back to it.
func (m *Model) popupBox() string {
	rows, offset := m.popup.rows()
	if len(rows) == 0 {
		return ""
	}
	width := m.popupWidth()
	lines := make([]styledLine, 0, len(rows))
	for i, label := range rows {
		lines = append(lines, m.buildItemLine(label, offset+i, width))
	}
	lines = applyWidth(lines, width)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = m.zones.Mark(m.rowZoneID(offset+i), renderLines([]styledLine{line}))
	}
	body := strings.Join(rendered, "\n")
	if styles.Popup != nil {
		body = styles.Popup.Render(body)
	}
	return m.zones.Mark(m.zonePrefix+popupZone, body)
}

func (m *Model) buildItemLine(label string, idx, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.popup.cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) rowZoneID(idx int) string {
	return m.zonePrefix + "row-" + strconv.Itoa(idx)
}

// handleMouseMsg maps pointer events onto popup rows. Presses that land on no
// row dismiss the popup; motion over a row highlights it.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.engine.Showing() {
		return nil
	}
	switch ev.Action {
	case tea.MouseActionPress:
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			return m.forwardToEngine(tea.KeyMsg{Type: tea.KeyUp})
		case tea.MouseButtonWheelDown:
			return m.forwardToEngine(tea.KeyMsg{Type: tea.KeyDown})
		}
		row := m.rowAt(ev)
		if row >= 0 {
			if ev.Button == tea.MouseButtonLeft {
				return m.forwardToEngine(suggest.ClickMsg{Index: row})
			}
			return nil
		}
		if !m.zones.Get(m.zonePrefix + popupZone).InBounds(ev) {
			return m.forwardToEngine(suggest.OutsideClickMsg{})
		}
	case tea.MouseActionMotion:
		if row := m.rowAt(ev); row >= 0 {
			return m.forwardToEngine(suggest.HoverMsg{Index: row})
		}
	}
	return nil
}

func (m *Model) rowAt(ev tea.MouseMsg) int {
	rows, offset := m.popup.rows()
	for i := range rows {
		if m.zones.Get(m.rowZoneID(offset + i)).InBounds(ev) {
			return offset + i
		}
	}
	return -1
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if lipgloss.Width(text) > width {
			text = truncate.StringWithTail(text, uint(width), "…")
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}
