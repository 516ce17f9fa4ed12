package ui

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/suggestbox/internal/logging"
	"github.com/atomicstack/suggestbox/internal/suggest"
	"github.com/atomicstack/suggestbox/internal/suggestsvc"
	"github.com/atomicstack/suggestbox/internal/transport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "ui-test")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "ui.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

var testWords = []string{"cats", "category", "catalog", "dog"}

func newTestHarness(t *testing.T, maxRows int) *Harness {
	t.Helper()
	srv := httptest.NewServer(suggestsvc.New(testWords, 0))
	t.Cleanup(srv.Close)
	fetcher := suggest.NewFetcher(transport.NewClient(0), srv.URL+"/complete/search?hl={locale}&q={query}", time.Second)
	m := NewModel(Options{
		Fetcher:  fetcher,
		Debounce: time.Millisecond,
		Locale:   "en_US.UTF-8",
		MaxRows:  maxRows,
	})
	t.Cleanup(m.Close)
	return NewHarness(m)
}

func selectedText(m *Model) string {
	start, end := m.field.Selection()
	return string([]rune(m.field.Text())[start:end])
}

func TestTypingShowsPreviewWithSelectedContinuation(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	m := h.Model()

	if !m.engine.Showing() {
		t.Fatalf("expected popup to show")
	}
	if got := m.popup.candidates; !reflect.DeepEqual(got, []string{"cats", "category", "catalog"}) {
		t.Fatalf("unexpected candidates %v", got)
	}
	if m.Text() != "cats" || selectedText(m) != "s" {
		t.Fatalf("expected cats with s selected, got %q/%q", m.Text(), selectedText(m))
	}
	if m.engine.Original().Text != "cat" {
		t.Fatalf("expected original cat, got %q", m.engine.Original().Text)
	}
}

func TestNavigateAndConfirmSubmits(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Key(tea.KeyDown)
	m := h.Model()
	if m.Text() != "category" || selectedText(m) != "egory" {
		t.Fatalf("expected category preview, got %q/%q", m.Text(), selectedText(m))
	}
	if m.popup.cursor != 1 {
		t.Fatalf("expected row 1 highlighted, got %d", m.popup.cursor)
	}

	h.Key(tea.KeyEnter)
	if m.engine.Showing() || m.popup.visible {
		t.Fatalf("expected popup hidden after confirm")
	}
	if !reflect.DeepEqual(m.History(), []string{"category"}) {
		t.Fatalf("expected category submitted, got %v", m.History())
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, "recent searches") || !strings.Contains(view, "category") {
		t.Fatalf("expected history in view:\n%s", view)
	}
}

func TestEscapeRestoresTypedText(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Key(tea.KeyDown)
	h.Key(tea.KeyDown)
	h.Key(tea.KeyEsc)
	m := h.Model()
	if m.engine.Showing() || h.Quit() {
		t.Fatalf("expected escape to close the popup without quitting")
	}
	if m.Text() != "cat" || m.field.Caret() != 3 || m.field.HasSelection() {
		t.Fatalf("expected cat restored, got %q/%d", m.Text(), m.field.Caret())
	}

	h.Key(tea.KeyEsc)
	if !h.Quit() {
		t.Fatalf("expected second escape to quit")
	}
}

func TestTypingOverPreviewReplacesSelection(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Type("e")
	m := h.Model()
	if m.Text() != "category" || selectedText(m) != "gory" {
		t.Fatalf("expected cate to complete to category, got %q/%q", m.Text(), selectedText(m))
	}
	if got := m.popup.candidates; !reflect.DeepEqual(got, []string{"category"}) {
		t.Fatalf("unexpected candidates %v", got)
	}
}

func TestEnterWithoutPopupSubmitsFieldText(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("zzz")
	m := h.Model()
	if m.engine.Showing() {
		t.Fatalf("expected no popup for unmatched text")
	}
	h.Key(tea.KeyEnter)
	if !reflect.DeepEqual(m.History(), []string{"zzz"}) {
		t.Fatalf("expected zzz submitted, got %v", m.History())
	}
	if m.Text() != "zzz" {
		t.Fatalf("expected text kept after submit, got %q", m.Text())
	}
}

func TestBlurDismissesPopup(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Key(tea.KeyDown)
	h.Send(tea.BlurMsg{})
	m := h.Model()
	if m.engine.Showing() || m.Text() != "cat" {
		t.Fatalf("expected blur to restore cat, got %q", m.Text())
	}
}

func TestBackspaceHidesPopupAndResuggests(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Key(tea.KeyBackspace)
	m := h.Model()
	// backspace only removes the selected continuation, and the fresh query
	// for "cat" offers it again
	if m.Text() != "cats" || selectedText(m) != "s" || !m.engine.Showing() {
		t.Fatalf("expected cats preview again, got %q/%q", m.Text(), selectedText(m))
	}
	if m.engine.Generation() != 4 {
		t.Fatalf("expected a fourth dispatch, got %d", m.engine.Generation())
	}
	if len(m.History()) != 0 {
		t.Fatalf("expected nothing submitted")
	}
}

func TestPopupViewportFollowsCursor(t *testing.T) {
	h := newTestHarness(t, 2)
	h.Type("cat")
	m := h.Model()
	if rows, offset := m.popup.rows(); len(rows) != 2 || offset != 0 {
		t.Fatalf("expected first two rows, got %v at %d", rows, offset)
	}
	h.Key(tea.KeyEnd)
	rows, offset := m.popup.rows()
	if !reflect.DeepEqual(rows, []string{"category", "catalog"}) || offset != 1 {
		t.Fatalf("expected viewport to scroll, got %v at %d", rows, offset)
	}
	h.Key(tea.KeyPgUp)
	if m.engine.Cursor() != 0 {
		t.Fatalf("expected page up by two rows to clamp at 0, got %d", m.engine.Cursor())
	}
	if _, offset := m.popup.rows(); offset != 0 {
		t.Fatalf("expected viewport back at top, got %d", offset)
	}
}

func TestViewRendersFieldAndRows(t *testing.T) {
	h := newTestHarness(t, 0)
	view := ansi.Strip(h.View())
	if !strings.Contains(view, "type to search") {
		t.Fatalf("expected placeholder in empty view:\n%s", view)
	}
	h.Type("cat")
	view = ansi.Strip(h.View())
	for _, want := range []string{"category", "catalog"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := newTestHarness(t, 0)
	h.Type("cat")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit while the popup shows")
	}
}

func TestFixedDimensionsIgnoreResize(t *testing.T) {
	m := NewModel(Options{Fetcher: suggest.NewFetcher(nil, "", 0), Width: 40, Height: 10})
	defer m.Close()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	if m.width != 40 || m.height != 10 {
		t.Fatalf("expected fixed dimensions, got %dx%d", m.width, m.height)
	}
	m2 := NewModel(Options{Fetcher: suggest.NewFetcher(nil, "", 0)})
	defer m2.Close()
	m2.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	if m2.width != 100 || m2.height != 50 {
		t.Fatalf("expected resize to apply, got %dx%d", m2.width, m2.height)
	}
}
