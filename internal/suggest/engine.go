package suggest

import (
	"time"
	"unicode/utf8"

	"github.com/atomicstack/suggestbox/internal/logging"
	"github.com/atomicstack/suggestbox/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor is the text field the engine completes. Offsets are in runes.
type Editor interface {
	Text() string
	// SetText replaces the text, leaving the caret at the end with nothing
	// selected. It must not be reported back as a user edit.
	SetText(text string)
	Caret() int
	// SetSelection selects [start, end) and places the caret at end.
	SetSelection(start, end int)
	// Submit activates the field as if the user pressed enter.
	Submit() tea.Cmd
}

// ListDisplay renders the candidate popup.
type ListDisplay interface {
	ShowCandidates(candidates []string)
	Hide()
	Highlight(index int)
	// PageSize is the number of visible rows, or <= 0 when unknown.
	PageSize() int
}

// ClickMsg reports a click on the candidate at Index.
type ClickMsg struct{ Index int }

// HoverMsg reports the pointer resting on the candidate at Index.
type HoverMsg struct{ Index int }

// OutsideClickMsg reports a mouse press outside the popup.
type OutsideClickMsg struct{}

// FocusLostMsg reports that the editor lost focus.
type FocusLostMsg struct{}

// Options tune an Engine.
type Options struct {
	Debounce time.Duration
	Locale   string
}

// Engine wires the scheduler, fetcher and selection to the collaborators.
type Engine struct {
	editor    Editor
	list      ListDisplay
	scheduler *Scheduler
	fetcher   *Fetcher
	selection *Selection
	locale    string
	original  Query
}

// NewEngine returns an engine driving editor and list.
func NewEngine(editor Editor, list ListDisplay, fetcher *Fetcher, opts Options) *Engine {
	return &Engine{
		editor:    editor,
		list:      list,
		scheduler: NewScheduler(opts.Debounce),
		fetcher:   fetcher,
		selection: NewSelection(),
		locale:    NormalizeLocale(opts.Locale),
	}
}

// Locale returns the locale sent with every query.
func (e *Engine) Locale() string { return e.locale }

// Showing reports whether the popup is visible.
func (e *Engine) Showing() bool { return e.selection.Showing() }

// Cursor returns the highlighted index or -1.
func (e *Engine) Cursor() int { return e.selection.Cursor() }

// Candidates returns the displayed candidates.
func (e *Engine) Candidates() []string { return e.selection.Candidates() }

// Original returns the query whose candidates are on display. The snapshot is
// taken at dispatch and travels with the response.
func (e *Engine) Original() Query { return e.original }

// Pending reports whether a debounce countdown is running.
func (e *Engine) Pending() bool { return e.scheduler.Pending() }

// Generation returns the most recently dispatched generation.
func (e *Engine) Generation() uint64 { return e.fetcher.Current() }

// TextEdited is the editor's text-changed notification.
func (e *Engine) TextEdited() tea.Cmd {
	return e.scheduler.OnEdit()
}

// PreventSuggest cancels a pending countdown. A visible popup stays up.
func (e *Engine) PreventSuggest() {
	e.scheduler.Suppress()
}

// Update handles engine messages and, while the popup shows, key events.
// handled is false when the caller should pass msg on to the editor.
func (e *Engine) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if !e.scheduler.fire(msg) {
			return true, nil
		}
		return true, e.autoSuggest()
	case ResultMsg:
		e.applyResult(msg)
		return true, nil
	case tea.KeyMsg:
		if !e.selection.Showing() {
			return false, nil
		}
		return e.routeKey(msg)
	case ClickMsg:
		if !e.selection.Showing() {
			return false, nil
		}
		if msg.Index < 0 || msg.Index >= len(e.selection.Candidates()) {
			return true, nil
		}
		e.selection.Hover(msg.Index)
		return true, e.confirm()
	case HoverMsg:
		if !e.selection.Showing() {
			return false, nil
		}
		if e.selection.Hover(msg.Index) {
			e.syncEditor()
		}
		return true, nil
	case OutsideClickMsg:
		if !e.selection.Showing() {
			return false, nil
		}
		e.cancel(events.PopupReasonOutside)
		return true, nil
	case FocusLostMsg:
		if !e.selection.Showing() {
			return false, nil
		}
		e.cancel(events.PopupReasonFocus)
		return true, nil
	}
	return false, nil
}

func (e *Engine) autoSuggest() tea.Cmd {
	text := e.editor.Text()
	caret := e.editor.Caret()
	if text == "" {
		events.Suggest.SkipEmpty()
		return nil
	}
	_, cmd := e.fetcher.Dispatch(text, e.locale, caret)
	return cmd
}

func (e *Engine) applyResult(msg ResultMsg) {
	gen := msg.Query.Generation
	if !e.fetcher.IsCurrent(gen) {
		events.Suggest.Stale(gen, e.fetcher.Current())
		return
	}
	if msg.Err != nil {
		logging.Error(msg.Err)
		events.Suggest.Failure(gen, msg.Err)
	}
	events.Suggest.Result(gen, len(msg.Candidates))
	if !e.selection.Show(msg.Candidates) {
		return
	}
	e.original = msg.Query
	e.list.ShowCandidates(e.selection.Candidates())
	events.Popup.Show(len(msg.Candidates))
	e.syncEditor()
}

func (e *Engine) routeKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch Classify(msg) {
	case ActionConfirm:
		if _, ok := e.selection.Current(); ok {
			return true, e.confirm()
		}
		e.hide(events.PopupReasonTyping)
		return false, nil
	case ActionCancel:
		e.cancel(events.PopupReasonEscape)
		return true, nil
	case ActionNavigate:
		if e.navigate(msg.String()) {
			e.syncEditor()
		}
		return true, nil
	default:
		e.hide(events.PopupReasonTyping)
		return false, nil
	}
}

func (e *Engine) navigate(key string) bool {
	switch key {
	case "up":
		return e.selection.MovePrev()
	case "down":
		return e.selection.MoveNext()
	case "home":
		return e.selection.MoveHome()
	case "end":
		return e.selection.MoveEnd()
	case "pgup":
		return e.selection.MovePageUp(e.list.PageSize())
	case "pgdown":
		return e.selection.MovePageDown(e.list.PageSize())
	}
	return false
}

// syncEditor mirrors the highlighted candidate into the editor, selecting
// the continuation beyond the typed prefix.
func (e *Engine) syncEditor() {
	text, ok := e.selection.Current()
	if !ok {
		return
	}
	cursor := e.selection.Cursor()
	e.list.Highlight(cursor)
	e.editor.SetText(text)
	end := utf8.RuneCountInString(text)
	start := utf8.RuneCountInString(e.original.Text)
	if start > end {
		start = end
	}
	e.editor.SetSelection(start, end)
	events.Popup.Cursor(cursor, text)
}

func (e *Engine) confirm() tea.Cmd {
	e.scheduler.Suppress()
	text, ok := e.selection.Confirm()
	e.list.Hide()
	if !ok {
		return nil
	}
	e.editor.SetText(text)
	events.Popup.Confirm(text)
	return e.editor.Submit()
}

// cancel hides the popup and restores the pre-query text and caret.
func (e *Engine) cancel(reason events.PopupReason) {
	e.selection.Hide()
	e.list.Hide()
	e.editor.SetText(e.original.Text)
	e.editor.SetSelection(e.original.Caret, e.original.Caret)
	events.Popup.Cancel(reason, e.original.Text)
}

// hide closes the popup and leaves the editor as it is.
func (e *Engine) hide(reason events.PopupReason) {
	e.selection.Hide()
	e.list.Hide()
	events.Popup.Hide(reason)
}
