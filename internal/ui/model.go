package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/suggestbox/internal/suggest"
	"github.com/atomicstack/suggestbox/internal/theme"
	"github.com/atomicstack/suggestbox/internal/ui/command"
	"github.com/atomicstack/suggestbox/internal/ui/field"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const historyLimit = 5

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure a Model.
type Options struct {
	Fetcher  *suggest.Fetcher
	Debounce time.Duration
	Locale   string
	MaxRows  int
	Width    int
	Height   int
	Footer   bool
	// OnSubmit receives every submitted query. It runs off the update loop.
	OnSubmit command.Handler
}

// Model implements the Bubble Tea model for the search box.
type Model struct {
	field       *field.Field
	popup       *popup
	engine      *suggest.Engine
	bus         *command.Bus
	zones       *zone.Manager
	zonePrefix  string
	caret       cursor.Model
	caretDirty  bool
	focused     bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	history     []string
	errMsg      string
	handlers    map[reflect.Type]msgHandler
}

// NewModel builds the search box around a fetcher.
func NewModel(opts Options) *Model {
	m := &Model{
		field:      field.New(""),
		popup:      newPopup(opts.MaxRows),
		bus:        command.New(opts.OnSubmit),
		zones:      zone.New(),
		showFooter: opts.Footer,
	}
	m.zonePrefix = m.zones.NewPrefix()
	ed := editor{field: m.field, bus: m.bus, dirty: &m.caretDirty}
	m.engine = suggest.NewEngine(ed, m.popup, opts.Fetcher, suggest.Options{
		Debounce: opts.Debounce,
		Locale:   opts.Locale,
	})
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Field != nil {
		c.TextStyle = styles.Field.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.focused = true
	return m.caret.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	// debounce ticks and fetch results are private to the engine
	if handled, cmd := m.engine.Update(msg); handled && cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):              m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):            m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):       m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):            m.handleFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):             m.handleBlurMsg,
		reflect.TypeOf(command.SubmittedMsg{}):    m.handleSubmittedMsg,
		reflect.TypeOf(suggest.ClickMsg{}):        m.forwardToEngine,
		reflect.TypeOf(suggest.HoverMsg{}):        m.forwardToEngine,
		reflect.TypeOf(suggest.OutsideClickMsg{}): m.forwardToEngine,
		reflect.TypeOf(suggest.FocusLostMsg{}):    m.forwardToEngine,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) forwardToEngine(msg tea.Msg) tea.Cmd {
	_, cmd := m.engine.Update(msg)
	return cmd
}

func (m *Model) handleFocusMsg(tea.Msg) tea.Cmd {
	m.focused = true
	return m.caret.Focus()
}

func (m *Model) handleBlurMsg(tea.Msg) tea.Cmd {
	m.focused = false
	m.caret.Blur()
	_, cmd := m.engine.Update(suggest.FocusLostMsg{})
	return cmd
}

func (m *Model) handleSubmittedMsg(msg tea.Msg) tea.Cmd {
	submitted, ok := msg.(command.SubmittedMsg)
	if !ok {
		return nil
	}
	if submitted.Err != nil {
		m.errMsg = submitted.Err.Error()
		return nil
	}
	m.errMsg = ""
	m.history = append(m.history, submitted.Query)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		if m.focused {
			m.caret.Blink = false
			if cmd := m.caret.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Text returns the current field contents.
func (m *Model) Text() string {
	return m.field.Text()
}

// Engine exposes the suggestion engine.
func (m *Model) Engine() *suggest.Engine {
	return m.engine
}

// History returns the most recent submissions, oldest first.
func (m *Model) History() []string {
	return append([]string(nil), m.history...)
}

// Close releases the mouse zone tracker.
func (m *Model) Close() {
	m.zones.Close()
}
