package suggest

import (
	"time"

	"github.com/atomicstack/suggestbox/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDebounce is the quiet period between the last edit and a dispatch.
const DefaultDebounce = 100 * time.Millisecond

// debounceMsg is delivered when a countdown elapses. The tag ties it to the
// restart that produced it.
type debounceMsg struct {
	tag int
}

// Scheduler is a restartable single-shot countdown. Restarting does not stop
// earlier ticks; it bumps the tag so that only the newest tick is honoured.
type Scheduler struct {
	delay   time.Duration
	tag     int
	pending bool
}

// NewScheduler returns a scheduler with the given delay, falling back to
// DefaultDebounce for non-positive values.
func NewScheduler(delay time.Duration) *Scheduler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Scheduler{delay: delay}
}

// Delay reports the countdown length.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Pending reports whether a countdown is running.
func (s *Scheduler) Pending() bool {
	return s.pending
}

// OnEdit restarts the countdown.
func (s *Scheduler) OnEdit() tea.Cmd {
	s.tag++
	s.pending = true
	tag := s.tag
	events.Debounce.Restart(tag)
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag}
	})
}

// Suppress stops a pending countdown without firing.
func (s *Scheduler) Suppress() {
	if !s.pending {
		return
	}
	s.pending = false
	events.Debounce.Suppress(s.tag)
}

// fire reports whether msg is the live firing of the current countdown and,
// if so, consumes it.
func (s *Scheduler) fire(msg debounceMsg) bool {
	if !s.pending || msg.tag != s.tag {
		return false
	}
	s.pending = false
	events.Debounce.Fire(msg.tag)
	return true
}
