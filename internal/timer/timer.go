// Package timer implements the attempt stopwatch.
package timer

import (
	"fmt"
	"time"
)

// DefaultInterval is the display refresh period while an attempt is running.
const DefaultInterval = 10 * time.Millisecond

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// State is the stopwatch state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TickID identifies one scheduled periodic display task. Every exit from
// Running invalidates the current id, so a tick carrying an older id is
// cancelled and must not be rescheduled.
type TickID uint64

// Timer is a keystroke-driven stopwatch: it starts on the first character and
// stops on submit or when the input is emptied.
type Timer struct {
	clock    Clock
	interval time.Duration

	state     State
	startedAt time.Time
	elapsed   time.Duration
	current   TickID
}

// New returns an idle timer. A nil clock uses the system clock.
func New(clock Clock, interval time.Duration) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{clock: clock, interval: interval}
}

// Interval returns the display tick period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// State returns the current state.
func (t *Timer) State() State {
	return t.state
}

// Running reports whether an attempt is being timed.
func (t *Timer) Running() bool {
	return t.state == Running
}

// Observe feeds the current input text. Non-empty text while idle starts the
// timer and returns the id of the tick to schedule. Empty text resets.
func (t *Timer) Observe(text string) (TickID, bool) {
	if text == "" {
		t.Reset()
		return 0, false
	}
	if t.state == Running {
		return 0, false
	}
	return t.start(), true
}

func (t *Timer) start() TickID {
	t.state = Running
	t.startedAt = t.clock.Now()
	t.elapsed = 0
	t.current++
	return t.current
}

// Tick recomputes the displayed elapsed time. It returns false when the id is
// stale or the timer is idle; the caller drops the task in that case.
func (t *Timer) Tick(id TickID) (time.Duration, bool) {
	if t.state != Running || id != t.current {
		return 0, false
	}
	t.elapsed = t.since()
	return t.elapsed, true
}

// Reset returns to idle and cancels the display tick.
func (t *Timer) Reset() {
	t.stop()
	t.elapsed = 0
}

// Finalize stops a running timer and returns the authoritative duration,
// measured once from the start time.
func (t *Timer) Finalize() (time.Duration, bool) {
	if t.state != Running {
		return 0, false
	}
	d := t.since()
	t.stop()
	t.elapsed = 0
	return d, true
}

// Elapsed returns the last displayed elapsed time.
func (t *Timer) Elapsed() time.Duration {
	return t.elapsed
}

// Display formats the displayed elapsed time.
func (t *Timer) Display() string {
	return FormatSeconds(t.elapsed)
}

// ActiveTicks returns the number of live periodic tasks (0 or 1).
func (t *Timer) ActiveTicks() int {
	if t.state == Running {
		return 1
	}
	return 0
}

func (t *Timer) stop() {
	if t.state == Running {
		t.current++
	}
	t.state = Idle
	t.startedAt = time.Time{}
}

func (t *Timer) since() time.Duration {
	d := t.clock.Now().Sub(t.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// FormatSeconds renders a duration as seconds with two decimals.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
