package session

import (
	"time"

	"github.com/verte-zerg/pwdrill/internal/model"
	"github.com/verte-zerg/pwdrill/internal/timer"
)

// Options tune controller behavior.
type Options struct {
	// ClearTarget asks the UI to clear the target field once it is accepted.
	ClearTarget bool
}

// Controller owns one session and its attempt timer.
type Controller struct {
	Session *Session
	Timer   *timer.Timer
	opts    Options
}

// NewController wires a session to a timer.
func NewController(p Presenter, clock timer.Clock, interval time.Duration, opts Options) *Controller {
	s := New(p)
	t := timer.New(clock, interval)
	if clock != nil {
		s.now = clock.Now
	}
	return &Controller{Session: s, Timer: t, opts: opts}
}

// SetTarget activates a target. It reports whether the target field should be
// cleared from display.
func (c *Controller) SetTarget(value string) (clearField bool, err error) {
	if err := c.Session.SetTarget(value); err != nil {
		return false, err
	}
	return c.opts.ClearTarget, nil
}

// Input feeds the practice field text to the timer. When the timer starts it
// returns the tick to schedule.
func (c *Controller) Input(text string) (timer.TickID, bool) {
	if !c.Session.Active() {
		return 0, false
	}
	return c.Timer.Observe(text)
}

// Tick advances the display tick. False means the tick is cancelled.
func (c *Controller) Tick(id timer.TickID) bool {
	_, ok := c.Timer.Tick(id)
	return ok
}

// Submit finalizes the attempt for text. Empty text or an inactive session is
// a no-op. The timer is reset afterwards whatever the outcome; the caller
// clears the input field.
func (c *Controller) Submit(text string) (model.Attempt, bool) {
	if text == "" || !c.Session.Active() {
		return model.Attempt{}, false
	}
	d, ok := c.Timer.Finalize()
	if !ok {
		d = 0
	}
	defer c.Timer.Reset()
	a, err := c.Session.FinalizeAttempt(text, d)
	if err != nil {
		return model.Attempt{}, false
	}
	return a, true
}

// ClearHistory empties the session history. A running attempt keeps timing.
func (c *Controller) ClearHistory() {
	c.Session.ClearHistory()
}
