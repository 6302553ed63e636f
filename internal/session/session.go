// Package session holds the practice target, the attempt history and the
// controller that ties them to the attempt timer.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/pwdrill/internal/model"
	"github.com/verte-zerg/pwdrill/internal/stats"
)

var (
	// ErrEmptyTarget is returned when the target password is empty.
	ErrEmptyTarget = errors.New("target password is empty")
	// ErrNoTarget is returned when an attempt is finalized before a target is set.
	ErrNoTarget = errors.New("no target password set")
	// ErrEmptyAttempt is returned when an attempt has no text.
	ErrEmptyAttempt = errors.New("attempt text is empty")
)

// Feedback messages shown to the user.
const (
	msgEmptyTarget = "Please enter a password first."
	msgTargetSet   = "Target password set! Start practicing."
	msgIncorrect   = "Incorrect password. Try again."
)

// FeedbackKind categorizes a feedback message.
type FeedbackKind int

const (
	FeedbackSuccess FeedbackKind = iota
	FeedbackError
)

// Feedback is a transient message for the user.
type Feedback struct {
	Message string
	Kind    FeedbackKind
}

// Presenter renders session state. Implementations must not call back into
// the session.
type Presenter interface {
	ShowFeedback(f Feedback)
	// ShowHistory receives attempts newest first.
	ShowHistory(attempts []model.Attempt)
	ShowStats(s stats.Summary)
}

type nopPresenter struct{}

func (nopPresenter) ShowFeedback(Feedback) {}

func (nopPresenter) ShowHistory([]model.Attempt) {}

func (nopPresenter) ShowStats(stats.Summary) {}

// Session holds the target and the append-only attempt list.
type Session struct {
	presenter Presenter
	now       func() time.Time

	target   string
	active   bool
	attempts []model.Attempt
	best     time.Duration
	hasBest  bool
}

// New returns an empty session. A nil presenter discards all output.
func New(p Presenter) *Session {
	if p == nil {
		p = nopPresenter{}
	}
	return &Session{presenter: p, now: time.Now}
}

// SetTarget stores a new target and enables practice.
func (s *Session) SetTarget(value string) error {
	if value == "" {
		s.presenter.ShowFeedback(Feedback{Message: msgEmptyTarget, Kind: FeedbackError})
		return ErrEmptyTarget
	}
	s.target = value
	s.active = true
	s.presenter.ShowFeedback(Feedback{Message: msgTargetSet, Kind: FeedbackSuccess})
	return nil
}

// Active reports whether practice is enabled.
func (s *Session) Active() bool {
	return s.active
}

// Target returns the current target.
func (s *Session) Target() (string, bool) {
	return s.target, s.active
}

// FinalizeAttempt records a completed attempt and re-renders history and stats.
func (s *Session) FinalizeAttempt(text string, duration time.Duration) (model.Attempt, error) {
	if !s.active {
		return model.Attempt{}, ErrNoTarget
	}
	if text == "" {
		return model.Attempt{}, ErrEmptyAttempt
	}
	if duration < 0 {
		duration = 0
	}
	a := model.Attempt{
		Text:     text,
		Duration: duration,
		Correct:  text == s.target,
		At:       s.now(),
	}
	s.attempts = append(s.attempts, a)

	if a.Correct {
		if !s.hasBest || duration < s.best {
			s.best = duration
			s.hasBest = true
		}
		s.presenter.ShowFeedback(Feedback{
			Message: fmt.Sprintf("Correct! Time: %.2fs", a.Seconds()),
			Kind:    FeedbackSuccess,
		})
	} else {
		s.presenter.ShowFeedback(Feedback{Message: msgIncorrect, Kind: FeedbackError})
	}
	s.render()
	return a, nil
}

// ClearHistory drops all attempts and the best time.
func (s *Session) ClearHistory() {
	s.attempts = nil
	s.best = 0
	s.hasBest = false
	s.render()
}

// Attempts returns the attempts oldest first.
func (s *Session) Attempts() []model.Attempt {
	out := make([]model.Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// History returns the attempts newest first.
func (s *Session) History() []model.Attempt {
	out := make([]model.Attempt, len(s.attempts))
	for i, a := range s.attempts {
		out[len(s.attempts)-1-i] = a
	}
	return out
}

// BestTime returns the fastest correct attempt duration.
func (s *Session) BestTime() (time.Duration, bool) {
	return s.best, s.hasBest
}

// Summary recomputes statistics over all attempts.
func (s *Session) Summary() stats.Summary {
	return stats.Summarize(s.attempts)
}

func (s *Session) render() {
	s.presenter.ShowHistory(s.History())
	s.presenter.ShowStats(s.Summary())
}
