// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	ClearTarget     bool
	TickInterval    time.Duration
	FeedbackTimeout time.Duration
	MaskLimit       int
	Record          bool
	ChartDir        string
	WordListPath    string
	SuggestWords    int
}

// StatsConfig defines filters and options for recorded history views.
type StatsConfig struct {
	Since       *time.Time
	Last        int
	CurveWindow int
}

// Attempt is one completed practice submission.
type Attempt struct {
	Text     string
	Duration time.Duration
	Correct  bool
	At       time.Time
}

// Seconds returns the attempt duration in fractional seconds.
func (a Attempt) Seconds() float64 {
	return a.Duration.Seconds()
}

// AttemptRecord is the persisted form of an attempt. The typed text is never stored.
type AttemptRecord struct {
	RunID      string
	Seq        int
	At         time.Time
	DurationMs int64
	Correct    bool
	Length     int
}

// RunAggregate summarizes a recorded practice run.
type RunAggregate struct {
	RunID       string
	StartedAt   time.Time
	EndedAt     time.Time
	Attempts    int
	Correct     int
	BestMs      int64
	TotalMs     int64
	CorrectMs   int64
	IncorrectMs int64
}
