package stats

import (
	"fmt"
	"time"

	"github.com/verte-zerg/pwdrill/internal/model"
)

// Metric is a duration in seconds that may be undefined.
type Metric struct {
	Seconds float64
	Valid   bool
}

// Seconds wraps a defined value.
func Seconds(v float64) Metric {
	return Metric{Seconds: v, Valid: true}
}

// FromDuration wraps a duration.
func FromDuration(d time.Duration) Metric {
	return Seconds(d.Seconds())
}

// String formats the metric as "1.23s", or "--" when undefined.
func (m Metric) String() string {
	if !m.Valid {
		return "--"
	}
	return fmt.Sprintf("%.2fs", m.Seconds)
}

// ChartData is handed to chart renderers.
type ChartData struct {
	Passed     int
	Failed     int
	Durations  []float64
	RunningAvg []float64
}

// Empty reports whether there is nothing to chart.
func (c ChartData) Empty() bool {
	return len(c.Durations) == 0
}

// Summary holds the derived display values for a list of attempts.
type Summary struct {
	Attempts   int
	Passed     int
	Failed     int
	Best       Metric
	AvgCorrect Metric
	AvgWrong   Metric
	AvgAll     Metric
	Chart      ChartData
}

// Summarize recomputes all metrics from attempts stored oldest first.
func Summarize(attempts []model.Attempt) Summary {
	s := Summary{Attempts: len(attempts)}
	var correctSum, wrongSum float64
	durations := make([]float64, len(attempts))
	for i, a := range attempts {
		sec := a.Seconds()
		durations[i] = sec
		if a.Correct {
			s.Passed++
			correctSum += sec
			if !s.Best.Valid || sec < s.Best.Seconds {
				s.Best = Seconds(sec)
			}
			continue
		}
		s.Failed++
		wrongSum += sec
	}
	if s.Passed > 0 {
		s.AvgCorrect = Seconds(correctSum / float64(s.Passed))
	}
	if s.Failed > 0 {
		s.AvgWrong = Seconds(wrongSum / float64(s.Failed))
	}
	if s.Attempts > 0 {
		s.AvgAll = Seconds((correctSum + wrongSum) / float64(s.Attempts))
	}
	s.Chart = ChartData{
		Passed:     s.Passed,
		Failed:     s.Failed,
		Durations:  durations,
		RunningAvg: RunningAverage(durations),
	}
	return s
}

// Mean returns the arithmetic mean of values, undefined when empty.
func Mean(values []float64) Metric {
	if len(values) == 0 {
		return Metric{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Seconds(sum / float64(len(values)))
}

// RunningAverage returns the cumulative mean at each position.
func RunningAverage(values []float64) []float64 {
	return MovingAverage(values, len(values))
}
