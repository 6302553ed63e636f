// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/pwdrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesBounds(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = clamp(idx, 0, len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RunMetrics derives pass rate and duration metrics for a recorded run.
func RunMetrics(r model.RunAggregate) (passRate float64, best, avgCorrect, avgAll Metric) {
	if r.Attempts > 0 {
		passRate = float64(r.Correct) / float64(r.Attempts)
		avgAll = Seconds(float64(r.TotalMs) / 1000 / float64(r.Attempts))
	}
	if r.Correct > 0 {
		best = Seconds(float64(r.BestMs) / 1000)
		avgCorrect = Seconds(float64(r.CorrectMs) / 1000 / float64(r.Correct))
	}
	return passRate, best, avgCorrect, avgAll
}

// Totals aggregates recorded runs into one summary.
func Totals(runs []model.RunAggregate) Summary {
	var s Summary
	var correctMs, incorrectMs int64
	for _, r := range runs {
		s.Attempts += r.Attempts
		s.Passed += r.Correct
		correctMs += r.CorrectMs
		incorrectMs += r.IncorrectMs
		if r.Correct == 0 {
			continue
		}
		best := float64(r.BestMs) / 1000
		if !s.Best.Valid || best < s.Best.Seconds {
			s.Best = Seconds(best)
		}
	}
	s.Failed = s.Attempts - s.Passed
	if s.Passed > 0 {
		s.AvgCorrect = Seconds(float64(correctMs) / 1000 / float64(s.Passed))
	}
	if s.Failed > 0 {
		s.AvgWrong = Seconds(float64(incorrectMs) / 1000 / float64(s.Failed))
	}
	if s.Attempts > 0 {
		s.AvgAll = Seconds(float64(correctMs+incorrectMs) / 1000 / float64(s.Attempts))
	}
	return s
}

// RenderSummary prints a summary of recorded runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	s := Totals(runs)
	passRate := 0.0
	if s.Attempts > 0 {
		passRate = float64(s.Passed) / float64(s.Attempts) * 100
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Attempts: %d (%d passed, %d failed)", s.Attempts, s.Passed, s.Failed),
		fmt.Sprintf("Pass rate: %.1f%%", passRate),
		fmt.Sprintf("Best time: %s", s.Best),
		fmt.Sprintf("Avg correct: %s", s.AvgCorrect),
		fmt.Sprintf("Avg wrong: %s", s.AvgWrong),
		fmt.Sprintf("Avg all: %s", s.AvgAll),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRunTable prints one row per recorded run.
func RenderRunTable(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Runs"); err != nil {
		return err
	}
	headers := []string{"Started", "Attempts", "Pass", "Best", "Avg correct", "Avg all"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, RunRow(r))
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RunRow formats a run for tabular output.
func RunRow(r model.RunAggregate) []string {
	passRate, best, avgCorrect, avgAll := RunMetrics(r)
	return []string{
		r.StartedAt.Local().Format("2006-01-02 15:04"),
		fmt.Sprintf("%d", r.Attempts),
		fmt.Sprintf("%.0f%%", passRate*100),
		best.String(),
		avgCorrect.String(),
		avgAll.String(),
	}
}

// RenderCurves prints attempt durations with a moving average.
func RenderCurves(w io.Writer, records []model.AttemptRecord, window int) error {
	return RenderCurvesWithSize(w, records, window, 0, defaultPlotHeight, false)
}

// RenderCurvesWithSize prints duration curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, records []model.AttemptRecord, window, totalWidth, height int, useColor bool) error {
	if len(records) == 0 {
		return nil
	}
	durations := make([]float64, len(records))
	for i, r := range records {
		durations[i] = float64(r.DurationMs) / 1000
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotSeriesWithColor(w, "Attempt Durations (s)", []Series{
		{Name: "Duration", Values: durations},
		{Name: fmt.Sprintf("Avg (%d)", window), Values: MovingAverage(durations, window)},
	}, width, height, useColor)
}

func seriesBounds(values []float64) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
