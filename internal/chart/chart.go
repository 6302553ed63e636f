// Package chart renders attempt statistics to PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/pwdrill/internal/stats"
)

// ErrNoData is returned when there are no attempts to chart.
var ErrNoData = errors.New("no attempts to chart")

const (
	imageWidth  = 960
	imageHeight = 480
)

// WriteDurationsPNG renders per-attempt durations and their running average.
func WriteDurationsPNG(w io.Writer, data stats.ChartData) error {
	if data.Empty() {
		return ErrNoData
	}
	xs := make([]float64, len(data.Durations))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	durations := data.Durations
	avg := data.RunningAvg
	if len(xs) == 1 {
		// A single point has no x range; stretch it into a flat segment.
		xs = []float64{1, 2}
		durations = []float64{durations[0], durations[0]}
		avg = []float64{avg[0], avg[0]}
	}

	maxY := 0.0
	for _, v := range durations {
		if v > maxY {
			maxY = v
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	graph := gochart.Chart{
		Title:      "Attempt durations",
		Width:      imageWidth,
		Height:     imageHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.XAxis{Name: "Attempt"},
		YAxis: gochart.YAxis{
			Name:  "Seconds",
			Range: &gochart.ContinuousRange{Min: 0, Max: maxY * 1.1},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Duration",
				XValues: xs,
				YValues: durations,
				Style: gochart.Style{
					StrokeColor: drawing.ColorBlue,
					StrokeWidth: 2,
					DotColor:    drawing.ColorBlue,
					DotWidth:    3,
				},
			},
			gochart.ContinuousSeries{
				Name:    "Running average",
				XValues: xs,
				YValues: avg,
				Style: gochart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph.Render(gochart.PNG, w)
}

// WriteOutcomesPNG renders pass and fail counts as bars.
func WriteOutcomesPNG(w io.Writer, data stats.ChartData) error {
	total := data.Passed + data.Failed
	if total == 0 {
		return ErrNoData
	}
	top := data.Passed
	if data.Failed > top {
		top = data.Failed
	}
	bars := gochart.BarChart{
		Title:      "Pass / fail",
		Width:      imageHeight,
		Height:     imageHeight,
		BarWidth:   80,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(top + 1)},
		},
		Bars: []gochart.Value{
			{Value: float64(data.Passed), Label: "Pass", Style: gochart.Style{FillColor: drawing.ColorFromHex("52c41a"), StrokeColor: drawing.ColorFromHex("52c41a")}},
			{Value: float64(data.Failed), Label: "Fail", Style: gochart.Style{FillColor: drawing.ColorFromHex("ff4d4f"), StrokeColor: drawing.ColorFromHex("ff4d4f")}},
		},
	}
	return bars.Render(gochart.PNG, w)
}

// Export writes "<prefix>-durations.png" and "<prefix>-outcomes.png" into dir
// and returns the written paths.
func Export(dir, prefix string, data stats.ChartData) ([]string, error) {
	if data.Empty() {
		return nil, ErrNoData
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	targets := []struct {
		name   string
		render func(io.Writer, stats.ChartData) error
	}{
		{name: prefix + "-durations.png", render: WriteDurationsPNG},
		{name: prefix + "-outcomes.png", render: WriteOutcomesPNG},
	}
	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		path := filepath.Join(dir, target.name)
		if err := writeFile(path, data, target.render); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data stats.ChartData, render func(io.Writer, stats.ChartData) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f, data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
