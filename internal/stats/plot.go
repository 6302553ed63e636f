package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

type dash struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight   = 8
	minPlotWidth        = 10
	axisLabelWidth      = 7
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var palette = []string{
	"\x1b[36m", // cyan
	"\x1b[33m", // yellow
	"\x1b[35m", // magenta
	"\x1b[32m", // green
}

// PlotSeries renders a braille line plot. All series share one vertical
// scale, labelled on the left axis.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

// PlotString renders a plot into a string, for embedding in a TUI view.
func PlotString(title string, series []Series, width, height int, useColor bool) string {
	var b strings.Builder
	if err := plotSeries(&b, title, series, width, height, useColor); err != nil {
		return ""
	}
	return strings.TrimRight(b.String(), "\n")
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - utf8.RuneCountInString(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = nonEmpty(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	resampled := make([][]float64, len(series))
	for i, s := range series {
		resampled[i] = resampleSeries(s.Values, width)
		sLo, sHi := seriesBounds(s.Values)
		lo = math.Min(lo, sLo)
		hi = math.Max(hi, sHi)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}

	dotRows := height * 4
	layers := make([]*canvas, len(series))
	for si, values := range resampled {
		c := newCanvas(width, height)
		style := dashes[si%len(dashes)]
		prevX, prevY := -1, -1
		for x, v := range values {
			px, py := x*2, valueToRow(v, lo, hi, dotRows)
			if prevX < 0 {
				if style.plots(px) {
					c.set(px, py)
				}
			} else {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.plots(dx) {
						c.set(dx, dy)
					}
				})
			}
			prevX, prevY = px, py
		}
		layers[si] = c
	}

	useColor := shouldUseColor(w, forceColor)
	labels := axisLabels(height, lo, hi)
	var out strings.Builder
	if title != "" {
		out.WriteString(title)
		out.WriteByte('\n')
	}
	for y := 0; y < height; y++ {
		fmt.Fprintf(&out, "%*s%s", axisLabelWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			mask, layer := compose(layers, x, y)
			ch := rune(0x2800 + int(mask))
			if useColor && layer >= 0 {
				out.WriteString(palette[layer%len(palette)])
				out.WriteRune(ch)
				out.WriteString(colorReset)
				continue
			}
			out.WriteRune(ch)
		}
		out.WriteByte('\n')
	}
	out.WriteString(legend(series, useColor))
	out.WriteString("\n\n")
	_, err := io.WriteString(w, out.String())
	return err
}

func nonEmpty(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func axisLabels(height int, lo, hi float64) []string {
	labels := make([]string, height)
	labels[0] = fmt.Sprintf("%.2f", hi)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.2f", (lo+hi)/2)
	}
	if height > 1 {
		labels[height-1] = fmt.Sprintf("%.2f", lo)
	}
	return labels
}

func legend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("⠁ %s (%s)", s.Name, dashes[i%len(dashes)].name)
		if useColor {
			label = palette[i%len(palette)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func (d dash) plots(x int) bool {
	if d.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%d.period < d.on
}

// canvas holds braille cells; each cell is 2 dots wide and 4 dots tall.
type canvas struct {
	cells [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{cells: cells}
}

func (c *canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(c.cells) || cx >= len(c.cells[cy]) {
		return
	}
	c.cells[cy][cx] |= dotMask(x%2, y%4)
}

func compose(layers []*canvas, x, y int) (uint8, int) {
	var mask uint8
	first := -1
	for i, c := range layers {
		m := c.cells[y][x]
		if m == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		mask |= m
	}
	return mask, first
}

// dotMask maps a dot position inside a cell to its braille bit.
func dotMask(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if x == 0 {
		return left[y]
	}
	return right[y]
}

func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		// Average buckets when there are more points than columns.
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		// Linear interpolation when there are fewer points than columns.
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(math.Floor(pos))
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, lo, hi float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - lo) / (hi - lo)
	return clamp(int(math.Round((1-pos)*float64(rows-1))), 0, rows-1)
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
