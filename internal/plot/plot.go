// Package plot renders text-mode charts for the results window: histograms,
// scatter plots, and bar charts built from numeric arrays and labels.
package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Options carries the common chart options.
type Options struct {
	Title   string
	XTitle  string
	YTitle  string
	Width   int  // plot area width in characters; 0 means the default
	Percent bool // histogram: label bars with percentages instead of counts
}

const defaultWidth = 50

// Histogram renders a binned frequency chart of values. NaN entries are
// skipped; bins must be at least 1.
func Histogram(values []float64, bins int, opts Options) (string, error) {
	if bins < 1 {
		return "", fmt.Errorf("bins must be at least 1, got %d", bins)
	}
	var clean []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return "", fmt.Errorf("no observations to plot")
	}

	lo, hi := clean[0], clean[0]
	for _, v := range clean[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = lo + 1
	}
	counts := make([]int, bins)
	for _, v := range clean {
		b := int(float64(bins) * (v - lo) / (hi - lo))
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	writeTitle(&b, opts.Title)
	for i, c := range counts {
		left := lo + (hi-lo)*float64(i)/float64(bins)
		bar := strings.Repeat("█", scale(c, maxCount, width))
		label := fmt.Sprintf("%d", c)
		if opts.Percent {
			label = fmt.Sprintf("%.1f%%", 100*float64(c)/float64(len(clean)))
		}
		fmt.Fprintf(&b, "%10.3g | %s %s\n", left, barStyle.Render(bar), label)
	}
	if opts.XTitle != "" {
		b.WriteString(axisStyle.Render(opts.XTitle) + "\n")
	}
	return b.String(), nil
}

// Scatter renders an x/y point cloud on a character grid. Rows with a NaN
// in either coordinate are skipped.
func Scatter(x, y []float64, opts Options) (string, error) {
	if len(x) != len(y) {
		return "", fmt.Errorf("x and y have different lengths: %d vs %d", len(x), len(y))
	}
	var xs, ys []float64
	for i := range x {
		if !math.IsNaN(x[i]) && !math.IsNaN(y[i]) {
			xs = append(xs, x[i])
			ys = append(ys, y[i])
		}
	}
	if len(xs) == 0 {
		return "", fmt.Errorf("no observations to plot")
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	height := width * 2 / 5

	xlo, xhi := rangeOf(xs)
	ylo, yhi := rangeOf(ys)

	grid := make([][]byte, height)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", width))
	}
	for i := range xs {
		col := scaleF(xs[i], xlo, xhi, width-1)
		row := height - 1 - scaleF(ys[i], ylo, yhi, height-1)
		grid[row][col] = '*'
	}

	var b strings.Builder
	writeTitle(&b, opts.Title)
	if opts.YTitle != "" {
		b.WriteString(axisStyle.Render(opts.YTitle) + "\n")
	}
	for _, row := range grid {
		fmt.Fprintf(&b, "| %s\n", string(row))
	}
	b.WriteString("+" + strings.Repeat("-", width+1) + "\n")
	if opts.XTitle != "" {
		b.WriteString(axisStyle.Render(opts.XTitle) + "\n")
	}
	return b.String(), nil
}

// Bar renders one labeled horizontal bar per category.
func Bar(labels []string, heights []float64, opts Options) (string, error) {
	if len(labels) != len(heights) {
		return "", fmt.Errorf("labels and heights have different lengths: %d vs %d", len(labels), len(heights))
	}
	if len(labels) == 0 {
		return "", fmt.Errorf("no categories to plot")
	}
	maxH := 0.0
	for _, h := range heights {
		if !math.IsNaN(h) && h > maxH {
			maxH = h
		}
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	writeTitle(&b, opts.Title)
	for i, label := range labels {
		h := heights[i]
		if math.IsNaN(h) {
			fmt.Fprintf(&b, "%12s | .\n", label)
			continue
		}
		n := 0
		if maxH > 0 {
			n = scaleF(h, 0, maxH, width)
		}
		fmt.Fprintf(&b, "%12s | %s %.4g\n", label, barStyle.Render(strings.Repeat("█", n)), h)
	}
	return b.String(), nil
}

// CoefPoint is one labeled estimate with its confidence bounds.
type CoefPoint struct {
	Label  string
	Value  float64
	Lo, Hi float64
}

// CoefPlot renders labeled points with confidence whiskers on a shared
// horizontal axis. The axis always spans zero; a ":" guide marks the zero
// position on rows whose whisker does not cover it.
func CoefPlot(points []CoefPoint, opts Options) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("no coefficients to plot")
	}
	lo, hi := 0.0, 0.0
	for _, p := range points {
		if math.IsNaN(p.Value) || math.IsNaN(p.Lo) || math.IsNaN(p.Hi) {
			return "", fmt.Errorf("coefficient %s has no confidence bounds", p.Label)
		}
		lo = math.Min(lo, p.Lo)
		hi = math.Max(hi, p.Hi)
	}
	if lo == hi {
		hi = lo + 1
	}
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	zero := scaleF(0, lo, hi, width-1)
	var b strings.Builder
	writeTitle(&b, opts.Title)
	for _, p := range points {
		row := []byte(strings.Repeat(" ", width))
		row[zero] = ':'
		from := scaleF(p.Lo, lo, hi, width-1)
		to := scaleF(p.Hi, lo, hi, width-1)
		for c := from; c <= to; c++ {
			row[c] = '-'
		}
		row[from], row[to] = '|', '|'
		row[scaleF(p.Value, lo, hi, width-1)] = 'o'
		fmt.Fprintf(&b, "%12s %s %10.4f\n", p.Label, string(row), p.Value)
	}

	axis := []byte(strings.Repeat("-", width))
	axis[zero] = '+'
	fmt.Fprintf(&b, "%12s %s\n", "", axisStyle.Render(string(axis)))
	left := fmt.Sprintf("%.4g", lo)
	right := fmt.Sprintf("%.4g", hi)
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(&b, "%12s %s%s%s\n", "", left, strings.Repeat(" ", pad), right)
	return b.String(), nil
}

func writeTitle(b *strings.Builder, title string) {
	if title != "" {
		b.WriteString(titleStyle.Render(title) + "\n")
	}
}

func rangeOf(v []float64) (lo, hi float64) {
	lo, hi = v[0], v[0]
	for _, x := range v[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}

func scale(v, max, width int) int {
	if max == 0 {
		return 0
	}
	return v * width / max
}

func scaleF(v, lo, hi float64, steps int) int {
	out := int(float64(steps) * (v - lo) / (hi - lo))
	if out < 0 {
		out = 0
	}
	if out > steps {
		out = steps
	}
	return out
}
