package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	out, err := Histogram([]float64{1, 1, 2, 2, 2, 3}, 3, Options{Title: "dist"})
	require.NoError(t, err)
	assert.Contains(t, out, "dist")
	assert.Equal(t, 3+1, strings.Count(out, "\n"), "one line per bin plus title")

	_, err = Histogram(nil, 5, Options{})
	assert.Error(t, err)
	_, err = Histogram([]float64{1}, 0, Options{})
	assert.Error(t, err)

	// NaN values are skipped, not binned.
	out, err = Histogram([]float64{1, math.NaN(), 1}, 1, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "2")
}

func TestHistogram_Percent(t *testing.T) {
	out, err := Histogram([]float64{1, 1, 2, 2}, 2, Options{Percent: true})
	require.NoError(t, err)
	assert.Contains(t, out, "50.0%")
}

func TestScatter(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	out, err := Scatter(x, y, Options{Title: "xy", XTitle: "x", YTitle: "y"})
	require.NoError(t, err)
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "xy")

	_, err = Scatter([]float64{1}, []float64{1, 2}, Options{})
	assert.Error(t, err)
	_, err = Scatter([]float64{math.NaN()}, []float64{1}, Options{})
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	out, err := Bar([]string{"a", "b"}, []float64{1, 2}, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "2")

	_, err = Bar([]string{"a"}, []float64{1, 2}, Options{})
	assert.Error(t, err)
	_, err = Bar(nil, nil, Options{})
	assert.Error(t, err)
}

func TestCoefPlot(t *testing.T) {
	points := []CoefPoint{
		{Label: "x", Value: 0.6, Lo: 0.2, Hi: 1.0},
		{Label: "z", Value: -0.3, Lo: -0.8, Hi: 0.2},
	}
	out, err := CoefPlot(points, Options{Title: "fit"})
	require.NoError(t, err)
	assert.Contains(t, out, "fit")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "z")
	assert.Equal(t, 2, strings.Count(out, "o"), "one point marker per coefficient")
	assert.Contains(t, out, "+", "the axis marks the zero position")
	assert.Contains(t, out, "0.6000")
	assert.Contains(t, out, "-0.3000")

	_, err = CoefPlot(nil, Options{})
	assert.Error(t, err)
	_, err = CoefPlot([]CoefPoint{{Label: "x", Value: math.NaN()}}, Options{})
	assert.Error(t, err)
}
