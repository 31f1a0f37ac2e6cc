package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributions(t *testing.T) {
	assert.InDelta(t, 0.975, normCDF(1.959964), 1e-6)
	assert.InDelta(t, 0.05, zTwoSidedP(1.959964), 1e-6)

	// Critical values from standard t tables.
	assert.InDelta(t, 0.05, tTwoSidedP(2.228, 10), 1e-3)
	assert.InDelta(t, 0.05, tTwoSidedP(1.960, 1e6), 1e-3)

	// F(1, 10) upper 5% critical value is 4.965.
	assert.InDelta(t, 0.05, fTail(4.965, 1, 10), 1e-3)

	assert.InDelta(t, 2.228, tCritical(10), 1e-3)
}

func TestInvert(t *testing.T) {
	A := [][]float64{{4, 2}, {2, 3}}
	inv, err := invert(A)
	require.NoError(t, err)
	assert.InDelta(t, 0.375, inv[0][0], 1e-12)
	assert.InDelta(t, -0.25, inv[0][1], 1e-12)
	assert.InDelta(t, 0.5, inv[1][1], 1e-12)

	_, err = invert([][]float64{{1, 2}, {2, 4}})
	assert.Error(t, err)
}

func TestFitOLS_KnownValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}

	m, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{})
	require.NoError(t, err)

	slope, ok := m.Coef("x")
	require.True(t, ok)
	assert.InDelta(t, 0.6, slope, 1e-10)

	cons, ok := m.Coef("_cons")
	require.True(t, ok)
	assert.InDelta(t, 2.2, cons, 1e-10)

	se, ok := m.StdErr("x")
	require.True(t, ok)
	assert.InDelta(t, 0.28284, se, 1e-4)

	stat, _ := m.Stat("x")
	assert.InDelta(t, 2.1213, stat, 1e-3)

	assert.Equal(t, 5, m.NObs())
	assert.Equal(t, 3, m.DF())
	assert.InDelta(t, 0.6, m.RSquared(), 1e-10)
	assert.InDelta(t, 4.5, m.FStat(), 1e-10)

	lo, hi, ok := m.ConfInt("x")
	require.True(t, ok)
	assert.Less(t, lo, slope)
	assert.Greater(t, hi, slope)

	assert.Contains(t, m.Summary(), "_cons")
	assert.Contains(t, m.Summary(), "Number of obs = 5")
}

func TestFitOLS_MissingDroppedListwise(t *testing.T) {
	x := []float64{1, 2, math.NaN(), 4, 5, 6}
	y := []float64{1, 2, 3, math.NaN(), 5, 6}

	m, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, m.NObs())
}

func TestFitOLS_Collinear(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	twice := []float64{2, 4, 6, 8}
	y := []float64{1, 2, 3, 5}

	_, err := FitOLS("y", y, []string{"x", "x2"}, [][]float64{x, twice}, OLSOptions{})
	assert.Error(t, err)
}

func TestFitOLS_Absorb(t *testing.T) {
	// Two groups with different intercepts and a common slope of 2.
	x := []float64{1, 2, 3, 1, 2, 3}
	y := []float64{3, 5, 7.1, 7, 9, 10.9}
	groups := []string{"a", "a", "a", "b", "b", "b"}

	m, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{Absorb: groups, Kind: "areg"})
	require.NoError(t, err)

	slope, _ := m.Coef("x")
	assert.InDelta(t, 2.0, slope, 1e-10)
	assert.Equal(t, "areg", m.Kind())
	assert.Equal(t, 6-1-2, m.DF())
	_, hasCons := m.Coef("_cons")
	assert.False(t, hasCons)
	assert.Contains(t, m.Summary(), "Absorbed fixed effects: 2 groups")
}

func TestFitOLS_RobustAndCluster(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.3, 11.7, 14.2, 15.8}
	cluster := []string{"a", "a", "b", "b", "c", "c", "d", "d"}

	classical, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{})
	require.NoError(t, err)
	robust, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{Robust: true})
	require.NoError(t, err)
	clustered, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{Cluster: cluster})
	require.NoError(t, err)

	// Point estimates agree across variance estimators.
	b1, _ := classical.Coef("x")
	b2, _ := robust.Coef("x")
	b3, _ := clustered.Coef("x")
	assert.InDelta(t, b1, b2, 1e-12)
	assert.InDelta(t, b1, b3, 1e-12)

	se, _ := robust.StdErr("x")
	assert.Greater(t, se, 0.0)
	se, _ = clustered.StdErr("x")
	assert.Greater(t, se, 0.0)
	assert.Contains(t, clustered.Summary(), "4 clusters")
}

func TestFitOLS_ClusterNeedsTwoGroups(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{1, 2, 3, 4.1}
	_, err := FitOLS("y", y, []string{"x"}, [][]float64{x}, OLSOptions{Cluster: []string{"a", "a", "a", "a"}})
	assert.Error(t, err)
}

func TestFitLogit(t *testing.T) {
	x := []float64{-3, -2, -1, -0.5, 0.5, 1, 2, 3, -1.5, 1.5}
	y := []float64{0, 0, 0, 1, 0, 1, 1, 1, 0, 1}

	m, err := FitLogit("y", y, []string{"x"}, [][]float64{x})
	require.NoError(t, err)

	slope, ok := m.Coef("x")
	require.True(t, ok)
	assert.Greater(t, slope, 0.0)

	p, ok := m.PValue("x")
	require.True(t, ok)
	assert.Greater(t, p, 0.0)
	assert.Less(t, p, 1.0)

	assert.Equal(t, "logit", m.Kind())
	assert.True(t, m.RSquared() > 0 && m.RSquared() < 1)
	assert.Contains(t, m.Summary(), "Pseudo R-squared")
}

func TestFitLogit_RejectsNonBinary(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{0, 1, 2, 1}
	_, err := FitLogit("y", y, []string{"x"}, [][]float64{x})
	assert.Error(t, err)
}

func TestFitPoisson(t *testing.T) {
	x := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	y := []float64{1, 1, 2, 3, 5, 8, 12, 20}

	m, err := FitPoisson("y", y, []string{"x"}, [][]float64{x})
	require.NoError(t, err)

	slope, _ := m.Coef("x")
	assert.InDelta(t, 0.85, slope, 0.2)
	assert.Equal(t, "poisson", m.Kind())
}

func TestFitIV_ExactInstrument(t *testing.T) {
	// With x perfectly instrumented by z, 2SLS reproduces the structural
	// coefficients exactly.
	z := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	x := make([]float64, len(z))
	y := make([]float64, len(z))
	for i, v := range z {
		x[i] = v
		y[i] = 1 + 2*v
	}

	m, err := FitIV(IVSpec{
		DepVar:     "y",
		Y:          y,
		EndogNames: []string{"x"},
		Endog:      [][]float64{x},
		InstrNames: []string{"z"},
		Instr:      [][]float64{z},
	})
	require.NoError(t, err)

	b, _ := m.Coef("x")
	assert.InDelta(t, 2.0, b, 1e-8)
	cons, _ := m.Coef("_cons")
	assert.InDelta(t, 1.0, cons, 1e-8)
	assert.Equal(t, "iv", m.Kind())
	assert.Contains(t, m.Summary(), "Instrumented: x")
}

func TestFitIV_OrderCondition(t *testing.T) {
	_, err := FitIV(IVSpec{
		DepVar:     "y",
		Y:          []float64{1, 2, 3},
		EndogNames: []string{"a", "b"},
		Endog:      [][]float64{{1, 2, 3}, {2, 3, 4}},
		InstrNames: []string{"z"},
		Instr:      [][]float64{{1, 2, 3}},
	})
	assert.Error(t, err)
}
