package est

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statshell/internal/context"
	"statshell/internal/dataset"
	"statshell/internal/stats"
	"statshell/pkg/stattypes"
)

// fitKnown produces a real fitted model over a tiny fixture so the table
// commands have authentic results to work with.
func fitKnown(t *testing.T, kind string) *stats.Model {
	t.Helper()
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 5, 4, 5}
	m, err := stats.FitOLS("y", y, []string{"x"}, [][]float64{x}, stats.OLSOptions{Kind: kind})
	require.NoError(t, err)
	return m
}

func newTestContext(t *testing.T) *context.SessionContext {
	t.Helper()
	ctx := context.New()
	ctx.SetTestMode(true)
	ctx.SetDataset(dataset.New("empty"))
	return ctx
}

func store(t *testing.T, ctx *context.SessionContext, name, kind string) {
	t.Helper()
	ctx.Estimates().Store(stattypes.StoredEstimate{
		Name:      name,
		Result:    fitKnown(t, kind),
		Kind:      kind,
		DepVar:    "y",
		IndepVars: []string{"x"},
		CreatedAt: time.Now(),
	})
}

func exec(t *testing.T, ctx *context.SessionContext, cmd stattypes.Command, mainClause string) (string, error) {
	t.Helper()
	return cmd.Execute(stattypes.CommandArgs{
		MainClause: mainClause,
		Options:    stattypes.OptionSet{},
	}, ctx)
}

func TestEststoNamesCurrentEstimate(t *testing.T) {
	ctx := newTestContext(t)
	store(t, ctx, "est1", "ols")

	out, err := exec(t, ctx, &EststoCommand{}, "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as baseline")
	assert.Equal(t, "baseline", ctx.Estimates().CurrentName())

	// no name generates the next est# slot
	out, err = exec(t, ctx, &EststoCommand{}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as est2")
}

func TestEststoWithoutEstimateFails(t *testing.T) {
	ctx := newTestContext(t)
	_, err := exec(t, ctx, &EststoCommand{}, "anything")
	assert.Error(t, err)
}

func TestEststoClear(t *testing.T) {
	ctx := newTestContext(t)
	store(t, ctx, "est1", "ols")

	out, err := exec(t, ctx, &EststoCommand{}, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")
	assert.Empty(t, ctx.Estimates().Names())
	assert.Equal(t, "", ctx.Estimates().CurrentName())
}

func TestEstimatesListAndReplay(t *testing.T) {
	ctx := newTestContext(t)

	out, err := exec(t, ctx, &EstimatesCommand{}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no estimates stored")

	store(t, ctx, "base", "ols")
	store(t, ctx, "fe", "areg")

	out, err = exec(t, ctx, &EstimatesCommand{}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "base")
	assert.Contains(t, out, "* fe", "current estimate is marked")

	out, err = exec(t, ctx, &EstimatesCommand{}, "replay base")
	require.NoError(t, err)
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "_cons")

	_, err = exec(t, ctx, &EstimatesCommand{}, "replay nosuch")
	assert.Error(t, err)
	_, err = exec(t, ctx, &EstimatesCommand{}, "frobnicate")
	assert.Error(t, err)
}

func TestEsttab(t *testing.T) {
	ctx := newTestContext(t)
	store(t, ctx, "m1", "ols")
	store(t, ctx, "m2", "areg")

	out, err := exec(t, ctx, &EsttabCommand{}, "m1 m2")
	require.NoError(t, err)
	assert.Contains(t, out, "m1")
	assert.Contains(t, out, "m2")
	assert.Contains(t, out, "_cons")
	assert.Contains(t, out, "(0.2828)") // slope standard error
	assert.Contains(t, out, "N")
	assert.Contains(t, out, "* p<0.05")

	// empty namelist falls back to the most recent estimate
	out, err = exec(t, ctx, &EsttabCommand{}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "m2")
	assert.NotContains(t, out, "m1")

	_, err = exec(t, ctx, &EsttabCommand{}, "m1 missing")
	assert.Error(t, err)
}

func TestCoefplot(t *testing.T) {
	ctx := newTestContext(t)
	store(t, ctx, "m1", "ols")
	store(t, ctx, "m2", "areg")

	out, err := exec(t, ctx, &CoefplotCommand{}, "m1 m2")
	require.NoError(t, err)
	assert.Contains(t, out, "m1 (ols)")
	assert.Contains(t, out, "m2 (areg)")
	assert.Contains(t, out, "x")
	assert.Contains(t, out, "o", "each coefficient renders as a point")
	assert.Contains(t, out, "0.6000")
	assert.NotContains(t, out, "_cons", "the constant is not plotted")

	// empty namelist falls back to the most recent estimate
	out, err = exec(t, ctx, &CoefplotCommand{}, "")
	require.NoError(t, err)
	assert.Contains(t, out, "m2 (areg)")
	assert.NotContains(t, out, "m1 (ols)")

	_, err = exec(t, ctx, &CoefplotCommand{}, "missing")
	assert.Error(t, err)
}

func TestCoefplotWithoutEstimatesFails(t *testing.T) {
	ctx := newTestContext(t)
	_, err := exec(t, ctx, &CoefplotCommand{}, "")
	assert.Error(t, err)
}
