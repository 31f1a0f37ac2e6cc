package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statshell/internal/commands"
	"statshell/internal/context"
	"statshell/internal/dataset"
	"statshell/internal/parser"
	"statshell/pkg/stattypes"
)

// newTestContext builds a session with a small panel whose least-squares fit
// has known coefficients: invest on x gives slope 0.6, constant 2.2.
func newTestContext(t *testing.T) *context.SessionContext {
	t.Helper()
	ds := dataset.New("test")
	require.NoError(t, ds.SetFloat("x", []float64{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}))
	require.NoError(t, ds.SetFloat("y", []float64{2, 4, 5, 4, 5, 3, 5, 6, 5, 6}))
	require.NoError(t, ds.SetStrings("firm", []string{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"}))
	require.NoError(t, ds.SetFloat("year", []float64{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}))
	require.NoError(t, ds.SetFloat("win", []float64{0, 1, 1, 0, 1, 0, 1, 1, 0, 1}))
	require.NoError(t, ds.SetFloat("z", []float64{1.1, 2.0, 3.1, 3.9, 5.2, 0.9, 2.1, 2.9, 4.1, 5.0}))

	ctx := context.New()
	ctx.SetTestMode(true)
	ctx.SetDataset(ds)
	return ctx
}

func run(t *testing.T, ctx *context.SessionContext, cmd stattypes.Command, command string) (string, error) {
	t.Helper()
	mainClause, optionClause := parser.SplitClauses(command)
	options, err := parser.ParseOptions(optionClause)
	require.NoError(t, err)
	for i, r := range mainClause {
		if r == ' ' || r == '\t' {
			mainClause = mainClause[i+1:]
			break
		}
	}
	return cmd.Execute(stattypes.CommandArgs{
		MainClause:   mainClause,
		OptionClause: optionClause,
		Options:      options,
	}, ctx)
}

func TestRegressStoresEstimate(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &RegressCommand{}, "regress y x")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as est1")

	est, err := ctx.Estimates().Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "est1", est.Name)
	assert.Equal(t, "y", est.DepVar)
	coef, ok := est.Result.Coef("x")
	require.True(t, ok)
	assert.InDelta(t, 0.6, coef, 1e-9)
	_, ok = est.Result.Coef("_cons")
	assert.True(t, ok)

	// second fit gets the next auto name
	_, err = run(t, ctx, &RegressCommand{}, "reg y x, robust")
	require.NoError(t, err)
	assert.Equal(t, "est2", ctx.Estimates().CurrentName())
}

func TestRegressFailureLeavesRegistryUntouched(t *testing.T) {
	ctx := newTestContext(t)
	_, err := run(t, ctx, &RegressCommand{}, "regress y x")
	require.NoError(t, err)

	_, err = run(t, ctx, &RegressCommand{}, "regress y nosuchvar")
	require.Error(t, err)
	assert.Equal(t, "est1", ctx.Estimates().CurrentName())
	assert.Len(t, ctx.Estimates().Names(), 1)
}

func TestRegressClusterAndAbsorb(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &RegressCommand{}, "regress y x, cluster(firm)")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as")

	out, err = run(t, ctx, &RegressCommand{}, "regress y x, absorb(firm)")
	require.NoError(t, err)
	assert.Contains(t, out, "Absorbed fixed effects")
}

func TestAregRequiresAbsorb(t *testing.T) {
	ctx := newTestContext(t)
	_, err := run(t, ctx, &AregCommand{}, "areg y x")
	assert.Error(t, err)

	out, err := run(t, ctx, &AregCommand{}, "areg y x, absorb(firm)")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as est1")
	est, err := ctx.Estimates().Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "areg", est.Kind)
}

func TestXtregNeedsPanelDeclaration(t *testing.T) {
	ctx := newTestContext(t)
	_, err := run(t, ctx, &XtregCommand{}, "xtreg y x, fe")
	assert.Error(t, err, "xtset has not run")

	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	require.NoError(t, ds.SetPanelIndex("firm", "year"))

	_, err = run(t, ctx, &XtregCommand{}, "xtreg y x")
	assert.Error(t, err, "fe option is required")

	out, err := run(t, ctx, &XtregCommand{}, "xtreg y x, fe")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as est1")
	est, err := ctx.Estimates().Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "xtreg", est.Kind)
}

func TestIvregress(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &IvregressCommand{}, "ivregress 2sls y (x = z)")
	require.NoError(t, err)
	assert.Contains(t, out, "Instrumented:")
	est, err := ctx.Estimates().Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "iv", est.Kind)

	_, err = run(t, ctx, &IvregressCommand{}, "ivregress y x")
	assert.Error(t, err, "no instrument group")
	_, err = run(t, ctx, &IvregressCommand{}, "ivregress y (x z)")
	assert.Error(t, err, "no = inside the group")
}

func TestLogitAndPoisson(t *testing.T) {
	ctx := newTestContext(t)

	logit, ok := commands.GlobalRegistry.Get("logit")
	require.True(t, ok)
	out, err := run(t, ctx, logit, "logit win x")
	require.NoError(t, err)
	assert.Contains(t, out, "stored as est1")

	poisson, ok := commands.GlobalRegistry.Get("poisson")
	require.True(t, ok)
	_, err = run(t, ctx, poisson, "poisson y x")
	require.NoError(t, err)

	_, err = run(t, ctx, logit, "logit y x")
	assert.Error(t, err, "the outcome is not binary")
}
