package builtin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &DescribeCommand{}, "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "obs: 6")
	assert.Contains(t, out, "vars: 4")
	assert.Contains(t, out, "Gross investment")

	out, err = run(t, ctx, &DescribeCommand{}, "describe invest")
	require.NoError(t, err)
	assert.Contains(t, out, "invest")
	assert.NotContains(t, out, "kstock")

	_, err = run(t, ctx, &DescribeCommand{}, "describe nosuchvar")
	assert.Error(t, err)
}

func TestListObsLimit(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &ListCommand{}, "list firm invest, obs(2)")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 of 6 observations shown)")

	_, err = run(t, ctx, &ListCommand{}, "list firm, obs(zero)")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &SummarizeCommand{}, "summarize invest")
	require.NoError(t, err)
	assert.Contains(t, out, "35.0000") // mean of 10..60
	assert.Contains(t, out, "60")      // max

	out, err = run(t, ctx, &SummarizeCommand{}, "by firm: summarize invest")
	require.NoError(t, err)
	assert.Contains(t, out, "-> firm = a")
	assert.Contains(t, out, "-> firm = b")
	assert.Contains(t, out, "20.0000") // mean of firm a
	assert.Contains(t, out, "50.0000") // mean of firm b

	_, err = run(t, ctx, &SummarizeCommand{}, "summarize firm")
	assert.Error(t, err, "string variables cannot be summarized explicitly")
}

func TestTabulate(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &TabulateCommand{}, "tabulate firm")
	require.NoError(t, err)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "Total")

	out, err = run(t, ctx, &TabulateCommand{}, "tab firm year")
	require.NoError(t, err)
	assert.Contains(t, out, "firm\\year")

	_, err = run(t, ctx, &TabulateCommand{}, "tabulate")
	assert.Error(t, err)
}

func TestGenerateAndReplace(t *testing.T) {
	ctx := newTestContext(t)
	_, err := run(t, ctx, &GenerateCommand{}, "generate ratio = invest / kstock")
	require.NoError(t, err)
	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	vals, err := ds.Float("ratio")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, vals[0], 1e-12)

	// generate refuses to overwrite
	_, err = run(t, ctx, &GenerateCommand{}, "gen ratio = 1")
	assert.Error(t, err)

	// replace refuses a new name
	_, err = run(t, ctx, &ReplaceCommand{}, "replace nosuch = 1")
	assert.Error(t, err)

	_, err = run(t, ctx, &ReplaceCommand{}, "replace ratio = ratio * 2")
	require.NoError(t, err)
	vals, err = ds.Float("ratio")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, vals[0], 1e-12)
}

func TestEgen(t *testing.T) {
	ctx := newTestContext(t)
	_, err := run(t, ctx, &EgenCommand{}, "egen mi = mean(invest), by(firm)")
	require.NoError(t, err)
	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	vals, err := ds.Float("mi")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, vals[0], 1e-12)
	assert.InDelta(t, 50.0, vals[5], 1e-12)

	_, err = run(t, ctx, &EgenCommand{}, "egen bad = frobnicate(invest)")
	assert.Error(t, err)
}

func TestDropKeepRenameSort(t *testing.T) {
	ctx := newTestContext(t)
	ds, err := ctx.ActiveData()
	require.NoError(t, err)

	_, err = run(t, ctx, &RenameCommand{}, "rename kstock capital")
	require.NoError(t, err)
	assert.True(t, ds.HasColumn("capital"))

	_, err = run(t, ctx, &SortCommand{}, "sort year firm")
	require.NoError(t, err)
	assert.Equal(t, "a", ds.CellString("firm", 0))
	assert.Equal(t, "b", ds.CellString("firm", 1))

	_, err = run(t, ctx, &DropCommand{}, "drop capital")
	require.NoError(t, err)
	assert.False(t, ds.HasColumn("capital"))

	_, err = run(t, ctx, &KeepCommand{}, "keep firm invest")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.NumCols())
}

func TestDropKeepIfQualifier(t *testing.T) {
	ctx := newTestContext(t)
	ds, err := ctx.ActiveData()
	require.NoError(t, err)

	out, err := run(t, ctx, &DropCommand{}, "drop if year == 3")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 observation(s) deleted)")
	assert.Equal(t, 4, ds.NumRows())

	out, err = run(t, ctx, &KeepCommand{}, "keep if invest > 15")
	require.NoError(t, err)
	assert.Contains(t, out, "(1 observation(s) deleted)")
	invest, err := ds.Float("invest")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 40, 50}, invest)

	_, err = run(t, ctx, &DropCommand{}, "drop if nosuchvar > 0")
	assert.Error(t, err)
	_, err = run(t, ctx, &DropCommand{}, "drop")
	assert.Error(t, err)
	_, err = run(t, ctx, &KeepCommand{}, "keep")
	assert.Error(t, err)
}

func TestCollapse(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &CollapseCommand{}, "collapse (mean) invest (sum) kstock, by(firm)")
	require.NoError(t, err)
	assert.Contains(t, out, "2 observations")

	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	invest, err := ds.Float("invest")
	require.NoError(t, err)
	assert.InDelta(t, 20.0, invest[0], 1e-12)
	kstock, err := ds.Float("kstock")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, kstock[0], 1e-12)

	_, err = run(t, ctx, &CollapseCommand{}, "collapse invest")
	assert.Error(t, err, "by() is required")
}

func TestSaveUseRoundTrip(t *testing.T) {
	ctx := newTestContext(t)
	path := filepath.Join(t.TempDir(), "panel.csv")

	_, err := run(t, ctx, &SaveCommand{}, "save "+path)
	require.NoError(t, err)

	// without replace a second save fails
	_, err = run(t, ctx, &SaveCommand{}, "save "+path)
	assert.Error(t, err)
	_, err = run(t, ctx, &SaveCommand{}, "save "+path+", replace")
	require.NoError(t, err)

	_, err = run(t, ctx, &ClearCommand{}, "clear")
	require.NoError(t, err)
	_, err = ctx.ActiveData()
	assert.Error(t, err)

	out, err := run(t, ctx, &UseCommand{}, "use "+path)
	require.NoError(t, err)
	assert.Contains(t, out, "6 obs")
	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	vals, err := ds.Float("invest")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, vals[0], 1e-12)
}

func TestAppendAndMerge(t *testing.T) {
	ctx := newTestContext(t)
	dir := t.TempDir()

	extra := filepath.Join(dir, "extra.csv")
	_, err := run(t, ctx, &SaveCommand{}, "save "+extra)
	require.NoError(t, err)

	_, err = run(t, ctx, &AppendCommand{}, "append using "+extra)
	require.NoError(t, err)
	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	assert.Equal(t, 12, ds.NumRows())

	_, err = run(t, ctx, &AppendCommand{}, "append "+extra)
	assert.Error(t, err, "missing using keyword")

	// fresh context for merge: build a firm-level lookup file
	ctx = newTestContext(t)
	lookup := filepath.Join(dir, "lookup.csv")
	ds, err = ctx.ActiveData()
	require.NoError(t, err)
	side := ds.Clone("lookup")
	require.NoError(t, side.Collapse(map[string]string{"kstock": "mean"}, []string{"firm"}))
	require.NoError(t, side.RenameColumn("kstock", "avg_k"))
	_, err = run(t, ctx, &ClearCommand{}, "clear")
	require.NoError(t, err)
	ctx.SetDataset(side)
	_, err = run(t, ctx, &SaveCommand{}, "save "+lookup)
	require.NoError(t, err)

	ctx = newTestContext(t)
	out, err := run(t, ctx, &MergeCommand{}, "merge firm using "+lookup)
	require.NoError(t, err)
	assert.Contains(t, out, "6 of 6 observations matched")
	ds, err = ctx.ActiveData()
	require.NoError(t, err)
	assert.True(t, ds.HasColumn("_merge"))
	assert.True(t, ds.HasColumn("avg_k"))
}

func TestXtsetTsset(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &XtsetCommand{}, "xtset firm year")
	require.NoError(t, err)
	assert.Contains(t, out, "panel variable: firm")
	ds, err := ctx.ActiveData()
	require.NoError(t, err)
	assert.Equal(t, "firm", ds.PanelVar())
	assert.Equal(t, "year", ds.TimeVar())

	_, err = run(t, ctx, &TssetCommand{}, "tsset nosuch")
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &DisplayCommand{}, "display 2 + 2")
	require.NoError(t, err)
	assert.Equal(t, "4", out)

	out, err = run(t, ctx, &DisplayCommand{}, "di mean(invest)")
	require.NoError(t, err)
	assert.Equal(t, "35", out)
}
