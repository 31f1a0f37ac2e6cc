package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(t *testing.T) *Dataset {
	t.Helper()
	d := New("main")
	require.NoError(t, d.SetStrings("firm", []string{"a", "a", "b", "b"}))
	require.NoError(t, d.SetFloat("year", []float64{1, 2, 1, 2}))
	require.NoError(t, d.SetFloat("invest", []float64{10, 20, 30, 40}))
	return d
}

func TestDataset_Columns(t *testing.T) {
	d := testData(t)

	assert.Equal(t, 4, d.NumRows())
	assert.Equal(t, 3, d.NumCols())
	assert.Equal(t, []string{"firm", "year", "invest"}, d.ColumnNames())

	vals, err := d.Float("invest")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40}, vals)

	// Float returns a copy; mutating it does not touch the store.
	vals[0] = 99
	again, err := d.Float("invest")
	require.NoError(t, err)
	assert.Equal(t, float64(10), again[0])

	_, err = d.Float("missing")
	assert.Error(t, err)
	_, err = d.Float("firm")
	assert.Error(t, err)
}

func TestDataset_RowCountEnforced(t *testing.T) {
	d := testData(t)
	err := d.SetFloat("short", []float64{1, 2})
	assert.Error(t, err)
}

func TestDataset_DropKeepRename(t *testing.T) {
	d := testData(t)

	require.NoError(t, d.RenameColumn("invest", "capex"))
	assert.True(t, d.HasColumn("capex"))
	assert.False(t, d.HasColumn("invest"))

	require.NoError(t, d.Drop("year"))
	assert.Equal(t, []string{"firm", "capex"}, d.ColumnNames())

	require.NoError(t, d.Keep("capex"))
	assert.Equal(t, []string{"capex"}, d.ColumnNames())

	assert.Error(t, d.Drop("nope"))
}

func TestDataset_FilterAndSort(t *testing.T) {
	d := testData(t)

	require.NoError(t, d.Sort("invest"))
	first, _ := d.Float("invest")
	assert.Equal(t, []float64{10, 20, 30, 40}, first)

	require.NoError(t, d.FilterRows([]bool{false, true, true, false}))
	assert.Equal(t, 2, d.NumRows())
	vals, _ := d.Float("invest")
	assert.Equal(t, []float64{20, 30}, vals)
}

func TestDataset_GroupAggregate(t *testing.T) {
	d := testData(t)

	means, err := d.GroupAggregate("invest", "mean", []string{"firm"})
	require.NoError(t, err)
	assert.Equal(t, []float64{15, 15, 35, 35}, means)

	overall, err := d.GroupAggregate("invest", "mean", nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 25, 25, 25}, overall)

	_, err = d.GroupAggregate("invest", "bogus", []string{"firm"})
	assert.Error(t, err)
}

func TestDataset_Collapse(t *testing.T) {
	d := testData(t)

	require.NoError(t, d.Collapse(map[string]string{"invest": "mean"}, []string{"firm"}))
	assert.Equal(t, 2, d.NumRows())

	firms, err := d.Strings("firm")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, firms)

	means, err := d.Float("invest")
	require.NoError(t, err)
	assert.Equal(t, []float64{15, 35}, means)
}

func TestAggregate(t *testing.T) {
	values := []float64{1, 2, math.NaN(), 3, 4}

	tests := []struct {
		stat     string
		expected float64
	}{
		{"mean", 2.5},
		{"sum", 10},
		{"count", 4},
		{"min", 1},
		{"max", 4},
		{"median", 2.5},
	}
	for _, tt := range tests {
		got, err := Aggregate(values, tt.stat)
		require.NoError(t, err, tt.stat)
		assert.InDelta(t, tt.expected, got, 1e-12, tt.stat)
	}

	sd, err := Aggregate(values, "sd")
	require.NoError(t, err)
	assert.InDelta(t, 1.2909944487, sd, 1e-9)

	empty, err := Aggregate([]float64{math.NaN()}, "mean")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(empty))
}

func TestDataset_Merge(t *testing.T) {
	d := testData(t)

	using := New("using")
	require.NoError(t, using.SetStrings("firm", []string{"a", "b", "c"}))
	require.NoError(t, using.SetFloat("size", []float64{100, 200, 300}))

	require.NoError(t, d.Merge("firm", using))

	// Key "c" exists only in the using data and is appended as a new row.
	require.Equal(t, 5, d.NumRows())

	size, err := d.Float("size")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 100, 200, 200, 300}, size)

	flags, err := d.Float("_merge")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3, 3, 2}, flags)

	firm, err := d.Strings("firm")
	require.NoError(t, err)
	assert.Equal(t, "c", firm[4])

	invest, err := d.Float("invest")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(invest[4]), "master-only columns are missing on using-only rows")
}

func TestDataset_MergeMasterOnlyRows(t *testing.T) {
	d := testData(t)

	using := New("using")
	require.NoError(t, using.SetStrings("firm", []string{"a"}))
	require.NoError(t, using.SetFloat("size", []float64{100}))

	require.NoError(t, d.Merge("firm", using))
	require.Equal(t, 4, d.NumRows())

	flags, err := d.Float("_merge")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 1, 1}, flags)

	size, err := d.Float("size")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(size[2]))
	assert.True(t, math.IsNaN(size[3]))
}

func TestDataset_MergeRequiresUniqueKeys(t *testing.T) {
	d := testData(t)
	using := New("using")
	require.NoError(t, using.SetStrings("firm", []string{"a", "a"}))
	require.NoError(t, using.SetFloat("size", []float64{1, 2}))

	assert.Error(t, d.Merge("firm", using))
}

func TestDataset_Append(t *testing.T) {
	d := testData(t)
	other := New("other")
	require.NoError(t, other.SetStrings("firm", []string{"c"}))
	require.NoError(t, other.SetFloat("invest", []float64{50}))
	require.NoError(t, other.SetFloat("size", []float64{7}))

	require.NoError(t, d.Append(other))
	assert.Equal(t, 5, d.NumRows())

	years, err := d.Float("year")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(years[4]))

	size, err := d.Float("size")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(size[0]))
	assert.Equal(t, float64(7), size[4])
}

func TestDataset_PanelIndex(t *testing.T) {
	d := testData(t)

	require.NoError(t, d.SetPanelIndex("firm", "year"))
	assert.Equal(t, "firm", d.PanelVar())
	assert.Equal(t, "year", d.TimeVar())

	assert.Error(t, d.SetPanelIndex("nope", ""))
	assert.Error(t, d.SetTimeIndex("nope"))
}
