package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramCommand(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &HistogramCommand{}, "histogram invest, bins(3)")
	require.NoError(t, err)
	assert.Contains(t, out, "invest")

	_, err = run(t, ctx, &HistogramCommand{}, "histogram invest kstock")
	assert.Error(t, err)
	_, err = run(t, ctx, &HistogramCommand{}, "histogram invest, bins(none)")
	assert.Error(t, err)
	_, err = run(t, ctx, &HistogramCommand{}, "hist firm")
	assert.Error(t, err, "string variable cannot be binned")
}

func TestScatterCommand(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &ScatterCommand{}, "scatter invest kstock")
	require.NoError(t, err)
	assert.Contains(t, out, "invest vs kstock")

	_, err = run(t, ctx, &ScatterCommand{}, "scatter invest")
	assert.Error(t, err)
}

func TestGraphBarCommand(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &GraphCommand{}, "graph bar invest, over(firm)")
	require.NoError(t, err)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")

	_, err = run(t, ctx, &GraphCommand{}, "graph bar invest")
	assert.Error(t, err, "over() is required")
	_, err = run(t, ctx, &GraphCommand{}, "graph pie invest, over(firm)")
	assert.Error(t, err)
}

func TestHelpCommand(t *testing.T) {
	ctx := newTestContext(t)
	out, err := run(t, ctx, &HelpCommand{}, "help")
	require.NoError(t, err)
	assert.Contains(t, out, "summarize")

	out, err = run(t, ctx, &HelpCommand{}, "help su")
	require.NoError(t, err)
	assert.Contains(t, out, "summarize")

	_, err = run(t, ctx, &HelpCommand{}, "help nosuchcommand")
	assert.Error(t, err)
}
