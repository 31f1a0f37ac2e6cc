package builtin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoCommand(t *testing.T) {
	ctx := newTestContext(t)

	var got string
	SetBlockRunner(func(block string) []string {
		got = block
		return []string{"first", "", "second"}
	})
	t.Cleanup(func() { SetBlockRunner(nil) })

	path := filepath.Join(t.TempDir(), "analysis.do")
	require.NoError(t, os.WriteFile(path, []byte("describe\nsummarize invest\n"), 0644))

	out, err := run(t, ctx, &DoCommand{}, "do "+path)
	require.NoError(t, err)
	assert.Equal(t, "describe\nsummarize invest\n", got)
	assert.Equal(t, "first\nsecond", out, "empty results are dropped")

	_, err = run(t, ctx, &DoCommand{}, "do "+filepath.Join(t.TempDir(), "missing.do"))
	assert.Error(t, err)
}

func TestDoCommandWithoutRunner(t *testing.T) {
	ctx := newTestContext(t)
	SetBlockRunner(nil)
	_, err := run(t, ctx, &DoCommand{}, "do whatever.do")
	assert.Error(t, err)
}
