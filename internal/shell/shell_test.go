package shell

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "statshell/internal/commands/est"   // command registration
	_ "statshell/internal/commands/model" // command registration
)

var initOnce sync.Once

func newTestSession(t *testing.T) *Session {
	t.Helper()
	var initErr error
	initOnce.Do(func() { initErr = InitializeServices(true) })
	require.NoError(t, initErr)
	session, err := NewSession(true)
	require.NoError(t, err)
	return session
}

func TestSessionStartsWithDemoData(t *testing.T) {
	session := newTestSession(t)
	ds, err := session.Context().ActiveData()
	require.NoError(t, err)
	assert.Equal(t, "investment", ds.Name())
	assert.Equal(t, 30, ds.NumRows())
}

func TestSessionEndToEnd(t *testing.T) {
	session := newTestSession(t)

	results := session.ExecuteBlock("xtset firm year\nsummarize invest\nregress invest mvalue kstock")
	require.Len(t, results, 3)
	assert.Contains(t, results[0], "panel variable: firm")
	assert.Contains(t, results[1], "invest")
	assert.Contains(t, results[2], "stored as est1")

	results = session.ExecuteBlock("esttab")
	require.Len(t, results, 1)
	assert.Contains(t, results[0], "est1")

	// scripting fallback shares state with display
	results = session.ExecuteBlock("total = 2 + 3\ndisplay total * 2")
	require.Len(t, results, 2)
	assert.Equal(t, "", results[0])
	assert.Equal(t, "10", results[1])

	// a bad command degrades and the next one still runs
	results = session.ExecuteBlock("regress invest nosuchvar\ndescribe")
	require.Len(t, results, 2)
	assert.Contains(t, results[0], "Error:")
	assert.Contains(t, results[1], "obs: 30")
}
