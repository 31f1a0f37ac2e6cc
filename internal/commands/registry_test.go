package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statshell/pkg/stattypes"
)

type fakeCommand struct {
	name    string
	aliases []string
}

func (c *fakeCommand) Name() string                 { return c.name }
func (c *fakeCommand) Aliases() []string            { return c.aliases }
func (c *fakeCommand) Description() string          { return "fake" }
func (c *fakeCommand) Usage() string                { return c.name }
func (c *fakeCommand) HelpInfo() stattypes.HelpInfo { return stattypes.HelpInfo{Command: c.name} }
func (c *fakeCommand) Execute(_ stattypes.CommandArgs, _ stattypes.Context) (string, error) {
	return "ok:" + c.name, nil
}

func TestRegistry_AliasResolution(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeCommand{name: "summarize", aliases: []string{"su", "sum"}}))

	canonical, ok := r.Resolve("summarize")
	require.True(t, ok)

	// Every alias resolves to the same handler as the canonical name.
	for _, keyword := range []string{"su", "sum", "SU", "Summarize"} {
		cmd, ok := r.Resolve(keyword)
		require.True(t, ok, keyword)
		assert.Same(t, canonical, cmd, keyword)
	}

	_, ok = r.Resolve("summ")
	assert.False(t, ok, "unregistered abbreviations do not resolve")
}

func TestRegistry_Collisions(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeCommand{name: "regress", aliases: []string{"reg"}}))

	assert.Error(t, r.Register(&fakeCommand{name: "regress"}), "duplicate name")
	assert.Error(t, r.Register(&fakeCommand{name: "reg"}), "name colliding with alias")
	assert.Error(t, r.Register(&fakeCommand{name: "other", aliases: []string{"reg"}}), "duplicate alias")
	assert.Error(t, r.Register(&fakeCommand{name: ""}), "empty name")
}

func TestRegistry_CommandNames(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeCommand{name: "b"}))
	require.NoError(t, r.Register(&fakeCommand{name: "a", aliases: []string{"z"}}))

	// Aliases are not listed, only canonical names.
	assert.Equal(t, []string{"a", "b"}, r.CommandNames())
}
