package execution

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statshell/internal/commands"
	"statshell/internal/context"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

type recordingCommand struct {
	name    string
	aliases []string
	fail    bool
	panics  bool
	calls   []stattypes.CommandArgs
}

func (c *recordingCommand) Name() string        { return c.name }
func (c *recordingCommand) Aliases() []string   { return c.aliases }
func (c *recordingCommand) Description() string { return "test command" }
func (c *recordingCommand) Usage() string       { return c.name }
func (c *recordingCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{Command: c.name}
}

func (c *recordingCommand) Execute(args stattypes.CommandArgs, _ stattypes.Context) (string, error) {
	c.calls = append(c.calls, args)
	if c.panics {
		panic("index out of range")
	}
	if c.fail {
		return "", errors.New("handler failed")
	}
	return fmt.Sprintf("%s ran: %s", c.name, args.MainClause), nil
}

type fakeEvaluator struct {
	inputs []string
	result string
	err    error
}

func (e *fakeEvaluator) Eval(src string) (string, error) {
	e.inputs = append(e.inputs, src)
	return e.result, e.err
}

func newTestDispatcher(t *testing.T, cmds ...stattypes.Command) (*Dispatcher, *fakeEvaluator, *context.SessionContext) {
	t.Helper()
	registry := commands.NewRegistry()
	for _, cmd := range cmds {
		require.NoError(t, registry.Register(cmd))
	}
	eval := &fakeEvaluator{result: "evaluated"}
	ctx := context.New()
	ctx.SetTestMode(true)
	shell := services.NewShellService()
	require.NoError(t, shell.Initialize())
	return New(registry, eval, shell, ctx), eval, ctx
}

func TestExecute_RegisteredCommand(t *testing.T) {
	cmd := &recordingCommand{name: "summarize", aliases: []string{"su", "sum"}}
	d, eval, _ := newTestDispatcher(t, cmd)

	result := d.Execute("summarize price weight, detail")
	assert.Equal(t, "summarize ran: price weight", result)
	require.Len(t, cmd.calls, 1)
	assert.True(t, cmd.calls[0].Options.Has("detail"))
	assert.Empty(t, eval.inputs, "registered keywords must never reach the fallback")
}

func TestExecute_AliasResolvesToSameHandler(t *testing.T) {
	cmd := &recordingCommand{name: "summarize", aliases: []string{"su", "sum"}}
	d, _, _ := newTestDispatcher(t, cmd)

	d.Execute("summarize price")
	d.Execute("su price")
	d.Execute("SUM price")
	require.Len(t, cmd.calls, 3)
	for _, call := range cmd.calls {
		assert.Equal(t, "price", call.MainClause)
	}
}

func TestExecute_ByPrefixRewrittenIntoOptions(t *testing.T) {
	cmd := &recordingCommand{name: "summarize", aliases: []string{"su"}}
	d, _, _ := newTestDispatcher(t, cmd)

	d.Execute("by firm: summarize invest")
	require.Len(t, cmd.calls, 1)
	got, ok := cmd.calls[0].Options.Value("by")
	require.True(t, ok)
	assert.Equal(t, "firm", got)
}

func TestExecute_OptionParseErrorBecomesResultText(t *testing.T) {
	cmd := &recordingCommand{name: "regress"}
	d, _, _ := newTestDispatcher(t, cmd)

	result := d.Execute("regress y x, cluster(firm")
	assert.Contains(t, result, "Error:")
	assert.Empty(t, cmd.calls, "handler must not run on a lexical error")
}

func TestExecute_HandlerErrorDoesNotPropagate(t *testing.T) {
	cmd := &recordingCommand{name: "regress", fail: true}
	d, _, _ := newTestDispatcher(t, cmd)

	result := d.Execute("regress y x")
	assert.Equal(t, "Error: handler failed", result)
}

func TestExecute_FallbackReceivesFullCommandText(t *testing.T) {
	d, eval, _ := newTestDispatcher(t)

	result := d.Execute("x = 2 + 3")
	assert.Equal(t, "evaluated", result)
	require.Len(t, eval.inputs, 1)
	assert.Equal(t, "x = 2 + 3", eval.inputs[0])
}

func TestExecute_FallbackSeesLineAsTyped(t *testing.T) {
	d, eval, _ := newTestDispatcher(t)

	// An unrecognized keyword under a by prefix falls back with the line
	// as typed, not the rewritten form.
	d.Execute("by firm: frobnicate x")
	require.Len(t, eval.inputs, 1)
	assert.Equal(t, "by firm: frobnicate x", eval.inputs[0])
}

func TestExecute_ForcedEvaluationPrefix(t *testing.T) {
	cmd := &recordingCommand{name: "summarize"}
	d, eval, _ := newTestDispatcher(t, cmd)

	result := d.Execute("> summarize + 1")
	assert.Equal(t, "evaluated", result)
	require.Len(t, eval.inputs, 1)
	assert.Equal(t, "summarize + 1", eval.inputs[0])
	assert.Empty(t, cmd.calls, "> bypasses the keyword table")
}

func TestExecute_HandlerPanicBecomesResultText(t *testing.T) {
	cmd := &recordingCommand{name: "regress", panics: true}
	d, _, ctx := newTestDispatcher(t, cmd)

	result := d.Execute("regress y x")
	assert.Contains(t, result, "Error: internal error")
	assert.Contains(t, result, "index out of range")

	// The session survives: the next command runs normally.
	cmd.panics = false
	assert.Equal(t, "regress ran: y x", d.Execute("regress y x"))
	assert.Len(t, ctx.History(), 2)
}

func TestExecute_FallbackErrorBecomesResultText(t *testing.T) {
	d, eval, _ := newTestDispatcher(t)
	eval.err = errors.New("undefined name: frobnicate")

	result := d.Execute("frobnicate 12")
	assert.Equal(t, "Error: undefined name: frobnicate", result)
}

func TestExecute_ShellEscape(t *testing.T) {
	d, eval, _ := newTestDispatcher(t)

	result := d.Execute("!echo hello")
	assert.Equal(t, "hello", result)
	assert.Empty(t, eval.inputs)
}

func TestExecute_BashKeyword(t *testing.T) {
	d, _, _ := newTestDispatcher(t)

	result := d.Execute("bash echo from bash")
	assert.Equal(t, "from bash", result)
}

func TestExecute_PwdAndCd(t *testing.T) {
	d, _, ctx := newTestDispatcher(t)

	assert.Equal(t, ctx.WorkingDir(), d.Execute("pwd"))

	result := d.Execute("cd /nonexistent-statshell-dir")
	assert.Contains(t, result, "Error:")
}

func TestExecuteBlock_OrderAndDegradation(t *testing.T) {
	good := &recordingCommand{name: "describe", aliases: []string{"d"}}
	bad := &recordingCommand{name: "regress", fail: true}
	d, _, ctx := newTestDispatcher(t, good, bad)

	results := d.ExecuteBlock("describe\nregress y x\nd again")
	require.Len(t, results, 3)
	assert.Equal(t, "describe ran: ", results[0])
	assert.Equal(t, "Error: handler failed", results[1])
	assert.Equal(t, "describe ran: again", results[2])
	assert.Len(t, ctx.History(), 3)
}

func TestExecuteBlock_CommentsAndContinuations(t *testing.T) {
	cmd := &recordingCommand{name: "regress"}
	d, _, ctx := newTestDispatcher(t, cmd)

	results := d.ExecuteBlock("* full-line comment\nregress y \\\n  x1 x2 // trailing note\n")
	require.Len(t, results, 1)
	require.Len(t, cmd.calls, 1)
	assert.Equal(t, "y x1 x2", cmd.calls[0].MainClause)
	assert.Len(t, ctx.History(), 1, "comment-only input produces no history entry")
}
