package builtin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"statshell/internal/context"
	"statshell/internal/dataset"
	"statshell/internal/parser"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

var setupOnce sync.Once

// setupServices registers the service stack once for the whole package.
func setupServices(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		reg := services.GetGlobalRegistry()
		for _, svc := range []stattypes.Service{
			services.NewConfigurationService(),
			services.NewShellService(),
			services.NewDataService(),
			services.NewPlainHelpService(),
			services.NewEvaluatorService(),
		} {
			if err := reg.RegisterService(svc); err != nil {
				panic(err)
			}
		}
	})
}

// newTestContext builds a session with a small three-firm panel loaded.
func newTestContext(t *testing.T) *context.SessionContext {
	t.Helper()
	setupServices(t)

	ds := dataset.New("test")
	require.NoError(t, ds.SetStrings("firm", []string{"a", "a", "a", "b", "b", "b"}))
	require.NoError(t, ds.SetFloat("year", []float64{1, 2, 3, 1, 2, 3}))
	require.NoError(t, ds.SetFloat("invest", []float64{10, 20, 30, 40, 50, 60}))
	require.NoError(t, ds.SetFloat("kstock", []float64{1, 2, 3, 4, 5, 6}))
	ds.SetLabel("invest", "Gross investment")

	ctx := context.New()
	ctx.SetTestMode(true)
	ctx.SetDataset(ds)

	eval, err := services.GetEvaluatorService()
	require.NoError(t, err)
	eval.BindContext(ctx)
	return ctx
}

// run executes a single command string against a registered command the way
// the dispatcher would: rewrite, split, parse options, execute.
func run(t *testing.T, ctx *context.SessionContext, cmd stattypes.Command, command string) (string, error) {
	t.Helper()
	command = parser.RewriteByPrefix(command)
	mainClause, optionClause := parser.SplitClauses(command)
	options, err := parser.ParseOptions(optionClause)
	require.NoError(t, err)

	if i := indexSpace(mainClause); i >= 0 {
		mainClause = trimLeft(mainClause[i:])
	} else {
		mainClause = ""
	}
	return cmd.Execute(stattypes.CommandArgs{
		MainClause:   mainClause,
		OptionClause: optionClause,
		Options:      options,
	}, ctx)
}

func indexSpace(s string) int {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return i
		}
	}
	return -1
}

func trimLeft(s string) string {
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	return s
}
