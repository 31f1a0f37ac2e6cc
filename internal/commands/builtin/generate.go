package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/scripting"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// GenerateCommand creates a new variable from a scripting expression
// evaluated against the active dataset.
type GenerateCommand struct{}

// Name returns the command name "generate" for registration and lookup.
func (c *GenerateCommand) Name() string { return "generate" }

// Aliases returns the abbreviations for the generate command.
func (c *GenerateCommand) Aliases() []string { return []string{"gen", "g"} }

// Description returns a brief description of what the generate command does.
func (c *GenerateCommand) Description() string {
	return "Create a new variable from an expression"
}

// Usage returns the syntax for the generate command.
func (c *GenerateCommand) Usage() string { return "generate newvar = expression" }

// HelpInfo returns structured help information for the generate command.
func (c *GenerateCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "generate linvest = ln(invest)", Description: "Log of an existing variable"},
			{Command: "gen ratio = invest / kstock", Description: "Elementwise ratio of two variables"},
			{Command: "g trend = year - 1935", Description: "Constant expression broadcast over rows"},
		},
	}
}

// Execute evaluates the expression and stores the new column.
func (c *GenerateCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	name, values, err := evalAssignment(args.MainClause, ctx)
	if err != nil {
		return "", err
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if ds.HasColumn(name) {
		return "", fmt.Errorf("variable %s already defined; use replace", name)
	}
	if err := ds.SetFloat(name, values); err != nil {
		return "", err
	}
	return fmt.Sprintf("variable %s created", name), nil
}

// evalAssignment parses "name = expression", evaluates the right side, and
// broadcasts the result to the dataset's row count.
func evalAssignment(clause string, ctx stattypes.Context) (string, []float64, error) {
	eq := strings.Index(clause, "=")
	if eq < 0 {
		return "", nil, fmt.Errorf("expected varname = expression")
	}
	name := strings.TrimSpace(clause[:eq])
	expr := strings.TrimSpace(clause[eq+1:])
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", nil, fmt.Errorf("invalid variable name %q", name)
	}
	if expr == "" {
		return "", nil, fmt.Errorf("expected an expression after =")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", nil, err
	}
	eval, err := services.GetEvaluatorService()
	if err != nil {
		return "", nil, err
	}
	value, err := eval.Interp().EvalExpr(expr)
	if err != nil {
		return "", nil, err
	}
	values, err := scripting.Broadcast(value, ds.NumRows())
	if err != nil {
		return "", nil, err
	}
	return name, values, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&GenerateCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register generate command: %v", err))
	}
}
