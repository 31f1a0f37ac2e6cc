package builtin

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// ReplaceCommand overwrites an existing variable with a new expression.
type ReplaceCommand struct{}

// Name returns the command name "replace" for registration and lookup.
func (c *ReplaceCommand) Name() string { return "replace" }

// Aliases returns the abbreviations for the replace command.
func (c *ReplaceCommand) Aliases() []string { return nil }

// Description returns a brief description of what the replace command does.
func (c *ReplaceCommand) Description() string {
	return "Overwrite an existing variable from an expression"
}

// Usage returns the syntax for the replace command.
func (c *ReplaceCommand) Usage() string { return "replace varname = expression" }

// HelpInfo returns structured help information for the replace command.
func (c *ReplaceCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "replace invest = invest / 1000", Description: "Rescale a variable in place"},
		},
	}
}

// Execute evaluates the expression and overwrites the column.
func (c *ReplaceCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	name, values, err := evalAssignment(args.MainClause, ctx)
	if err != nil {
		return "", err
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if !ds.HasColumn(name) {
		return "", fmt.Errorf("variable %s not found; use generate", name)
	}
	if err := ds.SetFloat(name, values); err != nil {
		return "", err
	}
	return fmt.Sprintf("variable %s replaced", name), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&ReplaceCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register replace command: %v", err))
	}
}
