package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// KeepCommand keeps only the listed variables, or with an if qualifier only
// the observations where the condition holds.
type KeepCommand struct{}

// Name returns the command name "keep" for registration and lookup.
func (c *KeepCommand) Name() string { return "keep" }

// Aliases returns the abbreviations for the keep command.
func (c *KeepCommand) Aliases() []string { return nil }

// Description returns a brief description of what the keep command does.
func (c *KeepCommand) Description() string { return "Keep only the listed variables or matching observations" }

// Usage returns the syntax for the keep command.
func (c *KeepCommand) Usage() string { return "keep varlist | keep if expression" }

// HelpInfo returns structured help information for the keep command.
func (c *KeepCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "keep firm year invest", Description: "Keep three variables"},
			{Command: "keep if invest > 100", Description: "Keep only high-investment observations"},
		},
	}
}

// Execute keeps the listed variables, or the rows matching the condition.
func (c *KeepCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if expr, ok := ifQualifier(args.MainClause); ok {
		mask, err := observationMask(ds, expr)
		if err != nil {
			return "", err
		}
		before := ds.NumRows()
		if err := ds.FilterRows(mask); err != nil {
			return "", err
		}
		return fmt.Sprintf("(%d observation(s) deleted)", before-ds.NumRows()), nil
	}
	names := strings.Fields(args.MainClause)
	if len(names) == 0 {
		return "", fmt.Errorf("keep requires a variable list or an if condition")
	}
	before := ds.NumCols()
	if err := ds.Keep(names...); err != nil {
		return "", err
	}
	return fmt.Sprintf("(%d variable(s) dropped)", before-ds.NumCols()), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&KeepCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register keep command: %v", err))
	}
}
