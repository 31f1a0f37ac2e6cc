package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// DropCommand removes variables, or with an if qualifier removes the
// observations where the condition holds.
type DropCommand struct{}

// Name returns the command name "drop" for registration and lookup.
func (c *DropCommand) Name() string { return "drop" }

// Aliases returns the abbreviations for the drop command.
func (c *DropCommand) Aliases() []string { return nil }

// Description returns a brief description of what the drop command does.
func (c *DropCommand) Description() string { return "Remove variables or observations from the dataset" }

// Usage returns the syntax for the drop command.
func (c *DropCommand) Usage() string { return "drop varlist | drop if expression" }

// HelpInfo returns structured help information for the drop command.
func (c *DropCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "drop kstock mvalue", Description: "Remove two variables"},
			{Command: "drop if year < 1940", Description: "Remove the observations before 1940"},
		},
	}
}

// Execute removes the listed variables, or the rows matching the condition.
func (c *DropCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if expr, ok := ifQualifier(args.MainClause); ok {
		mask, err := observationMask(ds, expr)
		if err != nil {
			return "", err
		}
		dropped := 0
		for i, m := range mask {
			mask[i] = !m
			if m {
				dropped++
			}
		}
		if err := ds.FilterRows(mask); err != nil {
			return "", err
		}
		return fmt.Sprintf("(%d observation(s) deleted)", dropped), nil
	}
	names := strings.Fields(args.MainClause)
	if len(names) == 0 {
		return "", fmt.Errorf("drop requires a variable list or an if condition")
	}
	if err := ds.Drop(names...); err != nil {
		return "", err
	}
	return fmt.Sprintf("(%d variable(s) dropped)", len(names)), nil
}

// ifQualifier splits a leading "if" keyword from its condition expression.
func ifQualifier(clause string) (string, bool) {
	fields := strings.SplitN(strings.TrimSpace(clause), " ", 2)
	if len(fields) == 2 && strings.EqualFold(fields[0], "if") {
		return strings.TrimSpace(fields[1]), true
	}
	return "", false
}

func init() {
	if err := commands.GlobalRegistry.Register(&DropCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register drop command: %v", err))
	}
}
