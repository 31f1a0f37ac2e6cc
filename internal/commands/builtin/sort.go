package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// SortCommand sorts the dataset by one or more key variables. The sort is
// stable; missing values order last.
type SortCommand struct{}

// Name returns the command name "sort" for registration and lookup.
func (c *SortCommand) Name() string { return "sort" }

// Aliases returns the abbreviations for the sort command.
func (c *SortCommand) Aliases() []string { return nil }

// Description returns a brief description of what the sort command does.
func (c *SortCommand) Description() string { return "Sort observations by key variables" }

// Usage returns the syntax for the sort command.
func (c *SortCommand) Usage() string { return "sort varlist" }

// HelpInfo returns structured help information for the sort command.
func (c *SortCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute sorts in place.
func (c *SortCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	keys := strings.Fields(args.MainClause)
	if len(keys) == 0 {
		return "", fmt.Errorf("sort requires at least one variable name")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if err := ds.Sort(keys...); err != nil {
		return "", err
	}
	return fmt.Sprintf("(sorted by %s)", strings.Join(keys, " ")), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&SortCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register sort command: %v", err))
	}
}
