package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// RenameCommand renames one variable.
type RenameCommand struct{}

// Name returns the command name "rename" for registration and lookup.
func (c *RenameCommand) Name() string { return "rename" }

// Aliases returns the abbreviations for the rename command.
func (c *RenameCommand) Aliases() []string { return []string{"ren"} }

// Description returns a brief description of what the rename command does.
func (c *RenameCommand) Description() string { return "Rename a variable" }

// Usage returns the syntax for the rename command.
func (c *RenameCommand) Usage() string { return "rename oldname newname" }

// HelpInfo returns structured help information for the rename command.
func (c *RenameCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute renames the variable.
func (c *RenameCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) != 2 {
		return "", fmt.Errorf("rename requires exactly two names: old and new")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if err := ds.RenameColumn(fields[0], fields[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("variable %s renamed to %s", fields[0], fields[1]), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&RenameCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register rename command: %v", err))
	}
}
