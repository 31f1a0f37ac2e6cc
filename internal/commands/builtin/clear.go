package builtin

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// ClearCommand drops all datasets from memory.
type ClearCommand struct{}

// Name returns the command name "clear" for registration and lookup.
func (c *ClearCommand) Name() string { return "clear" }

// Aliases returns the abbreviations for the clear command.
func (c *ClearCommand) Aliases() []string { return nil }

// Description returns a brief description of what the clear command does.
func (c *ClearCommand) Description() string { return "Drop all data from memory" }

// Usage returns the syntax for the clear command.
func (c *ClearCommand) Usage() string { return "clear" }

// HelpInfo returns structured help information for the clear command.
func (c *ClearCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute drops every in-memory dataset.
func (c *ClearCommand) Execute(_ stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	sc, err := sessionContext(ctx)
	if err != nil {
		return "", err
	}
	sc.ClearData()
	return "(data cleared)", nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&ClearCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register clear command: %v", err))
	}
}
