package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// AppendCommand adds the observations of another dataset below the active
// one. Columns are unioned; values missing on either side pad with missing.
type AppendCommand struct{}

// Name returns the command name "append" for registration and lookup.
func (c *AppendCommand) Name() string { return "append" }

// Aliases returns the abbreviations for the append command.
func (c *AppendCommand) Aliases() []string { return nil }

// Description returns a brief description of what the append command does.
func (c *AppendCommand) Description() string {
	return "Append observations from another dataset"
}

// Usage returns the syntax for the append command.
func (c *AppendCommand) Usage() string { return "append using filename" }

// HelpInfo returns structured help information for the append command.
func (c *AppendCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "append using extra.csv", Description: "Stack extra.csv's rows below the active data"},
		},
	}
}

// Execute loads the using file and appends it.
func (c *AppendCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	path, err := usingPath(args.MainClause)
	if err != nil {
		return "", err
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	data, err := services.GetDataService()
	if err != nil {
		return "", err
	}
	other, err := data.Load(path)
	if err != nil {
		return "", err
	}
	before := ds.NumRows()
	if err := ds.Append(other); err != nil {
		return "", err
	}
	return fmt.Sprintf("(%d observations appended)", ds.NumRows()-before), nil
}

// usingPath parses a "using filename" tail.
func usingPath(clause string) (string, error) {
	fields := strings.Fields(clause)
	if len(fields) != 2 || fields[0] != "using" {
		return "", fmt.Errorf("expected: using filename")
	}
	return fields[1], nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&AppendCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register append command: %v", err))
	}
}
