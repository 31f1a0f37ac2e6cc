package builtin

import (
	"fmt"
	"path/filepath"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// UseCommand loads a dataset from disk and makes it active. A bare name with
// no extension switches to a dataset already in memory.
type UseCommand struct{}

// Name returns the command name "use" for registration and lookup.
func (c *UseCommand) Name() string { return "use" }

// Aliases returns the abbreviations for the use command.
func (c *UseCommand) Aliases() []string { return nil }

// Description returns a brief description of what the use command does.
func (c *UseCommand) Description() string {
	return "Load a dataset from a .yaml or .csv file and make it active"
}

// Usage returns the syntax for the use command.
func (c *UseCommand) Usage() string { return "use filename" }

// HelpInfo returns structured help information for the use command.
func (c *UseCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "use auto.csv", Description: "Load auto.csv from the working directory"},
			{Command: "use investment", Description: "Switch to the in-memory dataset named investment"},
		},
	}
}

// Execute loads or switches the active dataset.
func (c *UseCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	path := strings.TrimSpace(args.MainClause)
	if path == "" {
		return "", fmt.Errorf("use requires a filename or dataset name")
	}
	sc, err := sessionContext(ctx)
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		if ds, ok := sc.Dataset(path); ok {
			sc.SetDataset(ds)
			return fmt.Sprintf("(%s: %d obs, %d vars)", ds.Name(), ds.NumRows(), ds.NumCols()), nil
		}
		path += ".yaml"
	}
	data, err := services.GetDataService()
	if err != nil {
		return "", err
	}
	ds, err := data.Load(path)
	if err != nil {
		return "", err
	}
	sc.SetDataset(ds)
	return fmt.Sprintf("(%s: %d obs, %d vars)", ds.Name(), ds.NumRows(), ds.NumCols()), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&UseCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register use command: %v", err))
	}
}
