package builtin

import (
	"fmt"
	"os"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// SaveCommand writes the active dataset to disk.
type SaveCommand struct{}

// Name returns the command name "save" for registration and lookup.
func (c *SaveCommand) Name() string { return "save" }

// Aliases returns the abbreviations for the save command.
func (c *SaveCommand) Aliases() []string { return nil }

// Description returns a brief description of what the save command does.
func (c *SaveCommand) Description() string {
	return "Write the active dataset to a .yaml or .csv file"
}

// Usage returns the syntax for the save command.
func (c *SaveCommand) Usage() string { return "save filename [, replace]" }

// HelpInfo returns structured help information for the save command.
func (c *SaveCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "replace", Description: "Overwrite the file if it exists", Type: "flag"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "save results.csv, replace", Description: "Overwrite results.csv with the active dataset"},
		},
	}
}

// Execute writes the active dataset.
func (c *SaveCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	path := strings.TrimSpace(args.MainClause)
	if path == "" {
		return "", fmt.Errorf("save requires a filename")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(path); statErr == nil && !args.Options.Flag("replace") {
		return "", fmt.Errorf("file %s already exists; use the replace option", path)
	}
	data, err := services.GetDataService()
	if err != nil {
		return "", err
	}
	if err := data.Save(ds, path); err != nil {
		return "", err
	}
	return fmt.Sprintf("file %s saved", path), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&SaveCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register save command: %v", err))
	}
}
