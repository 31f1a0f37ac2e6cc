package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// MergeCommand joins another dataset onto the active one by a key variable
// (many-to-one, key unique in the using data). A _merge column records match
// status per observation: 1 master only, 3 matched.
type MergeCommand struct{}

// Name returns the command name "merge" for registration and lookup.
func (c *MergeCommand) Name() string { return "merge" }

// Aliases returns the abbreviations for the merge command.
func (c *MergeCommand) Aliases() []string { return nil }

// Description returns a brief description of what the merge command does.
func (c *MergeCommand) Description() string {
	return "Join another dataset by a key variable"
}

// Usage returns the syntax for the merge command.
func (c *MergeCommand) Usage() string { return "merge keyvar using filename" }

// HelpInfo returns structured help information for the merge command.
func (c *MergeCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "merge firm using firminfo.csv", Description: "Attach firm-level columns to every observation"},
		},
		Notes: []string{
			"The key must be unique in the using dataset",
			"_merge is 1 for master-only rows, 2 for using-only rows, 3 for matched rows",
		},
	}
}

// Execute loads the using file and merges it in.
func (c *MergeCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) != 3 || fields[1] != "using" {
		return "", fmt.Errorf("expected: merge keyvar using filename")
	}
	key, path := fields[0], fields[2]

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
	if err := ds.Merge(key, other); err != nil {
		return "", err
	}

	matched := 0
	merge, err := ds.Float("_merge")
	if err == nil {
		for _, v := range merge {
			if v == 3 {
				matched++
			}
		}
	}
	return fmt.Sprintf("(%d of %d observations matched)", matched, ds.NumRows()), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&MergeCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register merge command: %v", err))
	}
}
