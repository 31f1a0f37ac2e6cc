package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// XtsetCommand declares the panel structure of the active dataset.
type XtsetCommand struct{}

// Name returns the command name "xtset" for registration and lookup.
func (c *XtsetCommand) Name() string { return "xtset" }

// Aliases returns the abbreviations for the xtset command.
func (c *XtsetCommand) Aliases() []string { return nil }

// Description returns a brief description of what the xtset command does.
func (c *XtsetCommand) Description() string {
	return "Declare the dataset's panel (unit and time) variables"
}

// Usage returns the syntax for the xtset command.
func (c *XtsetCommand) Usage() string { return "xtset panelvar [timevar]" }

// HelpInfo returns structured help information for the xtset command.
func (c *XtsetCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "xtset firm year", Description: "Panel of firms observed over years"},
		},
	}
}

// Execute records the panel declaration.
func (c *XtsetCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) < 1 || len(fields) > 2 {
		return "", fmt.Errorf("xtset requires a panel variable and optionally a time variable")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	timeVar := ""
	if len(fields) == 2 {
		timeVar = fields[1]
	}
	if err := ds.SetPanelIndex(fields[0], timeVar); err != nil {
		return "", err
	}
	if timeVar == "" {
		return fmt.Sprintf("panel variable: %s", fields[0]), nil
	}
	return fmt.Sprintf("panel variable: %s\n time variable: %s", fields[0], timeVar), nil
}

// TssetCommand declares the time variable of the active dataset.
type TssetCommand struct{}

// Name returns the command name "tsset" for registration and lookup.
func (c *TssetCommand) Name() string { return "tsset" }

// Aliases returns the abbreviations for the tsset command.
func (c *TssetCommand) Aliases() []string { return nil }

// Description returns a brief description of what the tsset command does.
func (c *TssetCommand) Description() string { return "Declare the dataset's time variable" }

// Usage returns the syntax for the tsset command.
func (c *TssetCommand) Usage() string { return "tsset timevar" }

// HelpInfo returns structured help information for the tsset command.
func (c *TssetCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute records the time declaration.
func (c *TssetCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) != 1 {
		return "", fmt.Errorf("tsset requires exactly one time variable")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if err := ds.SetTimeIndex(fields[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("time variable: %s", fields[0]), nil
}

func init() {
	for _, cmd := range []stattypes.Command{&XtsetCommand{}, &TssetCommand{}} {
		if err := commands.GlobalRegistry.Register(cmd); err != nil {
			panic(fmt.Sprintf("failed to register %s command: %v", cmd.Name(), err))
		}
	}
}
