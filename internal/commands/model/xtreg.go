package model

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// XtregCommand fits a fixed-effects panel regression using the panel
// variable declared by xtset. Only the within (fe) estimator is supported.
type XtregCommand struct{}

// Name returns the command name "xtreg" for registration and lookup.
func (c *XtregCommand) Name() string { return "xtreg" }

// Aliases returns the abbreviations for the xtreg command.
func (c *XtregCommand) Aliases() []string { return nil }

// Description returns a brief description of what the xtreg command does.
func (c *XtregCommand) Description() string {
	return "Fixed-effects panel regression over the xtset panel variable"
}

// Usage returns the syntax for the xtreg command.
func (c *XtregCommand) Usage() string {
	return "xtreg depvar indepvars, fe [robust cluster(varname)]"
}

// HelpInfo returns structured help information for the xtreg command.
func (c *XtregCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "fe", Description: "Within (fixed-effects) estimator; required", Type: "flag"},
			{Name: "robust", Description: "Heteroskedasticity-robust standard errors", Type: "flag"},
			{Name: "cluster", Description: "Cluster-robust standard errors by a group variable", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "xtset firm year", Description: "Declare the panel first"},
			{Command: "xtreg invest mvalue kstock, fe", Description: "Within estimator over firms"},
		},
		Notes: []string{
			"Requires xtset to have declared a panel variable",
		},
	}
}

// Execute resolves the panel variable and fits via absorption.
func (c *XtregCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	if !args.Options.Flag("fe") {
		return "", fmt.Errorf("only the fe estimator is supported; add the fe option")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	panelVar := ds.PanelVar()
	if panelVar == "" {
		return "", fmt.Errorf("no panel variable declared; run xtset first")
	}
	// The within estimator is absorption over the panel variable.
	args.Options["absorb"] = stattypes.TextValue(panelVar)
	delete(args.Options, "fe")
	return fitLeastSquares(ds, ctx, args, "xtreg")
}

func init() {
	if err := commands.GlobalRegistry.Register(&XtregCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register xtreg command: %v", err))
	}
}
