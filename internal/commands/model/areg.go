package model

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// AregCommand fits a linear model with absorbed fixed effects. It is the
// least-squares estimator with a mandatory absorb() option.
type AregCommand struct{}

// Name returns the command name "areg" for registration and lookup.
func (c *AregCommand) Name() string { return "areg" }

// Aliases returns the abbreviations for the areg command.
func (c *AregCommand) Aliases() []string { return nil }

// Description returns a brief description of what the areg command does.
func (c *AregCommand) Description() string {
	return "Linear regression with absorbed fixed effects"
}

// Usage returns the syntax for the areg command.
func (c *AregCommand) Usage() string {
	return "areg depvar indepvars, absorb(varname) [robust cluster(varname)]"
}

// HelpInfo returns structured help information for the areg command.
func (c *AregCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "absorb", Description: "Group variable whose fixed effects are absorbed (required)", Type: "string"},
			{Name: "robust", Description: "Heteroskedasticity-robust standard errors", Type: "flag"},
			{Name: "cluster", Description: "Cluster-robust standard errors by a group variable", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "areg invest mvalue kstock, absorb(firm)", Description: "Firm fixed effects without reporting them"},
		},
	}
}

// Execute fits the absorbed model and stores the result.
func (c *AregCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	if _, ok := args.Options.Value("absorb"); !ok {
		return "", fmt.Errorf("areg requires an absorb() option")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	return fitLeastSquares(ds, ctx, args, "areg")
}

func init() {
	if err := commands.GlobalRegistry.Register(&AregCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register areg command: %v", err))
	}
}
