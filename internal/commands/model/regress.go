package model

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/internal/stats"
	"statshell/pkg/stattypes"
)

// RegressCommand fits a linear model by ordinary least squares, with
// heteroskedasticity-robust, cluster-robust, and absorbed-fixed-effect
// variants selected by options.
type RegressCommand struct{}

// Name returns the command name "regress" for registration and lookup.
func (c *RegressCommand) Name() string { return "regress" }

// Aliases returns the abbreviations for the regress command.
func (c *RegressCommand) Aliases() []string { return []string{"reg"} }

// Description returns a brief description of what the regress command does.
func (c *RegressCommand) Description() string { return "Linear regression" }

// Usage returns the syntax for the regress command.
func (c *RegressCommand) Usage() string {
	return "regress depvar indepvars [, robust cluster(varname) absorb(varname) noconstant]"
}

// HelpInfo returns structured help information for the regress command.
func (c *RegressCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "robust", Description: "Heteroskedasticity-robust (HC1) standard errors", Type: "flag"},
			{Name: "cluster", Description: "Cluster-robust standard errors by a group variable", Type: "string"},
			{Name: "absorb", Description: "Absorb fixed effects for a group variable", Type: "string"},
			{Name: "noconstant", Description: "Suppress the constant term", Type: "flag"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "regress invest mvalue kstock", Description: "Classical OLS"},
			{Command: "reg invest mvalue kstock, robust", Description: "Robust standard errors"},
			{Command: "reg invest mvalue kstock, cluster(firm)", Description: "Standard errors clustered by firm"},
			{Command: "reg invest mvalue kstock, absorb(firm)", Description: "Within-firm fixed effects"},
		},
	}
}

// Execute fits the model and stores the result.
func (c *RegressCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	return fitLeastSquares(ds, ctx, args, "ols")
}

// fitLeastSquares is shared between regress and areg: same estimator, the
// commands differ only in whether absorb() is required.
func fitLeastSquares(ds *dataset.Dataset, ctx stattypes.Context, args stattypes.CommandArgs, kind string) (string, error) {
	depvar, indep, err := regressionVars(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	y, err := ds.Float(depvar)
	if err != nil {
		return "", err
	}
	cols, err := numericColumns(ds, indep)
	if err != nil {
		return "", err
	}

	opts := stats.OLSOptions{
		Robust:     args.Options.Flag("robust") || args.Options.Flag("r"),
		NoConstant: args.Options.Flag("noconstant") || args.Options.Flag("nocons"),
		Kind:       kind,
	}
	if text, ok := args.Options.Value("cluster"); ok {
		keys, err := groupKeys(ds, strings.Fields(text))
		if err != nil {
			return "", err
		}
		opts.Cluster = keys
	}
	if text, ok := args.Options.Value("absorb"); ok {
		keys, err := groupKeys(ds, strings.Fields(text))
		if err != nil {
			return "", err
		}
		opts.Absorb = keys
	}

	result, err := stats.FitOLS(depvar, y, indep, cols, opts)
	if err != nil {
		return "", err
	}
	name := storeResult(ctx, result, depvar, indep, args.Options)
	return fmt.Sprintf("%s\n(estimate stored as %s)", result.Summary(), name), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&RegressCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register regress command: %v", err))
	}
}
