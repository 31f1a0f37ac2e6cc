package model

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/internal/stats"
	"statshell/pkg/stattypes"
)

// glmFit is one of the maximum-likelihood fitting functions.
type glmFit func(depvar string, y []float64, names []string, cols [][]float64) (*stats.Model, error)

// glmCommand is the shared implementation of logit, probit, and poisson:
// same clause shape, different family.
type glmCommand struct {
	name        string
	description string
	fit         glmFit
	examples    []stattypes.HelpExample
}

func (c *glmCommand) Name() string        { return c.name }
func (c *glmCommand) Aliases() []string   { return nil }
func (c *glmCommand) Description() string { return c.description }
func (c *glmCommand) Usage() string       { return c.name + " depvar indepvars" }

func (c *glmCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.name,
		Description: c.description,
		Usage:       c.Usage(),
		Examples:    c.examples,
	}
}

func (c *glmCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
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
	result, err := c.fit(depvar, y, indep, cols)
	if err != nil {
		return "", err
	}
	name := storeResult(ctx, result, depvar, indep, args.Options)
	return fmt.Sprintf("%s\n(estimate stored as %s)", result.Summary(), name), nil
}

func init() {
	cmds := []*glmCommand{
		{
			name:        "logit",
			description: "Logistic regression for a binary outcome",
			fit:         stats.FitLogit,
			examples: []stattypes.HelpExample{
				{Command: "logit employed age education", Description: "Probability of employment"},
			},
		},
		{
			name:        "probit",
			description: "Probit regression for a binary outcome",
			fit:         stats.FitProbit,
		},
		{
			name:        "poisson",
			description: "Poisson regression for a count outcome",
			fit:         stats.FitPoisson,
			examples: []stattypes.HelpExample{
				{Command: "poisson accidents exposure age", Description: "Count model for accidents"},
			},
		},
	}
	for _, cmd := range cmds {
		if err := commands.GlobalRegistry.Register(cmd); err != nil {
			panic(fmt.Sprintf("failed to register %s command: %v", cmd.name, err))
		}
	}
}
