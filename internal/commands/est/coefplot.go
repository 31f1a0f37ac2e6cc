package est

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/plot"
	"statshell/pkg/stattypes"
)

// CoefplotCommand draws the slope coefficients of one or more stored
// estimates as points with confidence-interval whiskers. The constant is
// omitted; with no names the most recent estimate is plotted.
type CoefplotCommand struct{}

// Name returns the command name "coefplot" for registration and lookup.
func (c *CoefplotCommand) Name() string { return "coefplot" }

// Aliases returns the abbreviations for the coefplot command.
func (c *CoefplotCommand) Aliases() []string { return nil }

// Description returns a brief description of what the coefplot command does.
func (c *CoefplotCommand) Description() string {
	return "Plot coefficients of stored estimates with confidence intervals"
}

// Usage returns the syntax for the coefplot command.
func (c *CoefplotCommand) Usage() string { return "coefplot [namelist] [, title(text)]" }

// HelpInfo returns structured help information for the coefplot command.
func (c *CoefplotCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "title", Description: "Chart title", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "coefplot", Description: "Plot the most recent estimate"},
			{Command: "coefplot baseline fe", Description: "Plot two stored models, one panel each"},
		},
		Notes: []string{
			"The constant term is not plotted",
		},
	}
}

// Execute resolves the named estimates and renders one panel per estimate.
func (c *CoefplotCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	names := strings.Fields(args.MainClause)
	ests, err := ctx.Estimates().ResolveAll(names)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if title, ok := args.Options.Value("title"); ok {
		sb.WriteString(title + "\n\n")
	}
	for i, est := range ests {
		var points []plot.CoefPoint
		for _, name := range est.Result.CoefNames() {
			if name == "_cons" {
				continue
			}
			coef, ok := est.Result.Coef(name)
			if !ok {
				continue
			}
			lo, hi, ok := est.Result.ConfInt(name)
			if !ok {
				continue
			}
			points = append(points, plot.CoefPoint{Label: name, Value: coef, Lo: lo, Hi: hi})
		}
		if len(points) == 0 {
			return "", fmt.Errorf("estimate %s has no slope coefficients to plot", est.Name)
		}
		chart, err := plot.CoefPlot(points, plot.Options{
			Title: fmt.Sprintf("%s (%s)", est.Name, est.Result.Kind()),
		})
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(chart)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&CoefplotCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register coefplot command: %v", err))
	}
}
