package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/plot"
	"statshell/pkg/stattypes"
)

// ScatterCommand draws a text scatter plot of two numeric variables. The
// first variable is the y axis, following the graphing convention of
// listing the dependent variable first.
type ScatterCommand struct{}

// Name returns the command name "scatter" for registration and lookup.
func (c *ScatterCommand) Name() string { return "scatter" }

// Aliases returns the abbreviations for the scatter command.
func (c *ScatterCommand) Aliases() []string { return nil }

// Description returns a brief description of what the scatter command does.
func (c *ScatterCommand) Description() string { return "Draw a scatter plot of two variables" }

// Usage returns the syntax for the scatter command.
func (c *ScatterCommand) Usage() string { return "scatter yvar xvar [, title(text)]" }

// HelpInfo returns structured help information for the scatter command.
func (c *ScatterCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "scatter invest mvalue", Description: "Investment against market value"},
		},
	}
}

// Execute renders the scatter plot.
func (c *ScatterCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) != 2 {
		return "", fmt.Errorf("scatter requires exactly two variable names: yvar xvar")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	y, err := ds.Float(fields[0])
	if err != nil {
		return "", err
	}
	x, err := ds.Float(fields[1])
	if err != nil {
		return "", err
	}
	opts := plot.Options{
		Title:  args.Options.ValueOr("title", fields[0]+" vs "+fields[1]),
		XTitle: fields[1],
		YTitle: fields[0],
	}
	return plot.Scatter(x, y, opts)
}

func init() {
	if err := commands.GlobalRegistry.Register(&ScatterCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register scatter command: %v", err))
	}
}
