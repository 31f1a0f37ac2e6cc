package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/plot"
	"statshell/pkg/stattypes"
)

// HistogramCommand draws a text histogram of one numeric variable.
type HistogramCommand struct{}

// Name returns the command name "histogram" for registration and lookup.
func (c *HistogramCommand) Name() string { return "histogram" }

// Aliases returns the abbreviations for the histogram command.
func (c *HistogramCommand) Aliases() []string { return []string{"hist"} }

// Description returns a brief description of what the histogram command does.
func (c *HistogramCommand) Description() string { return "Draw a histogram of a variable" }

// Usage returns the syntax for the histogram command.
func (c *HistogramCommand) Usage() string {
	return "histogram varname [, bins(#) percent title(text)]"
}

// HelpInfo returns structured help information for the histogram command.
func (c *HistogramCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "bins", Description: "Number of bins", Type: "string", Default: "10"},
			{Name: "percent", Description: "Label bars with percentages instead of counts", Type: "flag"},
			{Name: "title", Description: "Chart title", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "histogram invest, bins(8)", Description: "Eight-bin histogram of investment"},
		},
	}
}

// Execute renders the histogram.
func (c *HistogramCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	name := strings.TrimSpace(args.MainClause)
	if name == "" || len(strings.Fields(name)) != 1 {
		return "", fmt.Errorf("histogram requires exactly one variable name")
	}
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	values, err := ds.Float(name)
	if err != nil {
		return "", err
	}
	bins := 10
	if text, ok := args.Options.Value("bins"); ok {
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return "", fmt.Errorf("bins() requires a positive integer, got %q", text)
		}
		bins = n
	}
	opts := plot.Options{
		Title:   args.Options.ValueOr("title", name),
		Percent: args.Options.Flag("percent"),
	}
	return plot.Histogram(values, bins, opts)
}

func init() {
	if err := commands.GlobalRegistry.Register(&HistogramCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register histogram command: %v", err))
	}
}
