package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/internal/plot"
	"statshell/pkg/stattypes"
)

// GraphCommand draws bar charts: graph bar varname, over(groupvar) plots the
// per-group mean (or another statistic) of a variable.
type GraphCommand struct{}

// Name returns the command name "graph" for registration and lookup.
func (c *GraphCommand) Name() string { return "graph" }

// Aliases returns the abbreviations for the graph command.
func (c *GraphCommand) Aliases() []string { return nil }

// Description returns a brief description of what the graph command does.
func (c *GraphCommand) Description() string { return "Draw a bar chart of per-group statistics" }

// Usage returns the syntax for the graph command.
func (c *GraphCommand) Usage() string {
	return "graph bar varname, over(groupvar) [stat(mean|sum|count) title(text)]"
}

// HelpInfo returns structured help information for the graph command.
func (c *GraphCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "over", Description: "Grouping variable, one bar per group", Type: "string"},
			{Name: "stat", Description: "Statistic per group", Type: "string", Default: "mean"},
			{Name: "title", Description: "Chart title", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "graph bar invest, over(firm)", Description: "Mean investment per firm"},
			{Command: "graph bar invest, over(firm) stat(sum)", Description: "Total investment per firm"},
		},
	}
}

// Execute renders the bar chart.
func (c *GraphCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	if len(fields) != 2 || fields[0] != "bar" {
		return "", fmt.Errorf("expected: graph bar varname, over(groupvar)")
	}
	name := fields[1]

	over, ok := args.Options.Value("over")
	if !ok {
		return "", fmt.Errorf("graph bar requires an over() option")
	}
	stat := strings.ToLower(args.Options.ValueOr("stat", "mean"))

	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	values, err := ds.Float(name)
	if err != nil {
		return "", err
	}
	indices, keys, err := ds.GroupIndices([]string{over})
	if err != nil {
		return "", err
	}

	labels := make([]string, 0, len(keys))
	heights := make([]float64, 0, len(keys))
	for _, key := range keys {
		group := make([]float64, 0, len(indices[key]))
		for _, row := range indices[key] {
			group = append(group, values[row])
		}
		agg, err := dataset.Aggregate(group, stat)
		if err != nil {
			return "", err
		}
		labels = append(labels, strings.ReplaceAll(key, "\x1f", " "))
		heights = append(heights, agg)
	}
	opts := plot.Options{
		Title: args.Options.ValueOr("title", fmt.Sprintf("%s of %s over %s", stat, name, over)),
	}
	return plot.Bar(labels, heights, opts)
}

func init() {
	if err := commands.GlobalRegistry.Register(&GraphCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register graph command: %v", err))
	}
}
