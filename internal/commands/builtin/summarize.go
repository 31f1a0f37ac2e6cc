package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// SummarizeCommand reports summary statistics for numeric variables,
// optionally per group.
type SummarizeCommand struct{}

// Name returns the command name "summarize" for registration and lookup.
func (c *SummarizeCommand) Name() string { return "summarize" }

// Aliases returns the abbreviations for the summarize command.
func (c *SummarizeCommand) Aliases() []string { return []string{"su", "sum"} }

// Description returns a brief description of what the summarize command does.
func (c *SummarizeCommand) Description() string {
	return "Summary statistics: obs, mean, sd, min, max"
}

// Usage returns the syntax for the summarize command.
func (c *SummarizeCommand) Usage() string {
	return "summarize [varlist] [, detail by(groupvars)]"
}

// HelpInfo returns structured help information for the summarize command.
func (c *SummarizeCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "detail", Description: "Add percentiles to the report", Type: "flag"},
			{Name: "by", Description: "Report statistics per group", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "summarize invest mvalue", Description: "Basic statistics for two variables"},
			{Command: "by firm: summarize invest", Description: "Per-firm statistics via the group prefix"},
			{Command: "su invest, detail", Description: "Add p25, p50, p75 to the report"},
		},
	}
}

// Execute renders the statistics table.
func (c *SummarizeCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	vars, err := numericVars(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	groups, err := byGroups(ds, args.Options)
	if err != nil {
		return "", err
	}
	detail := args.Options.Flag("detail")

	if len(groups) == 0 {
		return c.render(ds, vars, allRows(ds.NumRows()), detail), nil
	}

	indices, keys, err := ds.GroupIndices(groups)
	if err != nil {
		return "", err
	}
	var sections []string
	for _, key := range keys {
		label := strings.ReplaceAll(key, "\x1f", " ")
		header := fmt.Sprintf("-> %s = %s", strings.Join(groups, " "), label)
		sections = append(sections, header+"\n"+c.render(ds, vars, indices[key], detail))
	}
	return strings.Join(sections, "\n\n"), nil
}

func (c *SummarizeCommand) render(ds *dataset.Dataset, vars []string, rows []int, detail bool) string {
	header := []string{"variable", "obs", "mean", "sd", "min", "max"}
	if detail {
		header = append(header, "p25", "p50", "p75")
	}
	out := make([][]string, 0, len(vars))
	for _, name := range vars {
		all, _ := ds.Float(name)
		vals := make([]float64, 0, len(rows))
		for _, i := range rows {
			vals = append(vals, all[i])
		}
		s := summaryOf(vals)
		row := []string{
			name,
			fmt.Sprintf("%d", s.n),
			fmtCell(s.mean), fmtCell(s.sd), fmtCell(s.min), fmtCell(s.max),
		}
		if detail {
			row = append(row,
				fmtCell(percentile(vals, 25)),
				fmtCell(percentile(vals, 50)),
				fmtCell(percentile(vals, 75)))
		}
		out = append(out, row)
	}
	return table(header, out)
}

// numericVars expands and validates a varlist, keeping numeric columns only.
// An explicit request for a string variable is an error; expansion of the
// full dataset silently skips string columns.
func numericVars(ds *dataset.Dataset, text string) ([]string, error) {
	explicit := strings.TrimSpace(text) != ""
	vars, err := varList(ds, text)
	if err != nil {
		return nil, err
	}
	var numeric []string
	for _, name := range vars {
		kind, err := ds.Kind(name)
		if err != nil {
			return nil, err
		}
		if kind == dataset.KindString {
			if explicit {
				return nil, fmt.Errorf("variable %s is a string variable", name)
			}
			continue
		}
		numeric = append(numeric, name)
	}
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric variables to summarize")
	}
	return numeric, nil
}

func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func init() {
	if err := commands.GlobalRegistry.Register(&SummarizeCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register summarize command: %v", err))
	}
}
