package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// CollapseCommand replaces the dataset with group aggregates, following the
// "(stat) varlist (stat) varlist" argument form. The default statistic is
// the mean.
type CollapseCommand struct{}

// Name returns the command name "collapse" for registration and lookup.
func (c *CollapseCommand) Name() string { return "collapse" }

// Aliases returns the abbreviations for the collapse command.
func (c *CollapseCommand) Aliases() []string { return nil }

// Description returns a brief description of what the collapse command does.
func (c *CollapseCommand) Description() string {
	return "Replace the dataset with per-group aggregates"
}

// Usage returns the syntax for the collapse command.
func (c *CollapseCommand) Usage() string {
	return "collapse [(stat)] varlist [[(stat)] varlist ...], by(groupvars)"
}

// HelpInfo returns structured help information for the collapse command.
func (c *CollapseCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "by", Description: "Grouping variables; one output row per group", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "collapse (mean) invest (sum) kstock, by(firm)", Description: "One row per firm with mean investment and total capital"},
			{Command: "collapse invest, by(year)", Description: "Yearly means (mean is the default statistic)"},
		},
	}
}

// Execute parses the stat/varlist pairs and collapses in place.
func (c *CollapseCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	groups, err := byGroups(ds, args.Options)
	if err != nil {
		return "", err
	}
	if len(groups) == 0 {
		return "", fmt.Errorf("collapse requires a by() option")
	}

	stats, err := parseCollapseSpec(args.MainClause)
	if err != nil {
		return "", err
	}
	if len(stats) == 0 {
		return "", fmt.Errorf("collapse requires at least one variable")
	}
	if err := ds.Collapse(stats, groups); err != nil {
		return "", err
	}
	return fmt.Sprintf("(collapsed to %d observations)", ds.NumRows()), nil
}

// parseCollapseSpec reads "(stat) var var (stat) var" pairs. A variable seen
// before any statistic defaults to mean.
func parseCollapseSpec(clause string) (map[string]string, error) {
	stats := make(map[string]string)
	stat := "mean"
	rest := strings.TrimSpace(clause)
	for rest != "" {
		if strings.HasPrefix(rest, "(") {
			end := strings.Index(rest, ")")
			if end < 0 {
				return nil, fmt.Errorf("unbalanced parenthesis in statistic specifier")
			}
			stat = strings.ToLower(strings.TrimSpace(rest[1:end]))
			if stat == "" {
				return nil, fmt.Errorf("empty statistic specifier")
			}
			rest = strings.TrimSpace(rest[end+1:])
			continue
		}
		cut := strings.IndexAny(rest, " \t(")
		var name string
		if cut < 0 {
			name, rest = rest, ""
		} else {
			name, rest = rest[:cut], strings.TrimSpace(rest[cut:])
		}
		stats[name] = stat
	}
	return stats, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&CollapseCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register collapse command: %v", err))
	}
}
