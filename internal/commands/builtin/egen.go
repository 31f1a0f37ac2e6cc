package builtin

import (
	"fmt"
	"regexp"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// egenRe matches "newvar = stat(sourcevar)".
var egenRe = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\(\s*(\w+)\s*\)$`)

// EgenCommand creates a variable from a group-aware aggregate of another
// variable: mean, sum, count, sd, min, max, median, first, last.
type EgenCommand struct{}

// Name returns the command name "egen" for registration and lookup.
func (c *EgenCommand) Name() string { return "egen" }

// Aliases returns the abbreviations for the egen command.
func (c *EgenCommand) Aliases() []string { return nil }

// Description returns a brief description of what the egen command does.
func (c *EgenCommand) Description() string {
	return "Create a variable from an aggregate, optionally per group"
}

// Usage returns the syntax for the egen command.
func (c *EgenCommand) Usage() string { return "egen newvar = stat(varname) [, by(groupvars)]" }

// HelpInfo returns structured help information for the egen command.
func (c *EgenCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "by", Description: "Compute the aggregate within groups", Type: "string"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "egen mean_invest = mean(invest), by(firm)", Description: "Per-firm mean broadcast to every row"},
			{Command: "egen total = sum(invest)", Description: "Whole-sample sum broadcast to every row"},
		},
	}
}

// Execute computes the aggregate column.
func (c *EgenCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	m := egenRe.FindStringSubmatch(strings.TrimSpace(args.MainClause))
	if m == nil {
		return "", fmt.Errorf("expected newvar = stat(varname)")
	}
	newVar, stat, source := m[1], strings.ToLower(m[2]), m[3]

	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	if ds.HasColumn(newVar) {
		return "", fmt.Errorf("variable %s already defined", newVar)
	}
	groups, err := byGroups(ds, args.Options)
	if err != nil {
		return "", err
	}
	values, err := ds.GroupAggregate(source, stat, groups)
	if err != nil {
		return "", err
	}
	if err := ds.SetFloat(newVar, values); err != nil {
		return "", err
	}
	return fmt.Sprintf("variable %s created", newVar), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&EgenCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register egen command: %v", err))
	}
}
