package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// DescribeCommand reports the shape and variable layout of the active
// dataset.
type DescribeCommand struct{}

// Name returns the command name "describe" for registration and lookup.
func (c *DescribeCommand) Name() string { return "describe" }

// Aliases returns the abbreviations for the describe command.
func (c *DescribeCommand) Aliases() []string { return []string{"d", "desc"} }

// Description returns a brief description of what the describe command does.
func (c *DescribeCommand) Description() string {
	return "Describe the active dataset's variables"
}

// Usage returns the syntax for the describe command.
func (c *DescribeCommand) Usage() string { return "describe [varlist]" }

// HelpInfo returns structured help information for the describe command.
func (c *DescribeCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "describe", Description: "Describe every variable"},
			{Command: "d invest kstock", Description: "Describe only invest and kstock"},
		},
	}
}

// Execute renders the variable table.
func (c *DescribeCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	vars, err := varList(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Contains data: %s\n", ds.Name()))
	sb.WriteString(fmt.Sprintf("  obs: %d\n", ds.NumRows()))
	sb.WriteString(fmt.Sprintf(" vars: %d\n\n", ds.NumCols()))

	rows := make([][]string, 0, len(vars))
	for _, name := range vars {
		kind, err := ds.Kind(name)
		if err != nil {
			return "", err
		}
		typeName := "double"
		if kind == dataset.KindString {
			typeName = "str"
		}
		rows = append(rows, []string{name, typeName, ds.Label(name)})
	}
	sb.WriteString(table([]string{"variable", "type", "label"}, rows))
	return sb.String(), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&DescribeCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register describe command: %v", err))
	}
}
