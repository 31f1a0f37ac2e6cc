package builtin

import (
	"fmt"
	"strconv"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// ListCommand prints observations from the active dataset.
type ListCommand struct{}

// Name returns the command name "list" for registration and lookup.
func (c *ListCommand) Name() string { return "list" }

// Aliases returns the abbreviations for the list command.
func (c *ListCommand) Aliases() []string { return []string{"l"} }

// Description returns a brief description of what the list command does.
func (c *ListCommand) Description() string { return "List observations" }

// Usage returns the syntax for the list command.
func (c *ListCommand) Usage() string { return "list [varlist] [, obs(#)]" }

// HelpInfo returns structured help information for the list command.
func (c *ListCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Options: []stattypes.HelpOption{
			{Name: "obs", Description: "Maximum number of observations to show", Type: "string", Default: "20"},
		},
		Examples: []stattypes.HelpExample{
			{Command: "list firm year invest, obs(5)", Description: "Show the first five rows of three variables"},
		},
	}
}

// Execute renders the observation table.
func (c *ListCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	vars, err := varList(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	limit := 20
	if text, ok := args.Options.Value("obs"); ok {
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			return "", fmt.Errorf("obs() requires a positive integer, got %q", text)
		}
		limit = n
	}
	if limit > ds.NumRows() {
		limit = ds.NumRows()
	}

	header := append([]string{"obs"}, vars...)
	rows := make([][]string, 0, limit)
	for i := 0; i < limit; i++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(i+1))
		for _, name := range vars {
			row = append(row, ds.CellString(name, i))
		}
		rows = append(rows, row)
	}
	out := table(header, rows)
	if limit < ds.NumRows() {
		out += fmt.Sprintf("\n(%d of %d observations shown)", limit, ds.NumRows())
	}
	return out, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&ListCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register list command: %v", err))
	}
}
