package builtin

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// TabulateCommand builds one-way frequency tables and two-way cross
// tabulations.
type TabulateCommand struct{}

// Name returns the command name "tabulate" for registration and lookup.
func (c *TabulateCommand) Name() string { return "tabulate" }

// Aliases returns the abbreviations for the tabulate command.
func (c *TabulateCommand) Aliases() []string { return []string{"tab", "ta"} }

// Description returns a brief description of what the tabulate command does.
func (c *TabulateCommand) Description() string {
	return "Frequency table of one variable, or a two-way cross tabulation"
}

// Usage returns the syntax for the tabulate command.
func (c *TabulateCommand) Usage() string { return "tabulate varname [varname2]" }

// HelpInfo returns structured help information for the tabulate command.
func (c *TabulateCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "tabulate firm", Description: "Counts per firm"},
			{Command: "tab firm year", Description: "Firm-by-year cross tabulation"},
		},
	}
}

// Execute renders the frequency table.
func (c *TabulateCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(args.MainClause)
	switch len(fields) {
	case 1:
		return c.oneWay(ds, fields[0])
	case 2:
		return c.twoWay(ds, fields[0], fields[1])
	default:
		return "", fmt.Errorf("tabulate requires one or two variable names")
	}
}

func (c *TabulateCommand) oneWay(ds *dataset.Dataset, name string) (string, error) {
	keys, err := cellKeys(ds, name)
	if err != nil {
		return "", err
	}
	counts := make(map[string]int)
	var order []string
	for _, key := range keys {
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	sort.Strings(order)

	total := len(keys)
	rows := make([][]string, 0, len(order)+1)
	for _, key := range order {
		pct := 100 * float64(counts[key]) / float64(total)
		rows = append(rows, []string{key, strconv.Itoa(counts[key]), fmt.Sprintf("%.2f", pct)})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(total), "100.00"})
	return table([]string{name, "Freq.", "Percent"}, rows), nil
}

func (c *TabulateCommand) twoWay(ds *dataset.Dataset, rowVar, colVar string) (string, error) {
	rowKeys, err := cellKeys(ds, rowVar)
	if err != nil {
		return "", err
	}
	colKeys, err := cellKeys(ds, colVar)
	if err != nil {
		return "", err
	}

	counts := make(map[string]map[string]int)
	var rowOrder, colOrder []string
	rowSeen := make(map[string]bool)
	colSeen := make(map[string]bool)
	for i := range rowKeys {
		r, col := rowKeys[i], colKeys[i]
		if !rowSeen[r] {
			rowSeen[r] = true
			rowOrder = append(rowOrder, r)
		}
		if !colSeen[col] {
			colSeen[col] = true
			colOrder = append(colOrder, col)
		}
		if counts[r] == nil {
			counts[r] = make(map[string]int)
		}
		counts[r][col]++
	}
	sort.Strings(rowOrder)
	sort.Strings(colOrder)

	header := append([]string{rowVar + "\\" + colVar}, colOrder...)
	header = append(header, "Total")
	rows := make([][]string, 0, len(rowOrder)+1)
	colTotals := make(map[string]int)
	for _, r := range rowOrder {
		row := []string{r}
		rowTotal := 0
		for _, col := range colOrder {
			n := counts[r][col]
			rowTotal += n
			colTotals[col] += n
			row = append(row, strconv.Itoa(n))
		}
		row = append(row, strconv.Itoa(rowTotal))
		rows = append(rows, row)
	}
	totalRow := []string{"Total"}
	grand := 0
	for _, col := range colOrder {
		grand += colTotals[col]
		totalRow = append(totalRow, strconv.Itoa(colTotals[col]))
	}
	totalRow = append(totalRow, strconv.Itoa(grand))
	rows = append(rows, totalRow)
	return table(header, rows), nil
}

// cellKeys renders a column to display strings for grouping.
func cellKeys(ds *dataset.Dataset, name string) ([]string, error) {
	if !ds.HasColumn(name) {
		return nil, fmt.Errorf("variable %s not found", name)
	}
	keys := make([]string, ds.NumRows())
	for i := range keys {
		keys[i] = ds.CellString(name, i)
	}
	return keys, nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&TabulateCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register tabulate command: %v", err))
	}
}
