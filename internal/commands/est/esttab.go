package est

import (
	"fmt"
	"math"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// EsttabCommand renders stored estimates side by side, one column per
// estimate, coefficients starred by significance with standard errors in
// parentheses beneath.
type EsttabCommand struct{}

// Name returns the command name "esttab" for registration and lookup.
func (c *EsttabCommand) Name() string { return "esttab" }

// Aliases returns the abbreviations for the esttab command.
func (c *EsttabCommand) Aliases() []string { return nil }

// Description returns a brief description of what the esttab command does.
func (c *EsttabCommand) Description() string {
	return "Side-by-side table of stored estimation results"
}

// Usage returns the syntax for the esttab command.
func (c *EsttabCommand) Usage() string { return "esttab [namelist]" }

// HelpInfo returns structured help information for the esttab command.
func (c *EsttabCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "esttab baseline robust fe", Description: "Compare three stored models"},
			{Command: "esttab", Description: "Table of the most recent estimate"},
		},
		Notes: []string{
			"Stars: * p<0.05, ** p<0.01, *** p<0.001",
		},
	}
}

// Execute resolves the named estimates and renders the table.
func (c *EsttabCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	names := strings.Fields(args.MainClause)
	ests, err := ctx.Estimates().ResolveAll(names)
	if err != nil {
		return "", err
	}

	// Row order: coefficient names in first appearance order across models.
	var rowNames []string
	seen := make(map[string]bool)
	for _, est := range ests {
		for _, name := range est.Result.CoefNames() {
			if !seen[name] {
				seen[name] = true
				rowNames = append(rowNames, name)
			}
		}
	}

	const colWidth = 14
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s", ""))
	for _, est := range ests {
		sb.WriteString(fmt.Sprintf("%*s", colWidth, est.Name))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-12s", ""))
	for _, est := range ests {
		sb.WriteString(fmt.Sprintf("%*s", colWidth, "("+est.Result.Kind()+")"))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 12+colWidth*len(ests)) + "\n")

	for _, rowName := range rowNames {
		sb.WriteString(fmt.Sprintf("%-12s", rowName))
		for _, est := range ests {
			cell := ""
			if coef, ok := est.Result.Coef(rowName); ok {
				p, _ := est.Result.PValue(rowName)
				cell = fmt.Sprintf("%.4f%s", coef, stars(p))
			}
			sb.WriteString(fmt.Sprintf("%*s", colWidth, cell))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%-12s", ""))
		for _, est := range ests {
			cell := ""
			if se, ok := est.Result.StdErr(rowName); ok {
				cell = fmt.Sprintf("(%.4f)", se)
			}
			sb.WriteString(fmt.Sprintf("%*s", colWidth, cell))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", 12+colWidth*len(ests)) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s", "N"))
	for _, est := range ests {
		sb.WriteString(fmt.Sprintf("%*d", colWidth, est.Result.NObs()))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-12s", "R-sq"))
	for _, est := range ests {
		cell := ""
		if r2 := est.Result.RSquared(); !math.IsNaN(r2) {
			cell = fmt.Sprintf("%.3f", r2)
		}
		sb.WriteString(fmt.Sprintf("%*s", colWidth, cell))
	}
	sb.WriteString("\n* p<0.05, ** p<0.01, *** p<0.001")
	return sb.String(), nil
}

// stars maps a p-value to its significance markers.
func stars(p float64) string {
	switch {
	case math.IsNaN(p):
		return ""
	case p < 0.001:
		return "***"
	case p < 0.01:
		return "**"
	case p < 0.05:
		return "*"
	default:
		return ""
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&EsttabCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register esttab command: %v", err))
	}
}
