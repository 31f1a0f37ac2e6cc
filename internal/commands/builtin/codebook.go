package builtin

import (
	"fmt"
	"math"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// CodebookCommand reports per-variable detail: type, range, unique values,
// and missing counts.
type CodebookCommand struct{}

// Name returns the command name "codebook" for registration and lookup.
func (c *CodebookCommand) Name() string { return "codebook" }

// Aliases returns the abbreviations for the codebook command.
func (c *CodebookCommand) Aliases() []string { return nil }

// Description returns a brief description of what the codebook command does.
func (c *CodebookCommand) Description() string {
	return "Detailed per-variable report: range, unique values, missing"
}

// Usage returns the syntax for the codebook command.
func (c *CodebookCommand) Usage() string { return "codebook [varlist]" }

// HelpInfo returns structured help information for the codebook command.
func (c *CodebookCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute renders the codebook block for each requested variable.
func (c *CodebookCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	ds, err := activeData(ctx)
	if err != nil {
		return "", err
	}
	vars, err := varList(ds, args.MainClause)
	if err != nil {
		return "", err
	}
	var blocks []string
	for _, name := range vars {
		kind, err := ds.Kind(name)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		sb.WriteString(name)
		if label := ds.Label(name); label != "" {
			sb.WriteString("  " + label)
		}
		sb.WriteString("\n" + strings.Repeat("-", 60) + "\n")
		if kind == dataset.KindString {
			strs, err := ds.Strings(name)
			if err != nil {
				return "", err
			}
			unique := make(map[string]struct{})
			missing := 0
			for _, s := range strs {
				if s == "" {
					missing++
					continue
				}
				unique[s] = struct{}{}
			}
			sb.WriteString("  type: string\n")
			sb.WriteString(fmt.Sprintf("  unique values: %d\n", len(unique)))
			sb.WriteString(fmt.Sprintf("  missing: %d/%d", missing, len(strs)))
		} else {
			vals, err := ds.Float(name)
			if err != nil {
				return "", err
			}
			unique := make(map[float64]struct{})
			missing := 0
			for _, v := range vals {
				if math.IsNaN(v) {
					missing++
					continue
				}
				unique[v] = struct{}{}
			}
			stats := summaryOf(vals)
			sb.WriteString("  type: numeric (double)\n")
			sb.WriteString(fmt.Sprintf("  range: [%s, %s]\n", fmtCell(stats.min), fmtCell(stats.max)))
			sb.WriteString(fmt.Sprintf("  unique values: %d\n", len(unique)))
			sb.WriteString(fmt.Sprintf("  mean: %s  sd: %s\n", fmtCell(stats.mean), fmtCell(stats.sd)))
			sb.WriteString(fmt.Sprintf("  missing: %d/%d", missing, len(vals)))
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n"), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&CodebookCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register codebook command: %v", err))
	}
}
