package est

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/context"
	"statshell/pkg/stattypes"
)

// EstimatesCommand manages stored estimation results: list them, replay a
// stored result's full output, or drop them all.
type EstimatesCommand struct{}

// Name returns the command name "estimates" for registration and lookup.
func (c *EstimatesCommand) Name() string { return "estimates" }

// Aliases returns the abbreviations for the estimates command.
func (c *EstimatesCommand) Aliases() []string { return []string{"est"} }

// Description returns a brief description of what the estimates command does.
func (c *EstimatesCommand) Description() string {
	return "List, replay, or clear stored estimation results"
}

// Usage returns the syntax for the estimates command.
func (c *EstimatesCommand) Usage() string {
	return "estimates list | estimates replay [name] | estimates clear"
}

// HelpInfo returns structured help information for the estimates command.
func (c *EstimatesCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "estimates list", Description: "One line per stored estimate"},
			{Command: "estimates replay baseline", Description: "Re-print the baseline coefficient table"},
			{Command: "estimates replay", Description: "Re-print the most recent result"},
		},
	}
}

// Execute routes on the subcommand.
func (c *EstimatesCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	fields := strings.Fields(args.MainClause)
	sub := "list"
	if len(fields) > 0 {
		sub = fields[0]
	}
	reg := ctx.Estimates()

	switch sub {
	case "list", "dir":
		names := reg.Names()
		if len(names) == 0 {
			return "(no estimates stored)", nil
		}
		var sb strings.Builder
		for _, name := range names {
			est, _ := reg.Get(name)
			marker := " "
			if name == reg.CurrentName() {
				marker = "*"
			}
			sb.WriteString(fmt.Sprintf("%s %-12s %-8s %s ~ %s\n",
				marker, name, est.Kind, est.DepVar, strings.Join(est.IndepVars, " ")))
		}
		return strings.TrimRight(sb.String(), "\n"), nil

	case "replay":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		est, err := reg.Resolve(name)
		if err != nil {
			return "", err
		}
		return est.Result.Summary(), nil

	case "clear":
		concrete, ok := reg.(*context.EstimateRegistry)
		if !ok {
			return "", fmt.Errorf("internal error: unsupported estimate registry type %T", reg)
		}
		concrete.Clear()
		return "(all stored estimates cleared)", nil

	default:
		return "", fmt.Errorf("unknown estimates subcommand %s; expected list, replay, or clear", sub)
	}
}

func init() {
	if err := commands.GlobalRegistry.Register(&EstimatesCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register estimates command: %v", err))
	}
}
