package builtin

import (
	"fmt"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// DisplayCommand evaluates a scripting expression and prints its value. It
// shares the persistent evaluation context with the dispatch fallback, so
// names assigned there are visible here and vice versa.
type DisplayCommand struct{}

// Name returns the command name "display" for registration and lookup.
func (c *DisplayCommand) Name() string { return "display" }

// Aliases returns the abbreviations for the display command.
func (c *DisplayCommand) Aliases() []string { return []string{"di", "dis"} }

// Description returns a brief description of what the display command does.
func (c *DisplayCommand) Description() string { return "Evaluate and print an expression" }

// Usage returns the syntax for the display command.
func (c *DisplayCommand) Usage() string { return "display expression" }

// HelpInfo returns structured help information for the display command.
func (c *DisplayCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "display 2 + 2", Description: "Prints 4"},
			{Command: "di mean(invest)", Description: "Mean of a dataset column"},
			{Command: `di "hello " + "world"`, Description: "String concatenation"},
		},
	}
}

// Execute evaluates the expression text.
func (c *DisplayCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	if args.MainClause == "" {
		return "", fmt.Errorf("display requires an expression")
	}
	eval, err := services.GetEvaluatorService()
	if err != nil {
		return "", err
	}
	return eval.Eval(args.MainClause)
}

func init() {
	if err := commands.GlobalRegistry.Register(&DisplayCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register display command: %v", err))
	}
}
