package builtin

import (
	"fmt"
	"os"
	"strings"

	"statshell/internal/commands"
	"statshell/pkg/stattypes"
)

// blockRunner executes a raw input block through the full dispatch pipeline.
// It is injected at startup to avoid a dependency cycle between commands and
// the dispatcher.
var blockRunner func(block string) []string

// SetBlockRunner installs the block executor used by the do command.
func SetBlockRunner(run func(block string) []string) {
	blockRunner = run
}

// DoCommand runs a script file of commands through the interpreter.
type DoCommand struct{}

// Name returns the command name "do" for registration and lookup.
func (c *DoCommand) Name() string { return "do" }

// Aliases returns the abbreviations for the do command.
func (c *DoCommand) Aliases() []string { return nil }

// Description returns a brief description of what the do command does.
func (c *DoCommand) Description() string { return "Run a script file of commands" }

// Usage returns the syntax for the do command.
func (c *DoCommand) Usage() string { return "do filename" }

// HelpInfo returns structured help information for the do command.
func (c *DoCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "do analysis.do", Description: "Run every command in analysis.do"},
		},
	}
}

// Execute reads the script and runs it command by command, concatenating
// the per-command results. A failing command inside the script does not
// abort the rest.
func (c *DoCommand) Execute(args stattypes.CommandArgs, _ stattypes.Context) (string, error) {
	path := strings.TrimSpace(args.MainClause)
	if path == "" {
		return "", fmt.Errorf("do requires a filename")
	}
	if blockRunner == nil {
		return "", fmt.Errorf("script execution unavailable")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	results := blockRunner(string(raw))
	var kept []string
	for _, r := range results {
		if r != "" {
			kept = append(kept, r)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func init() {
	if err := commands.GlobalRegistry.Register(&DoCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register do command: %v", err))
	}
}
