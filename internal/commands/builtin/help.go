package builtin

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// HelpCommand renders help for one command or an index of all commands.
type HelpCommand struct{}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string { return "help" }

// Aliases returns the abbreviations for the help command.
func (c *HelpCommand) Aliases() []string { return []string{"h"} }

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Show help for a command, or list all commands"
}

// Usage returns the syntax for the help command.
func (c *HelpCommand) Usage() string { return "help [command]" }

// HelpInfo returns structured help information for the help command.
func (c *HelpCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Aliases:     c.Aliases(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute renders the requested help page.
func (c *HelpCommand) Execute(args stattypes.CommandArgs, _ stattypes.Context) (string, error) {
	helpSvc, err := services.GetHelpService()
	if err != nil {
		return "", err
	}
	keyword := strings.TrimSpace(args.MainClause)
	if keyword == "" {
		var infos []stattypes.HelpInfo
		for _, name := range commands.GlobalRegistry.CommandNames() {
			if cmd, ok := commands.GlobalRegistry.Get(name); ok {
				infos = append(infos, cmd.HelpInfo())
			}
		}
		return helpSvc.RenderIndex(infos)
	}
	cmd, ok := commands.GlobalRegistry.Resolve(keyword)
	if !ok {
		return "", fmt.Errorf("no help for %s; not a known command", keyword)
	}
	return helpSvc.RenderCommand(cmd.HelpInfo())
}

func init() {
	if err := commands.GlobalRegistry.Register(&HelpCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register help command: %v", err))
	}
}
