// Package est implements the post-estimation commands: naming stored
// results, listing and replaying them, and side-by-side coefficient tables.
package est

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"statshell/internal/commands"
	"statshell/internal/context"
	"statshell/pkg/stattypes"
)

// EststoCommand stores the most recent estimation result under a name. With
// no name an est1, est2, ... name is generated; "eststo clear" drops every
// stored estimate.
type EststoCommand struct{}

// Name returns the command name "eststo" for registration and lookup.
func (c *EststoCommand) Name() string { return "eststo" }

// Aliases returns the abbreviations for the eststo command.
func (c *EststoCommand) Aliases() []string { return nil }

// Description returns a brief description of what the eststo command does.
func (c *EststoCommand) Description() string {
	return "Store the most recent estimate under a name"
}

// Usage returns the syntax for the eststo command.
func (c *EststoCommand) Usage() string { return "eststo [name | clear]" }

// HelpInfo returns structured help information for the eststo command.
func (c *EststoCommand) HelpInfo() stattypes.HelpInfo {
	return stattypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
		Examples: []stattypes.HelpExample{
			{Command: "eststo baseline", Description: "Name the last estimate baseline"},
			{Command: "eststo", Description: "Store under the next est# name"},
			{Command: "eststo clear", Description: "Drop every stored estimate"},
		},
	}
}

// Execute stores or clears.
func (c *EststoCommand) Execute(args stattypes.CommandArgs, ctx stattypes.Context) (string, error) {
	arg := strings.TrimSpace(args.MainClause)
	reg := ctx.Estimates()

	if arg == "clear" {
		concrete, ok := reg.(*context.EstimateRegistry)
		if !ok {
			return "", fmt.Errorf("internal error: unsupported estimate registry type %T", reg)
		}
		concrete.Clear()
		return "(all stored estimates cleared)", nil
	}
	if strings.ContainsAny(arg, " \t") {
		return "", fmt.Errorf("eststo takes at most one name")
	}

	current, err := reg.Resolve("")
	if err != nil {
		return "", err
	}
	name := arg
	if name == "" {
		name = nextAutoName(reg)
	}
	stored := current
	stored.Name = name
	stored.CreatedAt = time.Now()
	reg.Store(stored)
	return fmt.Sprintf("(estimate stored as %s)", name), nil
}

var autoNameRe = regexp.MustCompile(`^est(\d+)$`)

// nextAutoName returns the next free est1, est2, ... name.
func nextAutoName(reg stattypes.EstimateRegistry) string {
	max := 0
	for _, name := range reg.Names() {
		if m := autoNameRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("est%d", max+1)
}

func init() {
	if err := commands.GlobalRegistry.Register(&EststoCommand{}); err != nil {
		panic(fmt.Sprintf("failed to register eststo command: %v", err))
	}
}
