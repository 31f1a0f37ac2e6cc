// Package stattypes defines the shared types for the statshell command system.
// This file contains the types for command parsing, execution, and the help
// system: logical commands, option sets, and structured help information.
package stattypes

// LogicalCommand is a single normalized instruction: comment-stripped,
// continuation-joined, and split into its main and option clauses.
type LogicalCommand struct {
	Raw          string // as typed, after comment stripping and continuation joining
	MainClause   string // text before the first top-level comma
	OptionClause string // text after it, empty when no separator existed
}

// CommandArgs carries the parsed pieces of a logical command into a handler.
type CommandArgs struct {
	MainClause   string
	OptionClause string
	Options      OptionSet
}

// HelpInfo represents structured help information for a command.
type HelpInfo struct {
	Command     string        `json:"command"`
	Aliases     []string      `json:"aliases,omitempty"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Options     []HelpOption  `json:"options,omitempty"`
	Examples    []HelpExample `json:"examples,omitempty"`
	Notes       []string      `json:"notes,omitempty"`
}

// HelpOption describes one command option.
type HelpOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"` // "flag" or "string"
	Default     string `json:"default,omitempty"`
}

// HelpExample represents a usage example with explanation.
type HelpExample struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}
