// Package commands provides command registration and lookup for statshell.
// The registry maps canonical names and their abbreviations to handlers; it
// is populated by init functions at startup and treated as immutable during
// the session.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"statshell/pkg/stattypes"
)

// Registry resolves command keywords, including abbreviations, to handlers.
// Every alias maps to exactly one canonical command; resolution happens
// before dispatch so downstream code only sees canonical semantics.
type Registry struct {
	commands map[string]stattypes.Command // canonical name -> command
	aliases  map[string]string            // alias -> canonical name
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]stattypes.Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command and its aliases. Registration happens during
// startup only; a name or alias collision is a programming error and is
// reported so the offending init can panic.
func (r *Registry) Register(cmd stattypes.Command) error {
	name := strings.ToLower(cmd.Name())
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}
	if canonical, exists := r.aliases[name]; exists {
		return fmt.Errorf("command %s collides with alias of %s", name, canonical)
	}
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases() {
		alias = strings.ToLower(alias)
		if _, exists := r.commands[alias]; exists {
			return fmt.Errorf("alias %s collides with command %s", alias, alias)
		}
		if existing, exists := r.aliases[alias]; exists {
			return fmt.Errorf("alias %s already registered for %s", alias, existing)
		}
		r.aliases[alias] = name
	}
	return nil
}

// Resolve looks up a keyword, canonicalizing abbreviations. Lookup is
// case-insensitive.
func (r *Registry) Resolve(keyword string) (stattypes.Command, bool) {
	keyword = strings.ToLower(keyword)
	if canonical, ok := r.aliases[keyword]; ok {
		keyword = canonical
	}
	cmd, ok := r.commands[keyword]
	return cmd, ok
}

// IsValidKeyword reports whether a keyword resolves to a command.
func (r *Registry) IsValidKeyword(keyword string) bool {
	_, ok := r.Resolve(keyword)
	return ok
}

// CommandNames returns the canonical command names, sorted.
func (r *Registry) CommandNames() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a command by canonical name or alias.
func (r *Registry) Get(name string) (stattypes.Command, bool) {
	return r.Resolve(name)
}

// GlobalRegistry is the registry instance commands register themselves with
// during package initialization.
var GlobalRegistry = NewRegistry()
