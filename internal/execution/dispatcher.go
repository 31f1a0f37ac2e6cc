// Package execution wires the parsing pipeline to command handlers: it
// normalizes raw input into logical commands, rewrites group prefixes,
// splits clauses, parses options, and routes each command to its handler
// or to the scripting fallback.
package execution

import (
	"fmt"
	"strings"

	"statshell/internal/commands"
	"statshell/internal/logger"
	"statshell/internal/parser"
	"statshell/internal/services"
	"statshell/pkg/stattypes"
)

// Dispatcher executes logical commands against a session context. Handler
// errors are converted to result text at this boundary; nothing a command
// does can terminate the session.
type Dispatcher struct {
	registry  *commands.Registry
	evaluator stattypes.Evaluator
	shell     *services.ShellService
	ctx       stattypes.Context
}

// New creates a dispatcher over the given registry, evaluator, and context.
func New(registry *commands.Registry, evaluator stattypes.Evaluator, shell *services.ShellService, ctx stattypes.Context) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		evaluator: evaluator,
		shell:     shell,
		ctx:       ctx,
	}
}

// ExecuteBlock normalizes a raw, possibly multi-line input block and
// executes each logical command in order. One result string is returned per
// logical command; a failing command degrades to an error message and never
// stops the commands after it.
func (d *Dispatcher) ExecuteBlock(block string) []string {
	var results []string
	for _, command := range parser.Normalize(block) {
		results = append(results, d.Execute(command))
	}
	return results
}

// Execute runs a single already-normalized logical command and returns its
// result text.
func (d *Dispatcher) Execute(command string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Command panicked", "command", command, "panic", r)
			result = fmt.Sprintf("Error: internal error: %v", r)
		}
	}()

	command = strings.TrimSpace(command)
	if command == "" {
		return ""
	}
	d.ctx.RecordHistory(command)

	// Shell escape, forced evaluation, and directory operations
	// short-circuit before the keyword table is consulted.
	if strings.HasPrefix(command, "!") {
		return d.runShell(strings.TrimSpace(command[1:]))
	}
	if strings.HasPrefix(command, ">") {
		return d.fallback(strings.TrimSpace(command[1:]))
	}
	if rest, ok := strip(command, "bash"); ok {
		return d.runShell(rest)
	}
	if rest, ok := strip(command, "cd"); ok || command == "cd" {
		return d.changeDir(rest)
	}
	if command == "pwd" {
		return d.ctx.WorkingDir()
	}
	if rest, ok := strip(command, "ls"); ok || command == "ls" {
		return d.runShell(strings.TrimSpace("ls " + rest))
	}

	rewritten := parser.RewriteByPrefix(command)
	mainClause, optionClause := parser.SplitClauses(rewritten)

	keyword := firstField(mainClause)
	cmd, found := d.registry.Resolve(keyword)
	if !found {
		// The fallback sees the line as typed, not the by-rewritten form.
		return d.fallback(command)
	}
	logger.CommandDispatch(keyword, cmd.Name())

	options, err := parser.ParseOptions(optionClause)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	args := stattypes.CommandArgs{
		MainClause:   strings.TrimSpace(strings.TrimPrefix(mainClause, keyword)),
		OptionClause: optionClause,
		Options:      options,
	}
	result, err = cmd.Execute(args, d.ctx)
	if err != nil {
		logger.Error("Command failed", "command", cmd.Name(), "error", err)
		return fmt.Sprintf("Error: %s", err)
	}
	return result
}

// fallback hands the full command text to the scripting evaluator. By
// construction it is unreachable for any keyword present in the table.
func (d *Dispatcher) fallback(command string) string {
	if d.evaluator == nil {
		return fmt.Sprintf("Error: unrecognized command: %s", firstField(command))
	}
	result, err := d.evaluator.Eval(command)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	return result
}

func (d *Dispatcher) runShell(commandLine string) string {
	if commandLine == "" {
		return "Error: no shell command given"
	}
	if d.shell == nil {
		return "Error: shell execution unavailable"
	}
	out, err := d.shell.Run(commandLine, d.ctx.WorkingDir())
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	return strings.TrimRight(out, "\n")
}

func (d *Dispatcher) changeDir(dir string) string {
	if dir == "" {
		return d.ctx.WorkingDir()
	}
	if err := d.ctx.SetWorkingDir(dir); err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	return d.ctx.WorkingDir()
}

// strip returns the remainder after a leading keyword followed by
// whitespace. A bare keyword with no argument does not match.
func strip(command, keyword string) (string, bool) {
	if len(command) > len(keyword) &&
		strings.HasPrefix(command, keyword) &&
		(command[len(keyword)] == ' ' || command[len(keyword)] == '\t') {
		return strings.TrimSpace(command[len(keyword):]), true
	}
	return "", false
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
