// Package shell wires the statshell session together and runs the
// interactive read-eval-print loop.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"statshell/internal/commands"
	"statshell/internal/commands/builtin"
	"statshell/internal/context"
	"statshell/internal/execution"
	"statshell/internal/logger"
	"statshell/internal/services"
)

// InitializeServices registers every statshell service with the global
// registry. ConfigurationService goes first so later services can read
// configuration during their own initialization.
func InitializeServices(testMode bool) error {
	reg := services.GetGlobalRegistry()

	if err := reg.RegisterService(services.NewConfigurationService()); err != nil {
		return err
	}
	if err := reg.RegisterService(services.NewShellService()); err != nil {
		return err
	}
	if err := reg.RegisterService(services.NewDataService()); err != nil {
		return err
	}
	helpSvc := services.NewHelpService()
	if testMode {
		helpSvc = services.NewPlainHelpService()
	}
	if err := reg.RegisterService(helpSvc); err != nil {
		return err
	}
	if err := reg.RegisterService(services.NewEvaluatorService()); err != nil {
		return err
	}
	return nil
}

// Session is one interactive or batch statshell session: a context, the
// dispatcher over the global command registry, and the shared evaluator.
type Session struct {
	ctx        *context.SessionContext
	dispatcher *execution.Dispatcher
}

// NewSession builds a session over the global registries. Services must be
// initialized first. The built-in demo dataset is loaded so estimation
// commands work out of the box.
func NewSession(testMode bool) (*Session, error) {
	ctx := context.New()
	ctx.SetTestMode(testMode)

	eval, err := services.GetEvaluatorService()
	if err != nil {
		return nil, err
	}
	eval.BindContext(ctx)

	shellSvc, err := services.GetShellService()
	if err != nil {
		return nil, err
	}

	dispatcher := execution.New(commands.GlobalRegistry, eval, shellSvc, ctx)
	builtin.SetBlockRunner(dispatcher.ExecuteBlock)

	ctx.SetDataset(services.DemoDataset())
	return &Session{ctx: ctx, dispatcher: dispatcher}, nil
}

// Context returns the session context.
func (s *Session) Context() *context.SessionContext { return s.ctx }

// ExecuteBlock runs a raw input block through the dispatcher.
func (s *Session) ExecuteBlock(block string) []string {
	return s.dispatcher.ExecuteBlock(block)
}

// Run starts the interactive loop. A line ending in a backslash switches to
// the continuation prompt and joins with the next line before dispatch.
func (s *Session) Run(version string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ". ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("statshell v%s\n", version)
	fmt.Println("Type 'help' for commands, 'exit' to quit.")

	var pending []string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending = nil
			rl.SetPrompt(". ")
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if strings.HasSuffix(strings.TrimRight(line, " \t"), "\\") {
			pending = append(pending, line)
			rl.SetPrompt("> ")
			continue
		}
		pending = append(pending, line)
		block := strings.Join(pending, "\n")
		pending = nil
		rl.SetPrompt(". ")

		trimmed := strings.TrimSpace(block)
		if trimmed == "exit" || trimmed == "quit" {
			break
		}
		for _, result := range s.dispatcher.ExecuteBlock(block) {
			if result != "" {
				fmt.Println(result)
			}
		}
	}
	logger.Info("Session ended", "session", s.ctx.SessionID())
	return nil
}

// RunScript executes a script file in batch mode, printing each command's
// result to stdout.
func (s *Session) RunScript(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, result := range s.dispatcher.ExecuteBlock(string(raw)) {
		if result != "" {
			fmt.Println(result)
		}
	}
	return nil
}
