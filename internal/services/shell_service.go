package services

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"statshell/internal/logger"
)

// defaultShellTimeout bounds external commands so a runaway process cannot
// wedge the single-threaded session forever.
const defaultShellTimeout = 60 * time.Second

// ShellService executes external processes for the `!` escape and the bash
// command, capturing combined output.
type ShellService struct {
	initialized bool
	timeout     time.Duration
}

// NewShellService creates a shell service with the default timeout.
func NewShellService() *ShellService {
	return &ShellService{timeout: defaultShellTimeout}
}

// Name returns the service name for registration.
func (s *ShellService) Name() string { return "shell" }

// Initialize marks the service ready.
func (s *ShellService) Initialize() error {
	s.initialized = true
	return nil
}

// Run executes a command line via the system shell in the given working
// directory and returns its combined stdout and stderr. A nonzero exit
// status is reported through the returned output, not as an error, matching
// how an interactive user sees shell failures.
func (s *ShellService) Run(commandLine, workDir string) (string, error) {
	if !s.initialized {
		return "", fmt.Errorf("shell service not initialized")
	}
	logger.Debug("Running external command", "command", commandLine)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", commandLine)
	cmd.Dir = workDir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("command timed out after %s", s.timeout)
	}
	out := buf.String()
	if err != nil {
		if _, isExit := err.(*exec.ExitError); isExit {
			return out + fmt.Sprintf("exit status: %v\n", err), nil
		}
		return "", fmt.Errorf("running command: %w", err)
	}
	return out, nil
}
