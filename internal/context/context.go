// Package context provides session state management for statshell. It owns
// the loaded datasets, the stored-estimate registry, the command history,
// and the working directory for one interactive session. There are no
// ambient globals; the context is passed explicitly to every component.
package context

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// SessionContext implements stattypes.Context. Execution is single-threaded:
// one logical command runs to completion before the next, so no locking is
// needed here.
type SessionContext struct {
	sessionID string
	testMode  bool

	datasets   map[string]*dataset.Dataset
	activeName string

	estimates *EstimateRegistry
	history   []string
	workDir   string
}

// New creates a session context with an empty dataset collection.
func New() *SessionContext {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &SessionContext{
		sessionID: uuid.NewString(),
		datasets:  make(map[string]*dataset.Dataset),
		estimates: NewEstimateRegistry(),
		workDir:   wd,
	}
}

// SessionID returns the unique session identifier.
func (ctx *SessionContext) SessionID() string {
	if ctx.testMode {
		return "session-test"
	}
	return ctx.sessionID
}

// SetTestMode switches deterministic behavior on for tests.
func (ctx *SessionContext) SetTestMode(on bool) { ctx.testMode = on }

// IsTestMode reports whether deterministic test mode is on.
func (ctx *SessionContext) IsTestMode() bool { return ctx.testMode }

// ActiveDataset returns the dataset commands operate on, or an error when
// none is loaded.
func (ctx *SessionContext) ActiveDataset() (stattypes.Dataset, error) {
	d, err := ctx.ActiveData()
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ActiveData returns the concrete active dataset for commands that need the
// full store interface.
func (ctx *SessionContext) ActiveData() (*dataset.Dataset, error) {
	if ctx.activeName == "" {
		return nil, fmt.Errorf("no data in memory; use a dataset first")
	}
	return ctx.datasets[ctx.activeName], nil
}

// SetDataset stores a dataset under its name and makes it active.
func (ctx *SessionContext) SetDataset(d *dataset.Dataset) {
	ctx.datasets[d.Name()] = d
	ctx.activeName = d.Name()
}

// Dataset looks up a loaded dataset by name.
func (ctx *SessionContext) Dataset(name string) (*dataset.Dataset, bool) {
	d, ok := ctx.datasets[name]
	return d, ok
}

// DatasetNames returns the loaded dataset names.
func (ctx *SessionContext) DatasetNames() []string {
	names := make([]string, 0, len(ctx.datasets))
	for name := range ctx.datasets {
		names = append(names, name)
	}
	return names
}

// ClearData drops every loaded dataset.
func (ctx *SessionContext) ClearData() {
	ctx.datasets = make(map[string]*dataset.Dataset)
	ctx.activeName = ""
}

// Estimates returns the stored-estimate registry.
func (ctx *SessionContext) Estimates() stattypes.EstimateRegistry {
	return ctx.estimates
}

// History returns the logical commands recorded this session, oldest first.
func (ctx *SessionContext) History() []string {
	out := make([]string, len(ctx.history))
	copy(out, ctx.history)
	return out
}

// RecordHistory appends one logical command to the session history.
func (ctx *SessionContext) RecordHistory(command string) {
	ctx.history = append(ctx.history, command)
}

// WorkingDir returns the session's current working directory.
func (ctx *SessionContext) WorkingDir() string { return ctx.workDir }

// SetWorkingDir changes the session's working directory, verifying it exists.
func (ctx *SessionContext) SetWorkingDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot change directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot change directory: %s is not a directory", dir)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cannot change directory: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	ctx.workDir = wd
	return nil
}
