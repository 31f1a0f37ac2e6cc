package services

import (
	"fmt"

	"statshell/internal/scripting"
	"statshell/pkg/stattypes"
)

// EvaluatorService owns the persistent scripting interpreter shared by the
// dispatcher's fallback path and by expression-taking commands such as
// generate and display. Variables assigned in one command survive into the
// next; column names resolve against whatever dataset is active at
// evaluation time.
type EvaluatorService struct {
	initialized bool
	interp      *scripting.Interp
}

// NewEvaluatorService creates an evaluator service.
func NewEvaluatorService() *EvaluatorService {
	return &EvaluatorService{interp: scripting.NewInterp(nil)}
}

// Name returns the service name "evaluator" for registration.
func (e *EvaluatorService) Name() string { return "evaluator" }

// Initialize marks the service ready.
func (e *EvaluatorService) Initialize() error {
	e.initialized = true
	return nil
}

// BindContext points column resolution at the session's active dataset. The
// binding is live: the evaluator always sees the dataset active when an
// expression runs, not the one active when the session started.
func (e *EvaluatorService) BindContext(ctx stattypes.Context) {
	e.interp.SetSource(&contextSource{ctx: ctx})
}

// Interp exposes the underlying interpreter for expression-taking commands.
func (e *EvaluatorService) Interp() *scripting.Interp { return e.interp }

// Eval implements stattypes.Evaluator.
func (e *EvaluatorService) Eval(src string) (string, error) {
	if !e.initialized {
		return "", fmt.Errorf("evaluator service not initialized")
	}
	return e.interp.Eval(src)
}

// contextSource adapts the session context to the interpreter's column
// lookup interface.
type contextSource struct {
	ctx stattypes.Context
}

func (s *contextSource) ColumnValues(name string) ([]float64, bool) {
	ds, err := s.ctx.ActiveDataset()
	if err != nil {
		return nil, false
	}
	vals, err := ds.Float(name)
	if err != nil {
		return nil, false
	}
	return vals, true
}

// GetEvaluatorService retrieves the evaluator service from the global
// registry with type checking.
func GetEvaluatorService() (*EvaluatorService, error) {
	s, err := GetGlobalRegistry().GetService("evaluator")
	if err != nil {
		return nil, err
	}
	return s.(*EvaluatorService), nil
}
