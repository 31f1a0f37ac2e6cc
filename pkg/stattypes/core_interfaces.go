// Package stattypes defines core architectural interfaces for statshell.
// This file contains the fundamental interfaces that shape the system:
// session context, dataset access, command handling, and the scripting
// fallback capability.
package stattypes

// Dataset is the interpreter's view of the tabular-data collaborator.
// Commands that need the full store (merge, reshape, sorting internals)
// may assert to the concrete type; this interface covers the common reads
// and writes.
type Dataset interface {
	Name() string
	NumRows() int
	NumCols() int
	ColumnNames() []string
	HasColumn(name string) bool
	Float(name string) ([]float64, error)
	SetFloat(name string, values []float64) error
	Label(name string) string
	SetLabel(name, label string)
}

// Context provides session state to every component: the active dataset,
// the stored-estimate registry, command history, and working directory.
// There are no ambient globals; the context object is passed explicitly.
type Context interface {
	SessionID() string
	ActiveDataset() (Dataset, error)
	Estimates() EstimateRegistry
	History() []string
	RecordHistory(command string)
	WorkingDir() string
	SetWorkingDir(dir string) error
	IsTestMode() bool
}

// Command is the interface every statshell command implements. Execute
// receives the parsed logical command and returns result text; errors are
// converted to error result text at the dispatch boundary and never
// terminate the session.
type Command interface {
	Name() string
	Aliases() []string
	Description() string
	Usage() string
	HelpInfo() HelpInfo
	Execute(args CommandArgs, ctx Context) (string, error)
}

// Evaluator is the narrow capability interface for the scripting fallback:
// evaluate a snippet in a persistent session context and return its printed
// output. It is injectable so the fallback can be disabled or sandboxed
// independently of the command table.
type Evaluator interface {
	Eval(src string) (string, error)
}

// Service is the interface for statshell services registered at startup.
type Service interface {
	Name() string
	Initialize() error
}
