package stattypes

import "time"

// FittedModel is the read-only view of a fitted estimation result. The
// interpreter never depends on the statistics engine's concrete result type
// beyond this interface.
type FittedModel interface {
	// Kind tags the estimation family: "ols", "areg", "xtreg", "iv",
	// "logit", "probit", "poisson".
	Kind() string

	CoefNames() []string
	Coef(name string) (float64, bool)
	StdErr(name string) (float64, bool)
	Stat(name string) (float64, bool)   // t or z statistic
	PValue(name string) (float64, bool)
	ConfInt(name string) (lo, hi float64, ok bool)

	NObs() int
	DF() int // residual degrees of freedom
	RSquared() float64
	AdjRSquared() float64
	FStat() float64

	// Summary renders the full coefficient table as result text.
	Summary() string
}

// StoredEstimate is a named, retained reference to a prior estimation result
// plus the metadata needed to replay or tabulate it.
type StoredEstimate struct {
	Name      string
	Result    FittedModel
	Kind      string
	DepVar    string
	IndepVars []string
	Options   OptionSet
	CreatedAt time.Time
}

// EstimateRegistry is the named store of prior estimation results. Store
// always succeeds with overwrite semantics and moves the "most recent"
// pointer; a failed estimation must never reach Store.
type EstimateRegistry interface {
	Store(est StoredEstimate)
	Get(name string) (StoredEstimate, bool)
	// Resolve returns the named estimate, or the most recent one when name
	// is empty. It fails when no estimation has run yet in the session.
	Resolve(name string) (StoredEstimate, error)
	// ResolveAll resolves each name independently; a missing name fails the
	// whole call identifying which name was missing. An empty list resolves
	// to the single most recent estimate.
	ResolveAll(names []string) ([]StoredEstimate, error)
	CurrentName() string
	Names() []string
}
