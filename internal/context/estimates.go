package context

import (
	"fmt"
	"sort"
	"time"

	"statshell/internal/logger"
	"statshell/pkg/stattypes"
)

// EstimateRegistry is the named store of prior estimation results for one
// session. Store overwrites silently and moves the most-recent pointer;
// entries are never deleted automatically.
type EstimateRegistry struct {
	estimates   map[string]stattypes.StoredEstimate
	currentName string
}

// NewEstimateRegistry creates an empty registry.
func NewEstimateRegistry() *EstimateRegistry {
	return &EstimateRegistry{
		estimates: make(map[string]stattypes.StoredEstimate),
	}
}

// Store saves an estimate under its name, overwriting any previous entry,
// and points the most-recent reference at it.
func (r *EstimateRegistry) Store(est stattypes.StoredEstimate) {
	if est.CreatedAt.IsZero() {
		est.CreatedAt = time.Now()
	}
	r.estimates[est.Name] = est
	r.currentName = est.Name
	logger.EstimateOperation("store", est.Name)
}

// Get is a pure lookup with no mutation.
func (r *EstimateRegistry) Get(name string) (stattypes.StoredEstimate, bool) {
	est, ok := r.estimates[name]
	return est, ok
}

// Resolve returns the named estimate, or the most recent one when name is
// empty.
func (r *EstimateRegistry) Resolve(name string) (stattypes.StoredEstimate, error) {
	if name == "" {
		if r.currentName == "" {
			return stattypes.StoredEstimate{}, fmt.Errorf("no estimates available; run an estimation command first")
		}
		name = r.currentName
	}
	est, ok := r.estimates[name]
	if !ok {
		return stattypes.StoredEstimate{}, fmt.Errorf("estimation result %s not found", name)
	}
	return est, nil
}

// ResolveAll resolves each name independently; any missing name fails the
// whole call naming it. An empty list resolves to the most recent estimate.
func (r *EstimateRegistry) ResolveAll(names []string) ([]stattypes.StoredEstimate, error) {
	if len(names) == 0 {
		est, err := r.Resolve("")
		if err != nil {
			return nil, err
		}
		return []stattypes.StoredEstimate{est}, nil
	}
	out := make([]stattypes.StoredEstimate, 0, len(names))
	for _, name := range names {
		est, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		out = append(out, est)
	}
	return out, nil
}

// Clear drops every stored estimate and resets the most-recent pointer.
func (r *EstimateRegistry) Clear() {
	r.estimates = make(map[string]stattypes.StoredEstimate)
	r.currentName = ""
	logger.EstimateOperation("clear", "")
}

// CurrentName returns the name of the most recently stored estimate, "" when
// none has been stored yet.
func (r *EstimateRegistry) CurrentName() string { return r.currentName }

// Names returns the stored names in sorted order.
func (r *EstimateRegistry) Names() []string {
	names := make([]string, 0, len(r.estimates))
	for name := range r.estimates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
