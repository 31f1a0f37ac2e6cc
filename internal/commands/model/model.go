// Package model implements the estimation commands: least squares with its
// variance-estimator variants, maximum-likelihood models, and instrumental
// variables. Every successful fit is stored in the session's estimate
// registry under an automatically generated name.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"statshell/internal/context"
	"statshell/internal/dataset"
	"statshell/pkg/stattypes"
)

// activeData returns the concrete active dataset for estimation commands.
func activeData(ctx stattypes.Context) (*dataset.Dataset, error) {
	sc, ok := ctx.(*context.SessionContext)
	if !ok {
		return nil, fmt.Errorf("internal error: unsupported context type %T", ctx)
	}
	return sc.ActiveData()
}

// regressionVars splits a "depvar indepvars..." clause and validates it.
func regressionVars(ds *dataset.Dataset, clause string) (string, []string, error) {
	fields := strings.Fields(clause)
	if len(fields) < 2 {
		return "", nil, fmt.Errorf("expected a dependent variable and at least one regressor")
	}
	for _, name := range fields {
		if !ds.HasColumn(name) {
			return "", nil, fmt.Errorf("variable %s not found", name)
		}
	}
	return fields[0], fields[1:], nil
}

// numericColumns fetches the named columns, rejecting string variables.
func numericColumns(ds *dataset.Dataset, names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		vals, err := ds.Float(name)
		if err != nil {
			return nil, err
		}
		cols[i] = vals
	}
	return cols, nil
}

// groupKeys renders one or more group variables to per-observation string
// keys for clustering and absorption.
func groupKeys(ds *dataset.Dataset, vars []string) ([]string, error) {
	for _, name := range vars {
		if !ds.HasColumn(name) {
			return nil, fmt.Errorf("variable %s not found", name)
		}
	}
	keys := make([]string, ds.NumRows())
	for i := range keys {
		parts := make([]string, len(vars))
		for j, name := range vars {
			parts[j] = ds.CellString(name, i)
		}
		keys[i] = strings.Join(parts, "\x1f")
	}
	return keys, nil
}

var autoNameRe = regexp.MustCompile(`^est(\d+)$`)

// nextAutoName returns the next free est1, est2, ... name in the registry.
func nextAutoName(reg stattypes.EstimateRegistry) string {
	max := 0
	for _, name := range reg.Names() {
		if m := autoNameRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("est%d", max+1)
}

// storeResult records a successful fit under an auto-generated name and
// returns the stored name. Failed fits never reach here, so the registry's
// current-name pointer only ever moves on success.
func storeResult(ctx stattypes.Context, result stattypes.FittedModel, depvar string, indep []string, options stattypes.OptionSet) string {
	reg := ctx.Estimates()
	name := nextAutoName(reg)
	reg.Store(stattypes.StoredEstimate{
		Name:      name,
		Result:    result,
		Kind:      result.Kind(),
		DepVar:    depvar,
		IndepVars: indep,
		Options:   options,
		CreatedAt: time.Now(),
	})
	return name
}
