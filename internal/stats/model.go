// Package stats implements the statistics engine: ordinary least squares
// with robust, clustered, and absorbed-fixed-effect variants, binary and
// count models fitted by iteratively reweighted least squares, and two-stage
// least squares. Results are exposed through the read-only FittedModel
// interface; callers never see the internal arrays.
package stats

import (
	"fmt"
	"math"
	"strings"
)

// Model is the concrete fitted-model result. It satisfies
// stattypes.FittedModel.
type Model struct {
	kind   string
	depvar string

	names []string
	index map[string]int
	coefs []float64
	ses   []float64
	stats []float64
	pvals []float64
	ciLo  []float64
	ciHi  []float64

	nobs int
	df   int
	r2   float64
	ar2  float64
	f    float64

	// useZ selects the z label over t in the summary table (ML fits).
	useZ bool
	// header lines beyond the standard fit statistics (e.g. absorbed FE count)
	extra []string
}

func newModel(kind, depvar string, names []string, coefs, ses []float64, nobs, df int, useZ bool) *Model {
	m := &Model{
		kind:   kind,
		depvar: depvar,
		names:  names,
		index:  make(map[string]int, len(names)),
		coefs:  coefs,
		ses:    ses,
		stats:  make([]float64, len(names)),
		pvals:  make([]float64, len(names)),
		ciLo:   make([]float64, len(names)),
		ciHi:   make([]float64, len(names)),
		nobs:   nobs,
		df:     df,
		useZ:   useZ,
	}
	crit := zCritical
	if !useZ {
		crit = tCritical(float64(df))
	}
	for i, name := range names {
		m.index[name] = i
		stat := coefs[i] / ses[i]
		m.stats[i] = stat
		if useZ {
			m.pvals[i] = zTwoSidedP(stat)
		} else {
			m.pvals[i] = tTwoSidedP(stat, float64(df))
		}
		m.ciLo[i] = coefs[i] - crit*ses[i]
		m.ciHi[i] = coefs[i] + crit*ses[i]
	}
	return m
}

// Kind returns the estimation family tag.
func (m *Model) Kind() string { return m.kind }

// DepVar returns the dependent variable name.
func (m *Model) DepVar() string { return m.depvar }

// CoefNames returns coefficient names in model order, constant last.
func (m *Model) CoefNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Coef returns the coefficient for a name.
func (m *Model) Coef(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.coefs[i], true
}

// StdErr returns the standard error for a name.
func (m *Model) StdErr(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.ses[i], true
}

// Stat returns the t or z statistic for a name.
func (m *Model) Stat(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.stats[i], true
}

// PValue returns the two-sided p-value for a name.
func (m *Model) PValue(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.pvals[i], true
}

// ConfInt returns the 95% confidence interval for a name.
func (m *Model) ConfInt(name string) (lo, hi float64, ok bool) {
	i, found := m.index[name]
	if !found {
		return 0, 0, false
	}
	return m.ciLo[i], m.ciHi[i], true
}

// NObs returns the number of observations used in the fit.
func (m *Model) NObs() int { return m.nobs }

// DF returns the residual degrees of freedom.
func (m *Model) DF() int { return m.df }

// RSquared returns R² (pseudo R² for ML fits).
func (m *Model) RSquared() float64 { return m.r2 }

// AdjRSquared returns adjusted R², NaN for ML fits.
func (m *Model) AdjRSquared() float64 { return m.ar2 }

// FStat returns the model F statistic, NaN for ML fits.
func (m *Model) FStat() float64 { return m.f }

// Summary renders the coefficient table as result text.
func (m *Model) Summary() string {
	var b strings.Builder

	statLabel := "t"
	if m.useZ {
		statLabel = "z"
	}

	fmt.Fprintf(&b, "Number of obs = %d\n", m.nobs)
	if !math.IsNaN(m.f) {
		kModel := len(m.names) - 1
		fmt.Fprintf(&b, "F(%d, %d) = %.2f\n", kModel, m.df, m.f)
		fmt.Fprintf(&b, "Prob > F = %.4f\n", fTail(m.f, float64(kModel), float64(m.df)))
	}
	if m.useZ {
		fmt.Fprintf(&b, "Pseudo R-squared = %.4f\n", m.r2)
	} else {
		fmt.Fprintf(&b, "R-squared = %.4f\n", m.r2)
		if !math.IsNaN(m.ar2) {
			fmt.Fprintf(&b, "Adj R-squared = %.4f\n", m.ar2)
		}
	}
	for _, line := range m.extra {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	rule := strings.Repeat("-", 78)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%12s | %10s %10s %8s %7s    [95%% conf. interval]\n",
		m.depvar, "Coef.", "Std. err.", statLabel, "P>|"+statLabel+"|")
	b.WriteString(rule + "\n")
	for i, name := range m.names {
		fmt.Fprintf(&b, "%12s | %10.4f %10.4f %8.2f %7.3f    [%10.4f, %10.4f]\n",
			name, m.coefs[i], m.ses[i], m.stats[i], m.pvals[i], m.ciLo[i], m.ciHi[i])
	}
	b.WriteString(rule)
	return b.String()
}
