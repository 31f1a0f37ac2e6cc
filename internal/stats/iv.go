package stats

import (
	"fmt"
	"math"
)

// IVSpec describes a two-stage least squares problem: endogenous regressors
// instrumented by excluded instruments, alongside included exogenous
// regressors. Column slices are parallel to the name slices.
type IVSpec struct {
	DepVar     string
	Y          []float64
	EndogNames []string
	Endog      [][]float64
	ExogNames  []string
	Exog       [][]float64
	InstrNames []string
	Instr      [][]float64
}

// FitIV fits the specification by two-stage least squares. The order
// condition requires at least as many excluded instruments as endogenous
// regressors.
func FitIV(spec IVSpec) (*Model, error) {
	if len(spec.InstrNames) < len(spec.EndogNames) {
		return nil, fmt.Errorf("order condition fails: %d instruments for %d endogenous regressors",
			len(spec.InstrNames), len(spec.EndogNames))
	}

	all := append(append([][]float64{}, spec.Endog...), spec.Exog...)
	all = append(all, spec.Instr...)
	keep := completeRows(spec.Y, all)

	y := selectRows(spec.Y, keep)
	endog := selectCols(spec.Endog, keep)
	exog := selectCols(spec.Exog, keep)
	instr := selectCols(spec.Instr, keep)

	n := len(y)
	// First-stage design: excluded instruments + included exogenous + constant.
	zNames := append(append([]string{}, spec.InstrNames...), spec.ExogNames...)
	zCols := append(append([][]float64{}, instr...), exog...)
	kz := len(zNames) + 1
	Z := make([][]float64, n)
	for r := 0; r < n; r++ {
		row := make([]float64, kz)
		for i := range zCols {
			row[i] = zCols[i][r]
		}
		row[kz-1] = 1
		Z[r] = row
	}
	ztzInv, err := invert(crossProduct(Z, nil))
	if err != nil {
		return nil, fmt.Errorf("first stage: %w", err)
	}

	// Replace each endogenous column with its first-stage fitted values.
	fitted := make([][]float64, len(endog))
	for i, col := range endog {
		g := matVec(ztzInv, crossProductVec(Z, col, nil))
		f := make([]float64, n)
		for r := 0; r < n; r++ {
			for j := 0; j < kz; j++ {
				f[r] += Z[r][j] * g[j]
			}
		}
		fitted[i] = f
	}

	coefNames := append(append([]string{}, spec.EndogNames...), spec.ExogNames...)
	coefNames = append(coefNames, "_cons")
	k := len(coefNames)
	if n <= k {
		return nil, fmt.Errorf("insufficient observations: %d obs for %d parameters", n, k)
	}

	Xhat := make([][]float64, n)
	for r := 0; r < n; r++ {
		row := make([]float64, k)
		for i := range fitted {
			row[i] = fitted[i][r]
		}
		for i := range exog {
			row[len(fitted)+i] = exog[i][r]
		}
		row[k-1] = 1
		Xhat[r] = row
	}
	xtxInv, err := invert(crossProduct(Xhat, nil))
	if err != nil {
		return nil, fmt.Errorf("second stage: %w", err)
	}
	b := matVec(xtxInv, crossProductVec(Xhat, y, nil))

	// Residuals use the actual endogenous values, not the fitted ones.
	var rss, tss, mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(n)
	for r := 0; r < n; r++ {
		pred := 0.0
		for i := range endog {
			pred += endog[i][r] * b[i]
		}
		for i := range exog {
			pred += exog[i][r] * b[len(endog)+i]
		}
		pred += b[k-1]
		e := y[r] - pred
		rss += e * e
		tss += (y[r] - mean) * (y[r] - mean)
	}

	df := n - k
	sigma2 := rss / float64(df)
	ses := make([]float64, k)
	for i := range ses {
		ses[i] = math.Sqrt(sigma2 * xtxInv[i][i])
	}

	m := newModel("iv", spec.DepVar, coefNames, b, ses, n, df, false)
	m.r2 = 1 - rss/tss
	m.ar2 = 1 - (1-m.r2)*float64(n-1)/float64(df)
	kModel := k - 1
	if kModel > 0 && m.r2 < 1 {
		m.f = (m.r2 / float64(kModel)) / ((1 - m.r2) / float64(df))
	} else {
		m.f = math.NaN()
	}
	m.extra = append(m.extra, fmt.Sprintf("Instrumented: %s", joinNames(spec.EndogNames)))
	m.extra = append(m.extra, fmt.Sprintf("Instruments: %s", joinNames(append(append([]string{}, spec.ExogNames...), spec.InstrNames...))))
	return m, nil
}

func selectCols(cols [][]float64, keep []bool) [][]float64 {
	out := make([][]float64, len(cols))
	for i, col := range cols {
		out[i] = selectRows(col, keep)
	}
	return out
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += n
	}
	return out
}
