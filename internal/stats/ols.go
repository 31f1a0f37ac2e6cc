package stats

import (
	"fmt"
	"math"
)

// OLSOptions selects the variance estimator and fixed-effect absorption for
// a least-squares fit. Cluster and Absorb carry one group key per
// observation, in row order.
type OLSOptions struct {
	Robust     bool     // heteroskedasticity-robust (HC1) standard errors
	Cluster    []string // cluster-robust standard errors by these keys
	Absorb     []string // absorb fixed effects for these group keys
	NoConstant bool
	Kind       string // estimation family tag; defaults to "ols"
}

// FitOLS fits y on the named regressor columns by ordinary least squares.
// Rows with a missing value in y or any regressor are dropped listwise.
func FitOLS(depvar string, y []float64, names []string, cols [][]float64, opts OLSOptions) (*Model, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("mismatched regressor names and columns")
	}
	keep := completeRows(y, cols)
	y = selectRows(y, keep)
	work := make([][]float64, len(cols))
	for i, col := range cols {
		work[i] = selectRows(col, keep)
	}
	cluster := selectKeys(opts.Cluster, keep)
	absorb := selectKeys(opts.Absorb, keep)

	n := len(y)
	numGroups := 0
	if absorb != nil {
		var err error
		numGroups, err = demeanWithin(y, work, absorb)
		if err != nil {
			return nil, err
		}
	}

	hasCons := !opts.NoConstant && absorb == nil
	coefNames := append([]string{}, names...)
	if hasCons {
		coefNames = append(coefNames, "_cons")
	}
	k := len(coefNames)
	if n <= k {
		return nil, fmt.Errorf("insufficient observations: %d obs for %d parameters", n, k)
	}

	X := make([][]float64, n)
	for r := 0; r < n; r++ {
		row := make([]float64, k)
		for i := range work {
			row[i] = work[i][r]
		}
		if hasCons {
			row[k-1] = 1
		}
		X[r] = row
	}

	xtxInv, err := invert(crossProduct(X, nil))
	if err != nil {
		return nil, err
	}
	b := matVec(xtxInv, crossProductVec(X, y, nil))

	resid := make([]float64, n)
	var rss, tss float64
	mean := 0.0
	if hasCons || absorb != nil {
		for _, v := range y {
			mean += v
		}
		mean /= float64(n)
	}
	for r := 0; r < n; r++ {
		fitted := 0.0
		for j := 0; j < k; j++ {
			fitted += X[r][j] * b[j]
		}
		resid[r] = y[r] - fitted
		rss += resid[r] * resid[r]
		tss += (y[r] - mean) * (y[r] - mean)
	}

	df := n - k
	if absorb != nil {
		df -= numGroups
		if df <= 0 {
			return nil, fmt.Errorf("insufficient observations after absorbing %d groups", numGroups)
		}
	}

	cov, err := olsCovariance(X, resid, xtxInv, df, opts.Robust, cluster)
	if err != nil {
		return nil, err
	}
	ses := make([]float64, k)
	for i := range ses {
		ses[i] = math.Sqrt(cov[i][i])
	}

	kind := opts.Kind
	if kind == "" {
		kind = "ols"
	}
	m := newModel(kind, depvar, coefNames, b, ses, n, df, false)
	m.r2 = 1 - rss/tss
	m.ar2 = 1 - (1-m.r2)*float64(n-1)/float64(df)
	kModel := k
	if hasCons {
		kModel--
	}
	if kModel > 0 && m.r2 < 1 {
		m.f = (m.r2 / float64(kModel)) / ((1 - m.r2) / float64(df))
	} else {
		m.f = math.NaN()
	}
	if absorb != nil {
		m.extra = append(m.extra, fmt.Sprintf("Absorbed fixed effects: %d groups", numGroups))
	}
	if cluster != nil {
		m.extra = append(m.extra, fmt.Sprintf("Std. err. adjusted for %d clusters", countGroups(cluster)))
	}
	return m, nil
}

// olsCovariance picks the classical, HC1, or cluster-robust covariance.
func olsCovariance(X [][]float64, resid []float64, xtxInv [][]float64, df int, robust bool, cluster []string) ([][]float64, error) {
	n := len(X)
	k := len(X[0])

	if cluster != nil {
		groups := make(map[string][]int)
		for r, key := range cluster {
			groups[key] = append(groups[key], r)
		}
		numClusters := len(groups)
		if numClusters < 2 {
			return nil, fmt.Errorf("cluster variable has %d distinct value(s); at least 2 required", numClusters)
		}
		// meat = sum over clusters of (Xg' eg)(Xg' eg)'
		meat := make([][]float64, k)
		for i := range meat {
			meat[i] = make([]float64, k)
		}
		for _, rows := range groups {
			score := make([]float64, k)
			for _, r := range rows {
				for j := 0; j < k; j++ {
					score[j] += X[r][j] * resid[r]
				}
			}
			for i := 0; i < k; i++ {
				for j := 0; j < k; j++ {
					meat[i][j] += score[i] * score[j]
				}
			}
		}
		c := float64(numClusters) / float64(numClusters-1) * float64(n-1) / float64(df)
		cov := matMul(matMul(xtxInv, meat), xtxInv)
		for i := range cov {
			for j := range cov[i] {
				cov[i][j] *= c
			}
		}
		return cov, nil
	}

	if robust {
		w := make([]float64, n)
		for r, e := range resid {
			w[r] = e * e
		}
		meat := crossProduct(X, w)
		c := float64(n) / float64(df)
		cov := matMul(matMul(xtxInv, meat), xtxInv)
		for i := range cov {
			for j := range cov[i] {
				cov[i][j] *= c
			}
		}
		return cov, nil
	}

	var rss float64
	for _, e := range resid {
		rss += e * e
	}
	sigma2 := rss / float64(df)
	cov := make([][]float64, k)
	for i := range cov {
		cov[i] = make([]float64, k)
		for j := range cov[i] {
			cov[i][j] = sigma2 * xtxInv[i][j]
		}
	}
	return cov, nil
}

// demeanWithin subtracts group means from y and every regressor in place,
// returning the number of groups.
func demeanWithin(y []float64, cols [][]float64, groups []string) (int, error) {
	if len(groups) != len(y) {
		return 0, fmt.Errorf("absorb variable has %d values, expected %d", len(groups), len(y))
	}
	idx := make(map[string][]int)
	for r, key := range groups {
		idx[key] = append(idx[key], r)
	}
	series := append([][]float64{y}, cols...)
	for _, rows := range idx {
		for _, s := range series {
			var mean float64
			for _, r := range rows {
				mean += s[r]
			}
			mean /= float64(len(rows))
			for _, r := range rows {
				s[r] -= mean
			}
		}
	}
	return len(idx), nil
}

// completeRows flags rows free of missing values in y and every column.
func completeRows(y []float64, cols [][]float64) []bool {
	keep := make([]bool, len(y))
	for r := range y {
		ok := !math.IsNaN(y[r])
		for _, col := range cols {
			if math.IsNaN(col[r]) {
				ok = false
				break
			}
		}
		keep[r] = ok
	}
	return keep
}

func selectRows(v []float64, keep []bool) []float64 {
	out := make([]float64, 0, len(v))
	for r, k := range keep {
		if k {
			out = append(out, v[r])
		}
	}
	return out
}

func selectKeys(keys []string, keep []bool) []string {
	if keys == nil {
		return nil
	}
	out := make([]string, 0, len(keys))
	for r, k := range keep {
		if k {
			out = append(out, keys[r])
		}
	}
	return out
}

func countGroups(keys []string) int {
	seen := make(map[string]bool)
	for _, k := range keys {
		seen[k] = true
	}
	return len(seen)
}
