package stats

import (
	"fmt"
	"math"
)

const (
	irlsMaxIter = 50
	irlsTol     = 1e-9
)

type family struct {
	kind string
	// mean and derivative of the inverse link at eta
	mu  func(eta float64) float64
	dMu func(eta float64) float64
	// variance of the response at mean mu
	variance func(mu float64) float64
	// log-likelihood contribution
	logLik func(y, mu float64) float64
	// validate the response values
	checkY func(y float64) error
}

var logitFamily = family{
	kind: "logit",
	mu:   func(eta float64) float64 { return 1 / (1 + math.Exp(-eta)) },
	dMu: func(eta float64) float64 {
		p := 1 / (1 + math.Exp(-eta))
		return p * (1 - p)
	},
	variance: func(mu float64) float64 { return mu * (1 - mu) },
	logLik: func(y, mu float64) float64 {
		return y*math.Log(mu) + (1-y)*math.Log(1-mu)
	},
	checkY: checkBinary,
}

var probitFamily = family{
	kind: "probit",
	mu:   normCDF,
	dMu: func(eta float64) float64 {
		return math.Exp(-eta*eta/2) / math.Sqrt(2*math.Pi)
	},
	variance: func(mu float64) float64 { return mu * (1 - mu) },
	logLik: func(y, mu float64) float64 {
		return y*math.Log(mu) + (1-y)*math.Log(1-mu)
	},
	checkY: checkBinary,
}

var poissonFamily = family{
	kind:     "poisson",
	mu:       math.Exp,
	dMu:      math.Exp,
	variance: func(mu float64) float64 { return mu },
	logLik: func(y, mu float64) float64 {
		lg, _ := math.Lgamma(y + 1)
		return y*math.Log(mu) - mu - lg
	},
	checkY: func(y float64) error {
		if y < 0 || y != math.Trunc(y) {
			return fmt.Errorf("poisson requires nonnegative integer outcomes, got %g", y)
		}
		return nil
	},
}

func checkBinary(y float64) error {
	if y != 0 && y != 1 {
		return fmt.Errorf("outcome variable must be 0/1, got %g", y)
	}
	return nil
}

// FitLogit fits a binary logit model by iteratively reweighted least squares.
func FitLogit(depvar string, y []float64, names []string, cols [][]float64) (*Model, error) {
	return fitGLM(logitFamily, depvar, y, names, cols)
}

// FitProbit fits a binary probit model.
func FitProbit(depvar string, y []float64, names []string, cols [][]float64) (*Model, error) {
	return fitGLM(probitFamily, depvar, y, names, cols)
}

// FitPoisson fits a Poisson count model.
func FitPoisson(depvar string, y []float64, names []string, cols [][]float64) (*Model, error) {
	return fitGLM(poissonFamily, depvar, y, names, cols)
}

func fitGLM(fam family, depvar string, y []float64, names []string, cols [][]float64) (*Model, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("mismatched regressor names and columns")
	}
	keep := completeRows(y, cols)
	y = selectRows(y, keep)
	work := make([][]float64, len(cols))
	for i, col := range cols {
		work[i] = selectRows(col, keep)
	}
	for _, v := range y {
		if err := fam.checkY(v); err != nil {
			return nil, err
		}
	}

	coefNames := append(append([]string{}, names...), "_cons")
	n, k := len(y), len(coefNames)
	if n <= k {
		return nil, fmt.Errorf("insufficient observations: %d obs for %d parameters", n, k)
	}

	X := make([][]float64, n)
	for r := 0; r < n; r++ {
		row := make([]float64, k)
		for i := range work {
			row[i] = work[i][r]
		}
		row[k-1] = 1
		X[r] = row
	}

	b := make([]float64, k)
	var fisherInv [][]float64
	ll := math.Inf(-1)
	for iter := 0; iter < irlsMaxIter; iter++ {
		w := make([]float64, n)
		z := make([]float64, n)
		newLL := 0.0
		for r := 0; r < n; r++ {
			eta := 0.0
			for j := 0; j < k; j++ {
				eta += X[r][j] * b[j]
			}
			mu := fam.mu(eta)
			d := fam.dMu(eta)
			v := fam.variance(mu)
			if v < 1e-10 {
				v = 1e-10
			}
			if d < 1e-10 {
				d = 1e-10
			}
			w[r] = d * d / v
			z[r] = eta + (y[r]-mu)/d
			newLL += fam.logLik(y[r], clampMu(fam, mu))
		}
		inv, err := invert(crossProduct(X, w))
		if err != nil {
			return nil, err
		}
		fisherInv = inv
		b = matVec(inv, crossProductVec(X, z, w))
		if math.Abs(newLL-ll) < irlsTol*(math.Abs(newLL)+irlsTol) {
			ll = newLL
			break
		}
		ll = newLL
	}

	ses := make([]float64, k)
	for i := range ses {
		ses[i] = math.Sqrt(fisherInv[i][i])
	}

	m := newModel(fam.kind, depvar, coefNames, b, ses, n, n-k, true)
	m.r2 = pseudoR2(fam, y, ll)
	m.ar2 = math.NaN()
	m.f = math.NaN()
	return m, nil
}

// pseudoR2 is McFadden's 1 - ll/ll0, with ll0 from the intercept-only fit.
func pseudoR2(fam family, y []float64, ll float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	if mean <= 0 || (fam.kind != "poisson" && mean >= 1) {
		return math.NaN()
	}
	var ll0 float64
	for _, v := range y {
		ll0 += fam.logLik(v, mean)
	}
	if ll0 == 0 {
		return math.NaN()
	}
	return 1 - ll/ll0
}

func clampMu(fam family, mu float64) float64 {
	if fam.kind == "poisson" {
		if mu < 1e-10 {
			return 1e-10
		}
		return mu
	}
	if mu < 1e-10 {
		return 1e-10
	}
	if mu > 1-1e-10 {
		return 1 - 1e-10
	}
	return mu
}
