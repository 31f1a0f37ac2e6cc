package stats

import "math"

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// zTwoSidedP is the two-sided p-value for a standard normal statistic.
func zTwoSidedP(z float64) float64 {
	return 2 * (1 - normCDF(math.Abs(z)))
}

// tTwoSidedP is the two-sided p-value for a Student-t statistic with df
// degrees of freedom, via the regularized incomplete beta function.
func tTwoSidedP(t, df float64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	return regIncBeta(df/2, 0.5, df/(df+t*t))
}

// fTail is P(F > f) for an F distribution with d1, d2 degrees of freedom.
func fTail(f, d1, d2 float64) float64 {
	if f <= 0 || d1 <= 0 || d2 <= 0 {
		return math.NaN()
	}
	return regIncBeta(d2/2, d1/2, d2/(d2+d1*f))
}

// regIncBeta computes the regularized incomplete beta function I_x(a, b)
// with the continued-fraction expansion.
func regIncBeta(a, b, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lgA, _ := math.Lgamma(a)
	lgB, _ := math.Lgamma(b)
	lgAB, _ := math.Lgamma(a + b)
	front := math.Exp(lgAB - lgA - lgB + a*math.Log(x) + b*math.Log(1-x))

	if x < (a+1)/(a+b+2) {
		return front * betaCF(a, b, x) / a
	}
	return 1 - front*betaCF(b, a, 1-x)/b
}

// betaCF evaluates the continued fraction for the incomplete beta function
// by the modified Lentz method.
func betaCF(a, b, x float64) float64 {
	const (
		maxIter = 200
		eps     = 3e-14
		fpmin   = 1e-300
	)
	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpmin {
		d = fpmin
	}
	d = 1 / d
	h := d
	for m := 1; m <= maxIter; m++ {
		fm := float64(m)
		m2 := 2 * fm
		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		h *= d * c
		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return h
}

// tCritical returns the two-sided critical value for a 95% confidence
// interval with df degrees of freedom, by bisection on the tail.
func tCritical(df float64) float64 {
	if df <= 0 {
		return math.NaN()
	}
	const alpha = 0.05
	lo, hi := 0.0, 200.0
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if tTwoSidedP(mid, df) > alpha {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// zCritical is the two-sided 95% critical value for the standard normal.
const zCritical = 1.959963984540054
