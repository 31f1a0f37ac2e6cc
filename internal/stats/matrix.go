package stats

import (
	"errors"
	"math"
)

// errSingular is reported when the normal equations cannot be solved,
// usually because of collinear regressors.
var errSingular = errors.New("singular matrix; check for collinear regressors")

// crossProduct returns Xᵀ diag(w) X for a row-major design matrix. Pass nil
// for unit weights.
func crossProduct(X [][]float64, w []float64) [][]float64 {
	k := len(X[0])
	out := make([][]float64, k)
	for i := range out {
		out[i] = make([]float64, k)
	}
	for r, row := range X {
		wr := 1.0
		if w != nil {
			wr = w[r]
		}
		for i := 0; i < k; i++ {
			for j := i; j < k; j++ {
				out[i][j] += wr * row[i] * row[j]
			}
		}
	}
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			out[i][j] = out[j][i]
		}
	}
	return out
}

// crossProductVec returns Xᵀ diag(w) y. Pass nil for unit weights.
func crossProductVec(X [][]float64, y, w []float64) []float64 {
	k := len(X[0])
	out := make([]float64, k)
	for r, row := range X {
		wr := 1.0
		if w != nil {
			wr = w[r]
		}
		for i := 0; i < k; i++ {
			out[i] += wr * row[i] * y[r]
		}
	}
	return out
}

// invert returns the inverse of a square matrix by Gauss-Jordan elimination
// with partial pivoting.
func invert(A [][]float64) ([][]float64, error) {
	n := len(A)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], A[i])
		aug[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-12 {
			return nil, errSingular
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]
		p := aug[col][col]
		for j := 0; j < 2*n; j++ {
			aug[col][j] /= p
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = aug[i][n:]
	}
	return out, nil
}

// matVec multiplies a square matrix by a vector.
func matVec(A [][]float64, v []float64) []float64 {
	out := make([]float64, len(A))
	for i, row := range A {
		for j, a := range row {
			out[i] += a * v[j]
		}
	}
	return out
}

// matMul multiplies two matrices.
func matMul(A, B [][]float64) [][]float64 {
	n, m, p := len(A), len(B[0]), len(B)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
		for k := 0; k < p; k++ {
			a := A[i][k]
			if a == 0 {
				continue
			}
			for j := 0; j < m; j++ {
				out[i][j] += a * B[k][j]
			}
		}
	}
	return out
}
