// SPDX-License-Identifier: MIT
// Package matrix: small linear-algebra kernels needed around the power
// iteration engine. Each kernel has a flat fast path for *Dense and a
// fixed-order fallback through At for any other Matrix.

package matrix

import "fmt"

const (
	opMatVec     = "MatVec"
	opMatTVec    = "MatTVec"
	opSymmetrize = "Symmetrize"
)

// matrixErrorf wraps err as "<tag>: err".
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)
	if d, ok := m.(*Dense); ok {
		var acc float64
		for i := 0; i < rows; i++ {
			acc = 0
			row := d.data[i*cols : (i+1)*cols]
			for j, v := range row {
				acc += v * x[j]
			}
			y[i] = acc
		}
		return y, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ = m.At(i, j)
			y[i] += v * x[j]
		}
	}

	return y, nil
}

// MatTVec computes y = mᵀ * x without materializing the transpose.
//
// Contract: m non-nil; len(x) == m.Rows().
// Complexity: Time O(r*c), Space O(c) for y.
func MatTVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opMatTVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, cols)
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			xi := x[i]
			row := d.data[i*cols : (i+1)*cols]
			for j, v := range row {
				y[j] += v * xi
			}
		}
		return y, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ = m.At(i, j)
			y[j] += v * x[i]
		}
	}

	return y, nil
}

// Symmetrize returns a new Dense (m + mᵀ)/2. Useful for matrices that are
// symmetric up to rounding noise before running power iterations on them.
//
// Errors: ErrNilMatrix, ErrNonSquare.
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}

	n := m.Rows()
	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	var aij, aji, avg float64
	for i := 0; i < n; i++ {
		aii, _ := m.At(i, i)
		out.data[i*n+i] = aii
		for j := i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			avg = (aij + aji) / 2
			out.data[i*n+j] = avg
			out.data[j*n+i] = avg
		}
	}

	return out, nil
}
