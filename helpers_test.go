// SPDX-License-Identifier: MIT
// Package powerit_test contains shared fixtures.

package powerit_test

import (
	"math"
	"math/rand/v2"

	"github.com/LTLA/powerit/vector"
)

// mockSquareMatrix returns a symmetric order×order matrix with uniform
// [0,1) entries drawn from rng, filling the lower triangle row by row.
func mockSquareMatrix(order int, rng *rand.Rand) []float64 {
	x := make([]float64, order*order)
	for i := 0; i < order; i++ {
		for j := 0; j <= i; j++ {
			v := rng.Float64()
			x[i*order+j] = v
			x[j*order+i] = v
		}
	}

	return x
}

// residual returns ‖M·v − λ·v‖₂ for a row-major M.
func residual(order int, m, v []float64, lambda float64) float64 {
	var ss float64
	for i := 0; i < order; i++ {
		d := vector.Dot(v, m[i*order:(i+1)*order]) - lambda*v[i]
		ss += d * d
	}

	return math.Sqrt(ss)
}

// riggedNormal yields `zeros` zero draws and then 1, 2, 3, ...
type riggedNormal struct {
	zeros int
	draws int
	next  float64
}

func (r *riggedNormal) NormFloat64() float64 {
	r.draws++
	if r.draws <= r.zeros {
		return 0
	}
	r.next++

	return r.next
}

// identity returns an order×order identity matrix.
func identity(order int) []float64 {
	m := make([]float64, order*order)
	for i := 0; i < order; i++ {
		m[i*order+i] = 1
	}

	return m
}
