// SPDX-License-Identifier: MIT

package vector

import "math"

// Float is the set of element types accepted by the kernels.
type Float interface {
	~float32 | ~float64
}

// zeroSum is the initial value of every accumulation.
const zeroSum = 0.0

// Normalize scales x to unit Euclidean length in place and returns the norm
// it had before scaling.
//
// Implementation:
//   - Stage 1: accumulate the sum of squares in index order.
//   - Stage 2: if the sum is non-zero, take one square root and divide every element by it.
//
// Behavior highlights:
//   - The zero vector is left untouched and 0 is returned; this is a valid
//     outcome, not an error.
//   - An empty slice returns 0.
//
// Complexity:
//   - Time O(n), Space O(1).
func Normalize[T Float](x []T) T {
	var ss T = zeroSum
	for _, v := range x {
		ss += v * v
	}
	if ss == 0 {
		return 0
	}

	norm := T(math.Sqrt(float64(ss)))
	for i := range x {
		x[i] /= norm
	}

	return norm
}

// Norm returns the Euclidean length of x without modifying it.
func Norm[T Float](x []T) T {
	var ss T = zeroSum
	for _, v := range x {
		ss += v * v
	}

	return T(math.Sqrt(float64(ss)))
}

// Dot returns the inner product of a and b over the first len(a) elements.
// b must be at least as long as a.
//
// The accumulation is a single pass in index order; callers relying on
// bit-identical results (e.g. one row per worker) get them for free.
func Dot[T Float](a, b []T) T {
	b = b[:len(a)] // hoist the bounds check out of the loop
	var acc T = zeroSum
	for i, v := range a {
		acc += v * b[i]
	}

	return acc
}

// DiffNorm returns the Euclidean length of a - b over the first len(a)
// elements. b must be at least as long as a.
func DiffNorm[T Float](a, b []T) T {
	b = b[:len(a)]
	var ss T = zeroSum
	var d T
	for i, v := range a {
		d = v - b[i]
		ss += d * d
	}

	return T(math.Sqrt(float64(ss)))
}
