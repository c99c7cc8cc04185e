// SPDX-License-Identifier: MIT

// Package vector holds the small dense-vector kernels used by the power
// iteration engine: in-place Euclidean normalization, norms, dot products
// and the distance between successive iterates.
//
// All kernels are generic over float32 and float64 and accumulate in a
// single fixed left-to-right order, so the same inputs always give the same
// bits regardless of how callers split their work across goroutines.
//
// Usage:
//
//	x := []float64{3, 4}
//	n := vector.Normalize(x) // n == 5, x == [0.6 0.8]
package vector
