// SPDX-License-Identifier: MIT

// Package random defines the minimal sampling contract the power iteration
// engine needs to draw a starting vector, plus a Box–Muller adapter that
// turns any uniform source into a standard-normal one.
//
// *math/rand.Rand and *math/rand/v2.Rand already satisfy both Normal and
// Uniform. Sources that produce normal draws two at a time can also
// implement PairNormal; Fill then consumes whole pairs.
package random

import (
	"math"

	"github.com/LTLA/powerit/vector"
)

// Normal emits independent standard-normal draws.
type Normal interface {
	NormFloat64() float64
}

// PairNormal emits standard-normal draws two at a time.
type PairNormal interface {
	Normal
	NormPair() (float64, float64)
}

// Uniform emits independent draws from [0, 1).
type Uniform interface {
	Float64() float64
}

// BoxMuller converts a Uniform source into standard-normal pairs.
type BoxMuller struct {
	src Uniform
}

// NewBoxMuller wraps src.
func NewBoxMuller(src Uniform) *BoxMuller {
	return &BoxMuller{src: src}
}

// NormPair consumes two uniform draws and returns two independent
// standard-normal values.
func (b *BoxMuller) NormPair() (float64, float64) {
	u1 := 1 - b.src.Float64() // (0, 1], keeps the log finite
	u2 := b.src.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	s, c := math.Sincos(2 * math.Pi * u2)

	return r * c, r * s
}

// NormFloat64 returns the first value of a fresh pair; the second is dropped.
func (b *BoxMuller) NormFloat64() float64 {
	x, _ := b.NormPair()
	return x
}

// Fill overwrites dst with standard-normal draws from src.
//
// When src implements PairNormal, consecutive elements are filled pairwise
// and an odd trailing element takes the first value of one more pair.
// Otherwise every element is one NormFloat64 call.
func Fill[T vector.Float](dst []T, src Normal) {
	ps, ok := src.(PairNormal)
	if !ok {
		for i := range dst {
			dst[i] = T(src.NormFloat64())
		}
		return
	}

	n := len(dst)
	for d := 1; d < n; d += 2 {
		a, b := ps.NormPair()
		dst[d-1] = T(a)
		dst[d] = T(b)
	}
	if n%2 == 1 {
		a, _ := ps.NormPair()
		dst[n-1] = T(a)
	}
}
