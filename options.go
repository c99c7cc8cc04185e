// SPDX-License-Identifier: MIT

package powerit

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/LTLA/powerit/parallel"
)

// Defaults used by DefaultOptions.
const (
	// DefaultIterations caps the number of rounds.
	DefaultIterations = 500

	// DefaultTolerance is the convergence threshold on the L2 distance
	// between successive normalized iterates.
	DefaultTolerance = 1e-6

	// DefaultThreads runs the matrix-vector product sequentially.
	DefaultThreads = 1
)

// Options configures Compute and ComputeRandom.
//
// Fields:
//   - Iterations: maximum number of rounds; the engine may converge earlier.
//   - Tolerance: convergence is declared when ‖bᵢ − vᵢ₋₁‖₂ < Tolerance,
//     with bᵢ the freshly normalized product. Zero never converges.
//   - Threads: number of row blocks the product is split into.
//   - Runner: strategy dispatching the blocks; nil selects
//     parallel.Default(Threads). Supply your own to reuse a parallel.Pool or
//     plug in a foreign scheduler.
//   - Logger: optional; receives Debug records per round and on exit.
//
// Example:
//
//	opts := powerit.DefaultOptions()
//	opts.Tolerance = 1e-10
//	opts.Threads = 3
type Options struct {
	Iterations int
	Tolerance  float64
	Threads    int
	Runner     parallel.Runner
	Logger     *log.Logger
}

// DefaultOptions returns 500 iterations, tolerance 1e-6, one thread, the
// default runner and no logger.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		Tolerance:  DefaultTolerance,
		Threads:    DefaultThreads,
	}
}

// Validate reports the first invalid field, wrapped with the operation tag.
func (o Options) Validate() error {
	switch {
	case o.Iterations < 1:
		return opErrorf(opValidate, ErrInvalidIterations)
	case math.IsNaN(o.Tolerance) || o.Tolerance < 0:
		return opErrorf(opValidate, ErrInvalidTolerance)
	case o.Threads < 1:
		return opErrorf(opValidate, ErrInvalidThreads)
	}

	return nil
}

// runner resolves the effective strategy.
func (o Options) runner() parallel.Runner {
	if o.Runner != nil {
		return o.Runner
	}

	return parallel.Default(o.Threads)
}
