// SPDX-License-Identifier: MIT

package powerit

import (
	"fmt"

	"github.com/LTLA/powerit/matrix"
	"github.com/LTLA/powerit/random"
	"github.com/LTLA/powerit/vector"
)

// NotConverged is the Result.Iterations value reported when the iteration
// cap was exhausted before the tolerance was met.
const NotConverged = -1

// Result is the outcome of one power iteration run.
type Result[T vector.Float] struct {
	// Value is the estimate of the dominant eigenvalue: the norm of the last
	// matrix-vector product. It is only a reliable eigenvalue at convergence
	// but is always filled in.
	Value T

	// Iterations is the number of rounds needed to converge (1-based), or
	// NotConverged.
	Iterations int
}

// Converged reports whether the tolerance was met within the cap.
func (r Result[T]) Converged() bool { return r.Iterations != NotConverged }

// Compute runs power iterations on the order×order row-major matrix,
// starting from the caller-supplied vector.
//
// Implementation:
//   - Stage 1: validate order, buffer lengths and opts (fail fast, nothing touched).
//   - Stage 2: per round, dispatch row dot products through the runner into
//     a scratch buffer, normalize it, and compare with the current estimate.
//   - Stage 3: stop when the distance is below Tolerance, otherwise copy the
//     buffer into vector and continue until the cap.
//
// Behavior highlights:
//   - mat is only read; vec is read and overwritten in place.
//   - On convergence vector holds the estimate from the previous round, the
//     one the eigenvalue refers to; on exhaustion it holds the last product.
//   - The starting vector should be non-zero; it need not be unit-norm.
//   - For a symmetric matrix the buffer may be column-major as well.
//
// Determinism:
//   - Each row is one fixed-order dot product, so any Threads/Runner choice
//     produces bit-identical output.
//
// Complexity:
//   - Time O(Iterations·order²), Space O(order) for the single scratch buffer.
func Compute[T vector.Float](order int, mat, vec []T, opts Options) (Result[T], error) {
	if err := validate(order, len(mat), len(vec), opts); err != nil {
		return Result[T]{Iterations: NotConverged}, opErrorf(opCompute, err)
	}

	return iterate(order, mat[:order*order], vec[:order], opts), nil
}

// ComputeRandom fills vector with a random unit starting vector drawn from
// src and then runs Compute.
//
// The vector is filled with standard-normal draws and normalized; a draw
// whose norm is exactly zero is discarded and the whole vector resampled.
// A source that only ever yields zeros therefore never returns.
func ComputeRandom[T vector.Float](order int, mat, vec []T, src random.Normal, opts Options) (Result[T], error) {
	if src == nil {
		return Result[T]{Iterations: NotConverged}, opErrorf(opComputeRandom, ErrNilSource)
	}
	if err := validate(order, len(mat), len(vec), opts); err != nil {
		return Result[T]{Iterations: NotConverged}, opErrorf(opComputeRandom, err)
	}

	start := vec[:order]
	for {
		random.Fill(start, src)
		if vector.Normalize(start) != 0 {
			break
		}
	}

	return iterate(order, mat[:order*order], start, opts), nil
}

// ComputeDense runs the engine on a square Dense matrix. When src is nil,
// vec must already hold the starting vector; otherwise it is drawn from src.
func ComputeDense(m *matrix.Dense, vec []float64, src random.Normal, opts Options) (Result[float64], error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return Result[float64]{Iterations: NotConverged}, opErrorf(opComputeDense, err)
	}

	n := m.Rows()
	if src == nil {
		res, err := Compute(n, m.Data(), vec, opts)
		if err != nil {
			return res, opErrorf(opComputeDense, err)
		}
		return res, nil
	}

	res, err := ComputeRandom(n, m.Data(), vec, src, opts)
	if err != nil {
		return res, opErrorf(opComputeDense, err)
	}

	return res, nil
}

// validate checks the preconditions shared by every entry point.
func validate(order, matLen, vecLen int, opts Options) error {
	switch {
	case order < 1:
		return ErrInvalidOrder
	case matLen < order*order:
		return fmt.Errorf("have %d, need %d: %w", matLen, order*order, ErrMatrixSize)
	case vecLen < order:
		return fmt.Errorf("have %d, need %d: %w", vecLen, order, ErrVectorSize)
	}

	return opts.Validate()
}

// iterate is the Start → Running → Converged | Exhausted loop. Inputs are
// already validated and trimmed to their exact lengths.
func iterate[T vector.Float](order int, mat, vec []T, opts Options) Result[T] {
	res := Result[T]{Iterations: NotConverged}
	buffer := make([]T, order)
	runner := opts.runner()
	logger := opts.Logger

	// Workers read mat and vec and write disjoint slices of buffer.
	rows := func(start, length int) {
		for j := start; j < start+length; j++ {
			buffer[j] = vector.Dot(vec, mat[j*order:(j+1)*order])
		}
	}

	var delta T
	for i := 0; i < opts.Iterations; i++ {
		runner.Run(order, opts.Threads, rows)

		res.Value = vector.Normalize(buffer)
		delta = vector.DiffNorm(buffer, vec)
		if logger != nil {
			logger.Debug("power iteration", "round", i+1, "eigenvalue", res.Value, "delta", delta)
		}

		if float64(delta) < opts.Tolerance {
			res.Iterations = i + 1
			break
		}

		copy(vec, buffer)
	}

	if logger != nil {
		if res.Converged() {
			logger.Debug("power iterations converged", "iterations", res.Iterations, "eigenvalue", res.Value)
		} else {
			logger.Debug("power iterations exhausted", "cap", opts.Iterations, "eigenvalue", res.Value, "delta", delta)
		}
	}

	return res
}
