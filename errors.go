// SPDX-License-Identifier: MIT

package powerit

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine entry points. They are always
// wrapped with an operation tag; match them with errors.Is.
var (
	// ErrInvalidOrder is returned when the matrix order is < 1.
	ErrInvalidOrder = errors.New("powerit: order must be >= 1")

	// ErrMatrixSize is returned when the matrix buffer holds fewer than order² values.
	ErrMatrixSize = errors.New("powerit: matrix buffer shorter than order*order")

	// ErrVectorSize is returned when the estimate buffer holds fewer than order values.
	ErrVectorSize = errors.New("powerit: vector buffer shorter than order")

	// ErrInvalidIterations is returned when Options.Iterations < 1.
	ErrInvalidIterations = errors.New("powerit: iterations must be >= 1")

	// ErrInvalidTolerance is returned when Options.Tolerance is negative or NaN.
	ErrInvalidTolerance = errors.New("powerit: tolerance must be a non-negative number")

	// ErrInvalidThreads is returned when Options.Threads < 1.
	ErrInvalidThreads = errors.New("powerit: threads must be >= 1")

	// ErrNilSource is returned when a random start is requested without a source.
	ErrNilSource = errors.New("powerit: random source is nil")
)

// Operation tags for error wrapping.
const (
	opCompute       = "Compute"
	opComputeRandom = "ComputeRandom"
	opComputeDense  = "ComputeDense"
	opValidate      = "Options.Validate"
)

// opErrorf wraps a non-nil err as "<tag>: <err>".
func opErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
