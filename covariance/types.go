// SPDX-License-Identifier: MIT

package covariance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LTLA/powerit"
)

// ErrUnknownMode is returned for a Mode outside Auto/Features/Observations.
var ErrUnknownMode = errors.New("covariance: unknown mode")

// ErrNoObservations is returned for a data matrix without rows or columns.
var ErrNoObservations = errors.New("covariance: no observations")

// Mode chooses the side of the data matrix the cross-product is built on.
//
//   - Auto: Features when features ≤ observations, else Observations.
//   - Features: p×p matrix XᵀX/(n−1); the eigenvector is the loading vector.
//   - Observations: n×n Gram matrix XXᵀ/(n−1); loadings are recovered as Xᵀu.
//
// Both sides share the same non-zero eigenvalues, so Value does not depend on
// the mode.
type Mode int

const (
	// Auto picks the smaller cross-product.
	Auto Mode = iota

	// Features builds the feature × feature covariance.
	Features

	// Observations builds the observation × observation Gram matrix.
	Observations
)

var modeNames = [...]string{"auto", "features", "observations"}

// String returns the lower-case mode name.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode maps "auto", "features" or "observations" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}

	return Auto, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Resolve turns Auto into a concrete mode for the given data shape.
func (m Mode) Resolve(observations, features int) (Mode, error) {
	switch m {
	case Features, Observations:
		return m, nil
	case Auto:
		if features <= observations {
			return Features, nil
		}
		return Observations, nil
	}

	return m, fmt.Errorf("%v: %w", m, ErrUnknownMode)
}

// TransformFunc maps one data value at (row, col) to the value used in the
// cross-product. It must return finite values.
type TransformFunc func(value float64, row, col int) float64

// Options configures Covariance and Dominant.
//
// Fields:
//   - Mode: cross-product side; Auto by default.
//   - Center: subtract per-feature means (after Transform). With centring
//     and more than one observation the matrix is divided by n−1, making it
//     the sample covariance; otherwise it is the raw cross-product.
//   - Transform: optional element transform applied before centring.
//   - Power: options for the power iteration engine.
type Options struct {
	Mode      Mode
	Center    bool
	Transform TransformFunc
	Power     powerit.Options
}

// DefaultOptions returns Auto mode, centring on, no transform and
// powerit.DefaultOptions.
func DefaultOptions() Options {
	return Options{
		Mode:   Auto,
		Center: true,
		Power:  powerit.DefaultOptions(),
	}
}

// Component is the dominant principal axis of a data matrix.
type Component struct {
	// Value is the dominant eigenvalue of the built matrix.
	Value float64

	// Loadings is the unit-norm axis in feature space (length = features).
	Loadings []float64

	// Scores holds the projection of every prepared observation onto
	// Loadings (length = observations).
	Scores []float64

	// Iterations is copied from the engine; powerit.NotConverged on exhaustion.
	Iterations int

	// Mode is the concrete side the matrix was built on.
	Mode Mode
}

// Converged reports whether the engine met its tolerance.
func (c Component) Converged() bool { return c.Iterations != powerit.NotConverged }
