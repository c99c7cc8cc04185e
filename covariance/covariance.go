// SPDX-License-Identifier: MIT

package covariance

import (
	"fmt"
	"math"

	"github.com/LTLA/powerit"
	"github.com/LTLA/powerit/matrix"
	"github.com/LTLA/powerit/random"
	"github.com/LTLA/powerit/vector"
)

const (
	opPrepare    = "Prepare"
	opCovariance = "Covariance"
	opDominant   = "Dominant"
)

func opErrorf(tag string, err error) error {
	return fmt.Errorf("covariance.%s: %w", tag, err)
}

// Prepare copies x into a new Dense, applying opts.Transform and, when
// opts.Center is set, subtracting each column mean.
//
// Errors: matrix.ErrNilMatrix, ErrNoObservations, matrix.ErrNaNInf (non-finite input or transform output).
func Prepare(x matrix.Matrix, opts Options) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, opErrorf(opPrepare, err)
	}
	n, p := x.Rows(), x.Cols()
	if n < 1 || p < 1 {
		return nil, opErrorf(opPrepare, ErrNoObservations)
	}

	out, err := matrix.NewDense(n, p)
	if err != nil {
		return nil, opErrorf(opPrepare, err)
	}
	data := out.Data()

	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			if v, err = x.At(i, j); err != nil {
				return nil, opErrorf(opPrepare, err)
			}
			if opts.Transform != nil {
				v = opts.Transform(v, i, j)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, opErrorf(opPrepare, fmt.Errorf("(%d,%d): %w", i, j, matrix.ErrNaNInf))
			}
			data[i*p+j] = v
		}
	}

	if opts.Center {
		means := make([]float64, p)
		for i := 0; i < n; i++ {
			for j, v := range data[i*p : (i+1)*p] {
				means[j] += v
			}
		}
		for j := range means {
			means[j] /= float64(n)
		}
		for i := 0; i < n; i++ {
			row := data[i*p : (i+1)*p]
			for j := range row {
				row[j] -= means[j]
			}
		}
	}

	return out, nil
}

// divisor is n−1 for a centred sample of more than one observation, else 1.
func divisor(n int, center bool) float64 {
	if center && n > 1 {
		return float64(n - 1)
	}

	return 1
}

// Covariance prepares x and builds the symmetric cross-product for the
// resolved mode, returning it together with that mode.
//
// Implementation:
//   - Stage 1: Prepare (transform, centre).
//   - Stage 2: resolve Auto against the data shape.
//   - Stage 3: fill the lower triangle with row or column dot products,
//     divide by n−1 when centring, and mirror into the upper triangle so the
//     engine can stream full rows.
//
// Complexity:
//   - Features: Time O(n·p²), Space O(p²). Observations: Time O(n²·p), Space O(n²).
func Covariance(x matrix.Matrix, opts Options) (*matrix.Dense, Mode, error) {
	prep, err := Prepare(x, opts)
	if err != nil {
		return nil, opts.Mode, opErrorf(opCovariance, err)
	}
	n, p := prep.Shape()

	mode, err := opts.Mode.Resolve(n, p)
	if err != nil {
		return nil, opts.Mode, opErrorf(opCovariance, err)
	}

	cov, err := build(prep, mode, divisor(n, opts.Center))
	if err != nil {
		return nil, mode, opErrorf(opCovariance, err)
	}

	return cov, mode, nil
}

// build dispatches to the cross-product for a concrete mode.
func build(prep *matrix.Dense, mode Mode, div float64) (*matrix.Dense, error) {
	if mode == Features {
		return crossFeatures(prep, div)
	}

	return crossObservations(prep, div)
}

// crossFeatures returns XᵀX/div (p×p), accumulating one observation at a time
// so that X is read row by row.
func crossFeatures(x *matrix.Dense, div float64) (*matrix.Dense, error) {
	n, p := x.Shape()
	cov, err := matrix.NewDense(p, p)
	if err != nil {
		return nil, err
	}
	c, data := cov.Data(), x.Data()

	for i := 0; i < n; i++ {
		row := data[i*p : (i+1)*p]
		for a := 0; a < p; a++ {
			ra := row[a]
			for b := 0; b <= a; b++ {
				c[a*p+b] += ra * row[b]
			}
		}
	}
	fillUpper(c, p, div)

	return cov, nil
}

// crossObservations returns XXᵀ/div (n×n) from row dot products.
func crossObservations(x *matrix.Dense, div float64) (*matrix.Dense, error) {
	n, p := x.Shape()
	cov, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	c, data := cov.Data(), x.Data()

	for a := 0; a < n; a++ {
		ra := data[a*p : (a+1)*p]
		for b := 0; b <= a; b++ {
			c[a*n+b] = vector.Dot(ra, data[b*p:(b+1)*p])
		}
	}
	fillUpper(c, n, div)

	return cov, nil
}

// fillUpper scales the lower triangle by 1/div and mirrors it upwards.
func fillUpper(c []float64, order int, div float64) {
	for a := 0; a < order; a++ {
		for b := 0; b <= a; b++ {
			v := c[a*order+b] / div
			c[a*order+b] = v
			c[b*order+a] = v
		}
	}
}

// Dominant computes the first principal axis of x (observations × features).
//
// Implementation:
//   - Stage 1: Prepare x and build the cross-product for the resolved mode.
//   - Stage 2: run powerit.ComputeRandom on it with a start drawn from src.
//   - Stage 3: map the eigenvector to feature space (Observations: v = Xᵀu,
//     normalized), fix the sign so the largest-magnitude loading is positive,
//     and project the prepared data: scores = X·v.
//
// Behavior highlights:
//   - A non-converged engine run is not an error; Component.Iterations carries
//     powerit.NotConverged and the best-effort axis is returned.
//   - Data that is constant after centring yields Value 0 and zero loadings.
//
// Errors: anything from Prepare, ErrUnknownMode, powerit.ErrNilSource and
// option validation errors from the engine.
func Dominant(x matrix.Matrix, src random.Normal, opts Options) (Component, error) {
	prep, err := Prepare(x, opts)
	if err != nil {
		return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
	}
	n, p := prep.Shape()

	mode, err := opts.Mode.Resolve(n, p)
	if err != nil {
		return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
	}
	cov, err := build(prep, mode, divisor(n, opts.Center))
	if err != nil {
		return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
	}

	order := cov.Rows()
	axis := make([]float64, order)
	res, err := powerit.ComputeRandom(order, cov.Data(), axis, src, opts.Power)
	if err != nil {
		return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
	}

	loadings := axis
	if mode == Observations {
		if loadings, err = matrix.MatTVec(prep, axis); err != nil {
			return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
		}
		vector.Normalize(loadings)
	}
	orient(loadings)

	scores, err := matrix.MatVec(prep, loadings)
	if err != nil {
		return Component{Iterations: powerit.NotConverged}, opErrorf(opDominant, err)
	}

	return Component{
		Value:      res.Value,
		Loadings:   loadings,
		Scores:     scores,
		Iterations: res.Iterations,
		Mode:       mode,
	}, nil
}

// scale multiplies every element of x by f.
func scale(x []float64, f float64) {
	for i := range x {
		x[i] *= f
	}
}

// orient flips v so that its largest-magnitude element is positive.
// Ties keep the first index.
func orient(v []float64) {
	best, at := 0.0, -1
	for i, x := range v {
		if a := math.Abs(x); a > best {
			best, at = a, i
		}
	}
	if at >= 0 && v[at] < 0 {
		scale(v, -1)
	}
}
