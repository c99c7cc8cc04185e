// Package matrix provides the caller-side Dense matrix used to feed the
// power iteration engine and the covariance collaborator.
//
// Dense stores float64 values row-major in one flat slice; Data exposes that
// slice without copying so the engine can stream rows directly. Accessors
// check bounds and return sentinel errors instead of panicking, and the
// validators centralize the shape, symmetry and finiteness guards.
//
// See the examples in this package and in package powerit for usage patterns.
package matrix
