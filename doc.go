// Package powerit estimates the dominant eigenvalue and eigenvector of a
// square, diagonalizable matrix (in practice a symmetric or covariance
// matrix) by power iteration.
//
// 🚀 What does it do?
//
//	Starting from a unit vector v, each round computes M·v, normalizes it and
//	measures how far it moved since the previous round. When the movement
//	drops below a tolerance the norm of M·v is the dominant eigenvalue and v
//	the matching eigenvector.
//
// ✨ Key features:
//   - caller-owned row-major buffers, never copied or mutated (matrix) or
//     reused in place (vector)
//   - generic over float32 and float64
//   - pluggable fork-join strategy for the matrix-vector product
//     (package parallel); sequential and parallel runs give identical bits
//   - random or caller-supplied starting vector (package random)
//   - non-convergence is data, not failure: Result.Iterations == NotConverged
//     and the best-effort eigenpair is still returned
//
// Under the hood, the module is organized as:
//
//	powerit/      the iteration engine (this package)
//	vector/       normalization, norms and dot products
//	parallel/     row-block partitioning and runners (sequential, errgroup, pool)
//	random/       sampling contract and Box–Muller adapter
//	matrix/       Dense row-major matrices and validators
//	covariance/   covariance construction and projection on top of the engine
//	cmd/powerit   command-line front end
//
// ⚙️ Usage:
//
//	opts := powerit.DefaultOptions()
//	opts.Threads = 4
//	vec := make([]float64, n)
//	res, err := powerit.ComputeRandom(n, m, vec, rand.New(rand.NewPCG(1, 2)), opts)
//	if err != nil {
//	    // invalid configuration or buffer sizes
//	}
//	if !res.Converged() {
//	    // best-effort estimate in res.Value and vec
//	}
//
//	go get github.com/LTLA/powerit
package powerit
