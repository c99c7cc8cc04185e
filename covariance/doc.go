// Package covariance builds a covariance (or plain cross-product) matrix
// from an observations × features data matrix, runs power iterations on it
// and projects the data onto the dominant axis: the first principal
// component, computed without a full eigendecomposition.
//
// ✨ Key features:
//   - Mode selects which side the cross-product is built on:
//     Features (p×p XᵀX) or Observations (n×n XXᵀ). Auto picks the smaller
//     one, so a wide matrix never materializes a huge p×p covariance.
//   - optional per-element Transform applied before centring, e.g. log1p
//   - loadings are returned in feature space whichever mode was used, with a
//     deterministic sign (largest-magnitude loading positive)
//   - scores are the projection of every prepared observation on the loadings
//
// ⚙️ Usage:
//
//	x, _ := matrix.FromRows(rows) // observations × features
//	opts := covariance.DefaultOptions()
//	pc, err := covariance.Dominant(x, rand.New(rand.NewPCG(1, 2)), opts)
//	// pc.Value: variance along the axis, pc.Loadings, pc.Scores
package covariance
