package covariance_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/LTLA/powerit"
	"github.com/LTLA/powerit/covariance"
	"github.com/LTLA/powerit/matrix"
)

// synthetic returns an n×p matrix whose column j has standard deviation scales[j].
func synthetic(t testing.TB, n int, scales []float64, seed uint64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 99))
	p := len(scales)
	data := make([]float64, n*p)
	for i := 0; i < n; i++ {
		for j, s := range scales {
			data[i*p+j] = 3 + s*rng.NormFloat64()
		}
	}
	x, err := matrix.NewDenseFrom(n, p, data)
	require.NoError(t, err)

	return x
}

// accurate returns options with a tight tolerance for cross-checks.
func accurate(mode covariance.Mode) covariance.Options {
	opts := covariance.DefaultOptions()
	opts.Mode = mode
	opts.Power.Tolerance = 1e-12
	opts.Power.Iterations = 10000

	return opts
}

// CovarianceSuite groups the cross-checks against gonum.
type CovarianceSuite struct {
	suite.Suite
	x    *matrix.Dense
	n, p int
}

func (s *CovarianceSuite) SetupTest() {
	s.n, s.p = 40, 5
	s.x = synthetic(s.T(), s.n, []float64{5, 2, 1, 1, 0.5}, 7)
}

func (s *CovarianceSuite) gonumData() *mat.Dense {
	return mat.NewDense(s.n, s.p, append([]float64(nil), s.x.Data()...))
}

// TestFeaturesMatchesStat compares with stat.CovarianceMatrix.
func (s *CovarianceSuite) TestFeaturesMatchesStat() {
	cov, mode, err := covariance.Covariance(s.x, accurate(covariance.Features))
	s.Require().NoError(err)
	s.Equal(covariance.Features, mode)

	var want mat.SymDense
	stat.CovarianceMatrix(&want, s.gonumData(), nil)
	for i := 0; i < s.p; i++ {
		for j := 0; j < s.p; j++ {
			got, _ := cov.At(i, j)
			s.InDelta(want.At(i, j), got, 1e-10, "(%d,%d)", i, j)
		}
	}
}

// TestObservationsMatchesGram compares with the centred XXᵀ/(n−1).
func (s *CovarianceSuite) TestObservationsMatchesGram() {
	cov, mode, err := covariance.Covariance(s.x, accurate(covariance.Observations))
	s.Require().NoError(err)
	s.Equal(covariance.Observations, mode)
	s.Equal(s.n, cov.Rows())

	prep, err := covariance.Prepare(s.x, accurate(covariance.Observations))
	s.Require().NoError(err)
	xc := mat.NewDense(s.n, s.p, prep.Data())
	var gram mat.Dense
	gram.Mul(xc, xc.T())
	gram.Scale(1/float64(s.n-1), &gram)

	for i := 0; i < s.n; i++ {
		for j := 0; j < s.n; j++ {
			got, _ := cov.At(i, j)
			s.InDelta(gram.At(i, j), got, 1e-10, "(%d,%d)", i, j)
		}
	}
}

// TestModesAgree recovers the same axis from both sides and from EigenSym.
func (s *CovarianceSuite) TestModesAgree() {
	feat, err := covariance.Dominant(s.x, rand.New(rand.NewPCG(1, 1)), accurate(covariance.Features))
	s.Require().NoError(err)
	obs, err := covariance.Dominant(s.x, rand.New(rand.NewPCG(2, 2)), accurate(covariance.Observations))
	s.Require().NoError(err)

	s.True(feat.Converged())
	s.True(obs.Converged())
	s.InDelta(feat.Value, obs.Value, 1e-8)
	s.InDeltaSlice(feat.Loadings, obs.Loadings, 1e-6)
	s.InDeltaSlice(feat.Scores, obs.Scores, 1e-5)

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, s.gonumData(), nil)
	var es mat.EigenSym
	s.Require().True(es.Factorize(&cov, true))
	vals := es.Values(nil)
	s.InDelta(vals[s.p-1], feat.Value, 1e-8)

	var vecs mat.Dense
	es.VectorsTo(&vecs)
	want := mat.Col(nil, s.p-1, &vecs)
	if want[0] < 0 {
		for i := range want {
			want[i] = -want[i]
		}
	}
	s.InDeltaSlice(want, feat.Loadings, 1e-6)
}

// TestScoresVariance checks that the scores' sample variance equals Value.
func (s *CovarianceSuite) TestScoresVariance() {
	pc, err := covariance.Dominant(s.x, rand.New(rand.NewPCG(3, 3)), accurate(covariance.Auto))
	s.Require().NoError(err)
	s.Equal(covariance.Features, pc.Mode)
	s.Len(pc.Scores, s.n)
	s.Len(pc.Loadings, s.p)

	var ss float64
	for _, v := range pc.Scores {
		ss += v * v
	}
	s.InDelta(pc.Value, ss/float64(s.n-1), 1e-8)
	s.InDelta(1.0, mat.Norm(mat.NewVecDense(s.p, pc.Loadings), 2), 1e-12)
}

func TestCovarianceSuite(t *testing.T) {
	suite.Run(t, new(CovarianceSuite))
}

func TestMode_Resolve(t *testing.T) {
	for _, tc := range []struct {
		mode    covariance.Mode
		n, p    int
		want    covariance.Mode
		wantErr bool
	}{
		{covariance.Auto, 10, 3, covariance.Features, false},
		{covariance.Auto, 3, 10, covariance.Observations, false},
		{covariance.Auto, 4, 4, covariance.Features, false},
		{covariance.Features, 3, 10, covariance.Features, false},
		{covariance.Observations, 10, 3, covariance.Observations, false},
		{covariance.Mode(9), 10, 3, covariance.Mode(9), true},
	} {
		got, err := tc.mode.Resolve(tc.n, tc.p)
		if tc.wantErr {
			assert.ErrorIs(t, err, covariance.ErrUnknownMode)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%v with %dx%d", tc.mode, tc.n, tc.p)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]covariance.Mode{
		"auto":         covariance.Auto,
		"Features":     covariance.Features,
		"OBSERVATIONS": covariance.Observations,
	} {
		m, err := covariance.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m, in)
	}
	assert.Equal(t, "observations", covariance.Observations.String())

	_, err := covariance.ParseMode("rows")
	assert.ErrorIs(t, err, covariance.ErrUnknownMode)
	assert.Equal(t, "Mode(7)", covariance.Mode(7).String())
}

// TestDominant_Wide picks the Gram matrix automatically for a wide matrix.
func TestDominant_Wide(t *testing.T) {
	x := synthetic(t, 6, []float64{10, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 11)
	pc, err := covariance.Dominant(x, rand.New(rand.NewPCG(5, 5)), accurate(covariance.Auto))
	require.NoError(t, err)

	assert.Equal(t, covariance.Observations, pc.Mode)
	assert.Len(t, pc.Loadings, 12)
	assert.Len(t, pc.Scores, 6)

	feat, err := covariance.Dominant(x, rand.New(rand.NewPCG(6, 6)), accurate(covariance.Features))
	require.NoError(t, err)
	assert.InDelta(t, feat.Value, pc.Value, 1e-8)
	assert.InDeltaSlice(t, feat.Loadings, pc.Loadings, 1e-6)
}

func TestPrepare_TransformAndCenter(t *testing.T) {
	x, err := matrix.FromRows([][]float64{{0, 1}, {2, 3}, {4, 5}})
	require.NoError(t, err)

	opts := covariance.DefaultOptions()
	opts.Transform = func(v float64, row, col int) float64 { return v * float64(col+1) }
	prep, err := covariance.Prepare(x, opts)
	require.NoError(t, err)
	// column 0 = {0,2,4} - 2, column 1 = {2,6,10} - 6
	assert.Equal(t, []float64{-2, -4, 0, 0, 2, 4}, prep.Data())

	opts.Center = false
	prep, err = covariance.Prepare(x, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 2, 6, 4, 10}, prep.Data())
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, x.Data(), "input must not be modified")
}

// TestCovariance_Uncentred builds the raw cross-product with divisor 1.
func TestCovariance_Uncentred(t *testing.T) {
	x, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	opts := covariance.DefaultOptions()
	opts.Center = false
	opts.Mode = covariance.Features
	cov, _, err := covariance.Covariance(x, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 14, 14, 20}, cov.Data())

	opts.Mode = covariance.Observations
	gram, _, err := covariance.Covariance(x, opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 11, 11, 25}, gram.Data())
}

// TestDominant_Constant returns a zero axis for data without variance.
func TestDominant_Constant(t *testing.T) {
	x, err := matrix.FromRows([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)

	pc, err := covariance.Dominant(x, rand.New(rand.NewPCG(1, 2)), covariance.DefaultOptions())
	require.NoError(t, err)
	assert.Zero(t, pc.Value)
	assert.Equal(t, []float64{0, 0}, pc.Loadings)
	assert.Equal(t, []float64{0, 0, 0}, pc.Scores)
}

// TestDominant_NotConverged passes the sentinel through.
func TestDominant_NotConverged(t *testing.T) {
	x := synthetic(t, 20, []float64{3, 1, 1}, 3)
	opts := covariance.DefaultOptions()
	opts.Power.Tolerance = 0
	opts.Power.Iterations = 50

	pc, err := covariance.Dominant(x, rand.New(rand.NewPCG(1, 2)), opts)
	require.NoError(t, err)
	assert.False(t, pc.Converged())
	assert.Equal(t, powerit.NotConverged, pc.Iterations)
	assert.Positive(t, pc.Value)
}

func TestDominant_Errors(t *testing.T) {
	src := rand.New(rand.NewPCG(1, 2))
	x, err := matrix.FromRows([][]float64{{1, 2}, {3, 5}})
	require.NoError(t, err)

	_, err = covariance.Dominant(nil, src, covariance.DefaultOptions())
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	bad := covariance.DefaultOptions()
	bad.Mode = covariance.Mode(4)
	_, err = covariance.Dominant(x, src, bad)
	assert.ErrorIs(t, err, covariance.ErrUnknownMode)

	_, err = covariance.Dominant(x, nil, covariance.DefaultOptions())
	assert.ErrorIs(t, err, powerit.ErrNilSource)

	nan := covariance.DefaultOptions()
	nan.Transform = func(v float64, _, _ int) float64 { return math.Log(v - 2) }
	_, err = covariance.Dominant(x, src, nan)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	zero := covariance.DefaultOptions()
	zero.Power.Threads = 0
	_, err = covariance.Dominant(x, src, zero)
	assert.ErrorIs(t, err, powerit.ErrInvalidThreads)
}
