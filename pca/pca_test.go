// SPDX-License-Identifier: MIT
package pca_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/matrix"
	"github.com/katalvlaran/lvstat/pca"
	"github.com/katalvlaran/lvstat/standardize"
)

func mustObs(t require.TestingT, features []string, rows [][]float64) *dataset.Observations {
	obs, err := dataset.NewObservations(nil, features, rows)
	require.NoError(t, err)

	return obs
}

func randomObs(t *testing.T, n, p int, seed int64) *dataset.Observations {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	features := make([]string, p)
	for j := range features {
		features[j] = string(rune('a' + j))
	}
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, p)
		for j := range rows[i] {
			// column j has scale j+1 so the spectrum is well separated
			rows[i][j] = rng.NormFloat64() * float64(j+1)
		}
	}

	return mustObs(t, features, rows)
}

// assertDenseClose compares two matrices entry by entry.
func assertDenseClose(t require.TestingT, want, got *matrix.Dense, delta float64) {
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	for i := 0; i < want.Rows(); i++ {
		w, err := want.Row(i)
		require.NoError(t, err)
		g, err := got.Row(i)
		require.NoError(t, err)
		assert.InDeltaSlice(t, w, g, delta, "row %d", i)
	}
}

func TestFitPerfectlyCorrelatedColumns(t *testing.T) {
	obs := mustObs(t, []string{"a", "b"}, [][]float64{{1, 2}, {2, 4}, {3, 6}, {4, 8}})
	std, err := standardize.Standardize(obs)
	require.NoError(t, err)

	for _, solver := range []pca.Solver{pca.SolverJacobi, pca.SolverSVD} {
		t.Run(solver.String(), func(t *testing.T) {
			res, err := pca.Fit(std.Data, pca.WithSolver(solver))
			require.NoError(t, err)
			require.Len(t, res.Components, 2)

			pc1 := res.Components[0]
			assert.InDelta(t, 1, pc1.Proportion, 1e-9)
			assert.InDelta(t, 2, pc1.Eigenvalue, 1e-9)
			assert.InDeltaSlice(t, []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}, pc1.Loadings, 1e-9)
			assert.InDelta(t, 0, res.Components[1].Proportion, 1e-9)
			assert.InDelta(t, 1, res.Components[1].Cumulative, 1e-9)
		})
	}
}

func TestFitSignTieBreakLowestIndex(t *testing.T) {
	// cov = [[1,-1],[-1,1]]: PC1 loadings have equal magnitude, opposite sign
	obs := mustObs(t, []string{"x", "negx"}, [][]float64{{1, -1}, {2, -2}, {3, -3}})

	res, err := pca.Fit(obs)
	require.NoError(t, err)
	l := res.Components[0].Loadings
	assert.Greater(t, l[0], 0.0)
	assert.Less(t, l[1], 0.0)
	assert.InDelta(t, 2, res.Components[0].Eigenvalue, 1e-12)
}

func TestFitKnownSpectrum(t *testing.T) {
	// uncorrelated columns with variances 16/3 and 4/3
	obs := mustObs(t, []string{"wide", "narrow"}, [][]float64{{-2, -1}, {-2, 1}, {2, -1}, {2, 1}})
	obs2 := mustObs(t, []string{"wide", "narrow"}, [][]float64{{2, 0}})

	res, err := pca.Fit(obs)
	require.NoError(t, err)

	assert.InDelta(t, 16.0/3, res.Components[0].Eigenvalue, 1e-12)
	assert.InDelta(t, 4.0/3, res.Components[1].Eigenvalue, 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0}, res.Components[0].Loadings, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 1}, res.Components[1].Loadings, 1e-12)
	assert.InDelta(t, 0.8, res.Components[0].Proportion, 1e-12)

	load, err := res.Loading("narrow", 2)
	require.NoError(t, err)
	assert.InDelta(t, 1, load, 1e-12)

	scores, err := res.Project(obs2)
	require.NoError(t, err)
	got, _ := scores.At(0, 0)
	assert.InDelta(t, 2, got, 1e-12)

	row, err := res.ProjectRow([]float64{2, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 0}, row, 1e-12)
	_, err = res.ProjectRow([]float64{1})
	assert.ErrorIs(t, err, pca.ErrFeatureMismatch)
}

func TestFitErrors(t *testing.T) {
	_, err := pca.Fit(mustObs(t, []string{"a", "b"}, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, dataset.ErrInsufficientData)

	_, err = pca.Fit(mustObs(t, []string{"a", "flat"}, [][]float64{{1, 5}, {2, 5}, {3, 5}}))
	var dfe *standardize.DegenerateFeatureError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, "flat", dfe.Column)

	_, err = pca.Fit(randomObs(t, 10, 4, 1), pca.WithMaxIter(1))
	assert.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestResultAccessorsErrors(t *testing.T) {
	res, err := pca.Fit(randomObs(t, 10, 3, 2))
	require.NoError(t, err)

	_, err = res.Component(0)
	assert.ErrorIs(t, err, pca.ErrComponentRange)
	_, err = res.Loading("zzz", 1)
	assert.ErrorIs(t, err, pca.ErrUnknownFeature)
	_, err = res.Biplot(1, 4)
	assert.ErrorIs(t, err, pca.ErrComponentRange)
	_, err = res.Project(mustObs(t, []string{"a", "b"}, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, pca.ErrFeatureMismatch)
	_, err = res.Project(mustObs(t, []string{"a", "b", "d"}, [][]float64{{1, 2, 3}}))
	assert.ErrorIs(t, err, pca.ErrFeatureMismatch)
}

func TestSummaryAndBiplot(t *testing.T) {
	obs := randomObs(t, 12, 3, 3)
	res, err := pca.Fit(obs)
	require.NoError(t, err)

	sum := res.Summary()
	require.Len(t, sum, 3)
	assert.Equal(t, "PC1", sum[0].Component)
	assert.InDelta(t, 1, sum[2].Cumulative, 1e-12)

	bp, err := res.Biplot(1, 2)
	require.NoError(t, err)
	require.Len(t, bp.Points, 12)
	require.Len(t, bp.Arrows, 3)
	assert.Equal(t, obs.Labels()[0], bp.Points[0].Label)
	s, _ := res.Scores.At(0, 1)
	assert.Equal(t, s, bp.Points[0].Y)
	pc1 := res.Components[0]
	assert.InDelta(t, pc1.Loadings[2]*pc1.StdDev, bp.Arrows[2].X, 1e-15)
}

func TestSolversAgree(t *testing.T) {
	obs := randomObs(t, 30, 4, 42)

	jac, err := pca.Fit(obs, pca.WithSolver(pca.SolverJacobi))
	require.NoError(t, err)
	svd, err := pca.Fit(obs, pca.WithSolver(pca.SolverSVD))
	require.NoError(t, err)

	for k := range jac.Components {
		assert.InDelta(t, jac.Components[k].Eigenvalue, svd.Components[k].Eigenvalue, 1e-9)
		assert.InDeltaSlice(t, jac.Components[k].Loadings, svd.Components[k].Loadings, 1e-6)
	}
	assertDenseClose(t, jac.Scores, svd.Scores, 1e-6)
}

func TestFitSmallScaleData(t *testing.T) {
	obs := randomObs(t, 20, 3, 5)
	rows := make([][]float64, obs.Rows())
	for i := range rows {
		rows[i] = obs.Row(i)
		for j := range rows[i] {
			rows[i][j] *= 1e-13
		}
	}
	tiny := mustObs(t, obs.Features(), rows)

	for _, solver := range []pca.Solver{pca.SolverJacobi, pca.SolverSVD} {
		t.Run(solver.String(), func(t *testing.T) {
			ref, err := pca.Fit(obs, pca.WithSolver(solver))
			require.NoError(t, err)
			res, err := pca.Fit(tiny, pca.WithSolver(solver))
			require.NoError(t, err)

			for k, c := range res.Components {
				assert.InDelta(t, ref.Components[k].Proportion, c.Proportion, 1e-9)
				assert.InDelta(t, ref.Components[k].Eigenvalue*1e-26, c.Eigenvalue, 1e-9*ref.Components[k].Eigenvalue*1e-26)
				assert.InDeltaSlice(t, ref.Components[k].Loadings, c.Loadings, 1e-6)
			}
		})
	}
}

func TestSVDWideData(t *testing.T) {
	// n < p: still p components, trailing ones with zero variance
	obs := randomObs(t, 3, 5, 9)
	res, err := pca.Fit(obs, pca.WithSolver(pca.SolverSVD))
	require.NoError(t, err)
	require.Len(t, res.Components, 5)
	for k := 2; k < 5; k++ {
		assert.InDelta(t, 0, res.Components[k].Eigenvalue, 1e-9)
	}
}

func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { pca.WithSolver(pca.Solver(7)) })
	assert.Panics(t, func() { pca.WithTolerance(0) })
	assert.Panics(t, func() { pca.WithMaxIter(0) })

	s, err := pca.ParseSolver("SVD")
	require.NoError(t, err)
	assert.Equal(t, pca.SolverSVD, s)
	_, err = pca.ParseSolver("power")
	assert.ErrorIs(t, err, pca.ErrUnknownSolver)
}

func TestFitProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 25).Draw(t, "n")
		p := rapid.IntRange(1, 4).Draw(t, "p")
		solver := rapid.SampledFrom([]pca.Solver{pca.SolverJacobi, pca.SolverSVD}).Draw(t, "solver")
		features := make([]string, p)
		for j := range features {
			features[j] = string(rune('a' + j))
		}
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, p)
			for j := range rows[i] {
				rows[i][j] = float64(rapid.IntRange(-50, 50).Draw(t, "v"))
			}
		}
		obs := mustObs(t, features, rows)

		res, err := pca.Fit(obs, pca.WithSolver(solver))
		if errors.Is(err, standardize.ErrDegenerateFeature) {
			return
		}
		require.NoError(t, err)
		require.Len(t, res.Components, p)

		var sum float64
		for k, c := range res.Components {
			sum += c.Proportion
			if k > 0 {
				assert.LessOrEqual(t, c.Eigenvalue, res.Components[k-1].Eigenvalue)
			}
			// unit length, largest entry positive
			var norm, best float64
			for _, v := range c.Loadings {
				norm += v * v
				if math.Abs(v) > math.Abs(best) {
					best = v
				}
			}
			assert.InDelta(t, 1, norm, 1e-9)
			assert.GreaterOrEqual(t, best, 0.0)
			// orthogonal to earlier components
			for _, prev := range res.Components[:k] {
				var dot float64
				for j := range c.Loadings {
					dot += c.Loadings[j] * prev.Loadings[j]
				}
				assert.InDelta(t, 0, dot, 1e-9)
			}
		}
		assert.InDelta(t, 1, sum, 1e-9)

		projected, err := res.Project(obs)
		require.NoError(t, err)
		assertDenseClose(t, res.Scores, projected, 1e-9)
	})
}
