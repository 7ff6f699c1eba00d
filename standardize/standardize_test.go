// SPDX-License-Identifier: MIT
package standardize_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"pgregory.net/rapid"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/standardize"
)

func mustObs(t require.TestingT, features []string, rows [][]float64) *dataset.Observations {
	obs, err := dataset.NewObservations(nil, features, rows)
	require.NoError(t, err)

	return obs
}

func TestStandardizeKnownValues(t *testing.T) {
	obs := mustObs(t, []string{"a", "b"}, [][]float64{{1, 10}, {2, 20}, {3, 30}})

	res, err := standardize.Standardize(obs)
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 20}, res.Means)
	assert.InDeltaSlice(t, []float64{1, 10}, res.StdDevs, 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, res.Data.Column(0), 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, res.Data.Column(1), 1e-12)
	assert.Equal(t, obs.Labels(), res.Data.Labels())
	assert.Equal(t, obs.Features(), res.Data.Features())
	assert.Equal(t, 1.0, obs.At(0, 0), "input untouched")
}

func TestStandardizeDegenerateColumn(t *testing.T) {
	obs := mustObs(t, []string{"kcal", "fiber", "salt"}, [][]float64{{1, 0.1, 5}, {2, 0.1, 6}, {3, 0.1, 7}})

	_, err := standardize.Standardize(obs)
	var dfe *standardize.DegenerateFeatureError
	require.ErrorAs(t, err, &dfe)
	assert.Equal(t, "fiber", dfe.Column)
	assert.Equal(t, 1, dfe.Index)
	assert.ErrorIs(t, err, standardize.ErrDegenerateFeature)
	assert.ErrorIs(t, standardize.Check(obs), standardize.ErrDegenerateFeature)
}

func TestStandardizeSmallScaleColumn(t *testing.T) {
	obs := mustObs(t, []string{"conc"}, [][]float64{{1e-13}, {2e-13}, {3e-13}})

	res, err := standardize.Standardize(obs)
	require.NoError(t, err)
	assert.InDelta(t, 2e-13, res.Means[0], 1e-25)
	assert.InDelta(t, 1e-13, res.StdDevs[0], 1e-25)
	assert.InDeltaSlice(t, []float64{-1, 0, 1}, res.Data.Column(0), 1e-9)

	flat := mustObs(t, []string{"conc"}, [][]float64{{1e-13}, {1e-13}, {1e-13}})
	assert.ErrorIs(t, standardize.Check(flat), standardize.ErrDegenerateFeature)
	zero := mustObs(t, []string{"blank"}, [][]float64{{0}, {0}})
	assert.ErrorIs(t, standardize.Check(zero), standardize.ErrDegenerateFeature)
}

func TestStandardizeNeedsTwoRows(t *testing.T) {
	_, err := standardize.Standardize(mustObs(t, []string{"a"}, [][]float64{{1}}))
	assert.ErrorIs(t, err, dataset.ErrInsufficientData)
}

func TestApply(t *testing.T) {
	train := mustObs(t, []string{"a"}, [][]float64{{0}, {2}})
	res, err := standardize.Standardize(train)
	require.NoError(t, err)

	out, err := res.Apply(mustObs(t, []string{"a"}, [][]float64{{1}, {1 + res.StdDevs[0]}}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, out.Column(0), 1e-12)

	_, err = res.Apply(mustObs(t, []string{"b"}, [][]float64{{1}}))
	assert.ErrorIs(t, err, standardize.ErrFeatureMismatch)
}

func TestStandardizedMomentsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 40).Draw(t, "n")
		p := rapid.IntRange(1, 5).Draw(t, "p")
		features := make([]string, p)
		for j := range features {
			features[j] = string(rune('a' + j))
		}
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = make([]float64, p)
			for j := range rows[i] {
				rows[i][j] = float64(rapid.IntRange(-1000, 1000).Draw(t, "v"))
			}
		}
		obs := mustObs(t, features, rows)

		res, err := standardize.Standardize(obs)
		var dfe *standardize.DegenerateFeatureError
		if errors.As(err, &dfe) {
			col := obs.Column(dfe.Index)
			for _, v := range col {
				if v != col[0] {
					t.Fatalf("column %d reported degenerate but varies: %v", dfe.Index, col)
				}
			}
			return
		}
		require.NoError(t, err)
		for j := 0; j < p; j++ {
			mean, std := stat.MeanStdDev(res.Data.Column(j), nil)
			assert.InDelta(t, 0, mean, 1e-9)
			assert.InDelta(t, 1, std, 1e-9)
		}
	})
}
