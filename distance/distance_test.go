// SPDX-License-Identifier: MIT
package distance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/distance"
	"github.com/katalvlaran/lvstat/matrix"
)

// rowsMatrix is a matrix.Matrix over raw rows, without the Dense NaN/Inf guard.
type rowsMatrix [][]float64

func (m rowsMatrix) Rows() int { return len(m) }
func (m rowsMatrix) Cols() int { return len(m[0]) }
func (m rowsMatrix) At(i, j int) (float64, error) { return m[i][j], nil }
func (m rowsMatrix) Set(i, j int, v float64) error {
	m[i][j] = v

	return nil
}
func (m rowsMatrix) Clone() matrix.Matrix {
	out := make(rowsMatrix, len(m))
	for i := range m {
		out[i] = append([]float64(nil), m[i]...)
	}

	return out
}

func scenarioA(t require.TestingT) *dataset.Observations {
	obs, err := dataset.NewObservations([]string{"a", "b", "c", "d"}, []string{"x", "y"},
		[][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 6}})
	require.NoError(t, err)

	return obs
}

func TestComputeEuclidean(t *testing.T) {
	d, err := distance.Compute(scenarioA(t), distance.Euclidean)
	require.NoError(t, err)

	assert.Equal(t, 4, d.Len())
	assert.Equal(t, []string{"a", "b", "c", "d"}, d.Labels())
	assert.InDelta(t, 1, d.At(0, 1), 1e-15)
	assert.InDelta(t, math.Sqrt(50), d.At(0, 2), 1e-12)
	assert.InDelta(t, math.Sqrt(61), d.At(0, 3), 1e-12)
	assert.InDelta(t, math.Sqrt(41), d.At(1, 2), 1e-12)
	assert.Equal(t, d.At(3, 0), d.At(0, 3))
	assert.Equal(t, 0.0, d.At(2, 2))

	cond := d.Condensed()
	require.Len(t, cond, 6)
	assert.Equal(t, []float64{d.At(0, 1), d.At(0, 2), d.At(0, 3), d.At(1, 2), d.At(1, 3), d.At(2, 3)}, cond)
}

func TestComputeOtherMetrics(t *testing.T) {
	obs := scenarioA(t)

	man, err := distance.Compute(obs, distance.Manhattan)
	require.NoError(t, err)
	assert.Equal(t, 11.0, man.At(0, 3))

	mx, err := distance.Compute(obs, distance.Maximum)
	require.NoError(t, err)
	assert.Equal(t, 6.0, mx.At(0, 3))
	assert.Equal(t, 5.0, mx.At(1, 2))
}

func TestComputeErrors(t *testing.T) {
	one, err := dataset.NewObservations(nil, []string{"x"}, [][]float64{{1}})
	require.NoError(t, err)
	_, err = distance.Compute(one, distance.Euclidean)
	var ide *dataset.InsufficientDataError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, 1, ide.Rows)

	_, err = distance.Compute(scenarioA(t), distance.Metric(9))
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
}

func TestParseMetric(t *testing.T) {
	for name, want := range map[string]distance.Metric{
		"euclidean": distance.Euclidean,
		"Manhattan": distance.Manhattan,
		" MAXIMUM ": distance.Maximum,
	} {
		got, err := distance.ParseMetric(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := distance.ParseMetric("cosine")
	assert.ErrorIs(t, err, distance.ErrUnknownMetric)
	assert.Equal(t, "manhattan", distance.Manhattan.String())
}

func TestFromMatrix(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{0, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	require.NoError(t, err)

	d, err := distance.FromMatrix(nil, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, d.Labels())
	assert.Equal(t, 4.0, d.At(2, 1))

	dense := d.Dense()
	for i := 0; i < 3; i++ {
		want, err := m.Row(i)
		require.NoError(t, err)
		got, err := dense.Row(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = distance.FromMatrix([]string{"a"}, m)
	assert.ErrorIs(t, err, dataset.ErrLabelMismatch)
}

func TestFromMatrixRejects(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"nonsquare", [][]float64{{0, 1, 2}, {1, 0, 3}}, matrix.ErrNonSquare},
		{"asymmetric", [][]float64{{0, 1}, {1.0000001, 0}}, matrix.ErrAsymmetry},
		{"diagonal", [][]float64{{0, 1}, {1, 0.5}}, matrix.ErrNonZeroDiagonal},
		{"negative", [][]float64{{0, -1}, {-1, 0}}, distance.ErrNegativeDistance},
		{"nan", [][]float64{{0, math.NaN()}, {math.NaN(), 0}}, matrix.ErrNaNInf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := distance.FromMatrix(nil, rowsMatrix(tc.rows))
			assert.ErrorIs(t, err, distance.ErrNotDissimilarity)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewFromCondensed(t *testing.T) {
	d, err := distance.New([]string{"p", "q", "r"}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, d.At(2, 1))
	assert.Equal(t, []float64{1, 2, 3}, d.Condensed())

	_, err = distance.New([]string{"p", "q"}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrLabelMismatch)
}

func TestComputeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(t, "n")
		p := rapid.IntRange(1, 4).Draw(t, "p")
		metric := rapid.SampledFrom([]distance.Metric{distance.Euclidean, distance.Manhattan, distance.Maximum}).Draw(t, "metric")
		features := make([]string, p)
		for j := range features {
			features[j] = string(rune('a' + j))
		}
		rows := make([][]float64, n)
		for i := range rows {
			rows[i] = rapid.SliceOfN(rapid.Float64Range(-1e3, 1e3), p, p).Draw(t, "row")
		}
		obs, err := dataset.NewObservations(nil, features, rows)
		require.NoError(t, err)

		d, err := distance.Compute(obs, metric)
		require.NoError(t, err)
		for i := 0; i < n; i++ {
			assert.Equal(t, 0.0, d.At(i, i))
			for j := 0; j < n; j++ {
				assert.Equal(t, d.At(i, j), d.At(j, i))
				assert.GreaterOrEqual(t, d.At(i, j), 0.0)
			}
		}
		// the dense form is a valid precomputed input
		_, err = distance.FromMatrix(d.Labels(), d.Dense())
		assert.NoError(t, err)
	})
}
