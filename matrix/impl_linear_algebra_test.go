// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/lvstat/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul(t *testing.T) {
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	b := NewFilledDense(t, 3, 2, []float64{7, 8, 9, 10, 11, 12})
	want := [][]float64{{58, 64}, {139, 154}}

	got, err := matrix.Mul(a, b)
	require.NoError(t, err)
	CompareExact(t, want, got)

	// fallback path must agree with the flat fast path
	got, err = matrix.Mul(hide{a}, b)
	require.NoError(t, err)
	CompareExact(t, want, got)
}

func TestMulErrors(t *testing.T) {
	a := MustDense(t, 2, 3)
	_, err := matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTransposeAndScale(t *testing.T) {
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)

	at, err = matrix.Transpose(hide{a})
	require.NoError(t, err)
	CompareExact(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, at)

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, s)

	s, err = matrix.Scale(hide{a}, 0.5)
	require.NoError(t, err)
	CompareExact(t, [][]float64{{0.5, 1, 1.5}, {2, 2.5, 3}}, s)

	_, err = matrix.Transpose(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMatVec(t *testing.T) {
	a := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -2}, y)

	y, err = matrix.MatVec(hide{a}, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 15}, y)

	_, err = matrix.MatVec(a, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// checkEigenPairs asserts A·q_k = λ_k·q_k and QᵀQ = I.
func checkEigenPairs(t *testing.T, a matrix.Matrix, vals []float64, q matrix.Matrix, eps float64) {
	t.Helper()
	n := a.Rows()
	var i, j, k int
	for k = 0; k < n; k++ {
		col := make([]float64, n)
		for i = 0; i < n; i++ {
			col[i] = MustAt(t, q, i, k)
		}
		av, err := matrix.MatVec(a, col)
		require.NoError(t, err)
		for i = 0; i < n; i++ {
			assert.InDelta(t, vals[k]*col[i], av[i], eps, "A·q_%d at row %d", k, i)
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			var dot float64
			for k = 0; k < n; k++ {
				dot += MustAt(t, q, k, i) * MustAt(t, q, k, j)
			}
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, dot, eps, "QᵀQ[%d,%d]", i, j)
		}
	}
}

func TestEigen2x2(t *testing.T) {
	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	vals, q, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	sliceClose(t, []float64{1, 3}, sorted, 1e-12)
	checkEigenPairs(t, a, vals, q, 1e-12)
}

func TestEigenPerfectlyCorrelated(t *testing.T) {
	// covariance of two identical standardized columns
	a := NewFilledDense(t, 2, 2, []float64{1, 1, 1, 1})
	vals, _, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	sliceClose(t, []float64{0, 2}, sorted, 1e-12)
}

func TestEigenRandomSymmetric(t *testing.T) {
	x := RandFilledDense(t, 20, 6, 7)
	cov, _, err := matrix.Covariance(x)
	require.NoError(t, err)

	vals, q, err := matrix.Eigen(cov, 1e-13, 10000)
	require.NoError(t, err)
	checkEigenPairs(t, cov, vals, q, 1e-9)

	// trace is preserved
	var trace, sum float64
	for i := 0; i < 6; i++ {
		trace += MustAt(t, cov, i, i)
		sum += vals[i]
	}
	assert.InDelta(t, trace, sum, 1e-12)

	// fallback input gives identical output
	vals2, q2, err := matrix.Eigen(hide{cov}, 1e-13, 10000)
	require.NoError(t, err)
	assert.Equal(t, vals, vals2)
	CompareExact(t, denseRows(t, q), q2)
}

func TestEigenDiagonalIsNoop(t *testing.T) {
	a := NewFilledDense(t, 3, 3, []float64{3, 0, 0, 0, 1, 0, 0, 0, 2})
	vals, q, err := matrix.Eigen(a, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, vals, "unsorted, diagonal order")
	CompareExact(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, q)
}

func TestEigenErrors(t *testing.T) {
	_, _, err := matrix.Eigen(NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4}), 1e-12, 10)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.Eigen(MustDense(t, 2, 3), 1e-12, 10)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	_, _, err = matrix.Eigen(NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2}), 1e-12, 0)
	assert.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)

	_, _, err = matrix.Eigen(NewFilledDense(t, 1, 1, []float64{1}), math.NaN(), 10)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}

func denseRows(t *testing.T, m matrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			out[i][j] = MustAt(t, m, i, j)
		}
	}

	return out
}
