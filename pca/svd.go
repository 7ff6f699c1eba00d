// SPDX-License-Identifier: MIT

package pca

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvstat/matrix"
)

// svdAxes decomposes the centered n×p data. Singular value s_k gives the
// covariance eigenvalue s_k²/(n-1); when n < p the full V supplies the
// remaining p-n axes with eigenvalue 0, so exactly p axes are returned.
func svdAxes(centered *matrix.Dense) ([]axis, error) {
	n, p := centered.Rows(), centered.Cols()
	data := make([]float64, 0, n*p)
	for i := 0; i < n; i++ {
		row, err := centered.Row(i)
		if err != nil {
			return nil, err
		}
		data = append(data, row...)
	}

	kind := mat.SVDThin
	if n < p {
		kind = mat.SVDFull
	}
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(n, p, data), kind); !ok {
		return nil, ErrDecompositionFailed
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	_, cols := v.Dims()
	axes := make([]axis, 0, p)
	for k := 0; k < cols && k < p; k++ {
		var value float64
		if k < len(values) {
			value = values[k] * values[k] / float64(n-1)
		}
		axes = append(axes, axis{value: value, vec: mat.Col(nil, k, &v), orig: k})
	}

	return axes, nil
}
