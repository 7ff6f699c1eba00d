// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, private element-wise and broadcast kernels (ew*) shared by
//     the statistics transforms and the public facades in api.go.
//
// Determinism & Performance:
//   - Fixed i→j loop order; *Dense inputs are read straight from the flat buffer.
//   - One output allocation per call; O(r*c) time and space.

package matrix

// Broadcast kernel tags.
const (
	opSubCols   = "SubCols"
	opScaleCols = "ScaleCols"
)

// ewBroadcastSubCols computes out[i,j] = X[i,j] - colMeans[j].
func ewBroadcastSubCols(X Matrix, colMeans []float64) (*Dense, error) {
	return ewColumnwise(opSubCols, X, colMeans, func(v, k float64) float64 { return v - k })
}

// ewScaleCols computes out[i,j] = X[i,j] * scale[j].
func ewScaleCols(X Matrix, scale []float64) (*Dense, error) {
	return ewColumnwise(opScaleCols, X, scale, func(v, k float64) float64 { return v * k })
}

// ewColumnwise applies f(X[i,j], vec[j]) into a fresh Dense.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(vec) != Cols), ErrNaNInf from the numeric policy.
func ewColumnwise(tag string, X Matrix, vec []float64, f func(v, k float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(vec, c); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	var i, j, base int
	var v float64
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = f(d.data[base+j], vec[j])
			}
		}

		return out, nil
	}

	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(tag, err)
			}
			if err = out.Set(i, j, f(v, vec[j])); err != nil {
				return nil, matrixErrorf(tag, err)
			}
		}
	}

	return out, nil
}
