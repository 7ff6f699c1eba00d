// SPDX-License-Identifier: MIT
// Public API facades over the unexported kernels.
//
// Purpose:
//   - Provide thin entry points for the statistics transforms; each facade
//     delegates to the canonical implementation without duplicating logic.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// CenterColumns returns a centered copy Xc = X − mean(X, by columns) and the column means.
// Time: O(r*c). Space: O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// SubCols returns X with vec[j] subtracted from every entry of column j.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(vec) != Cols).
func SubCols(X Matrix, vec []float64) (*Dense, error) { return ewBroadcastSubCols(X, vec) }

// ScaleCols returns X with every entry of column j multiplied by vec[j].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(vec) != Cols).
func ScaleCols(X Matrix, vec []float64) (*Dense, error) { return ewScaleCols(X, vec) }

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(n-1).
// Returns Cov (exactly symmetric) and column means.
//
// Notes:
//   - Requires r >= 2; else ErrDimensionMismatch.
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }
