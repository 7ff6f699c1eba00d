// SPDX-License-Identifier: MIT

package pca

import "errors"

var (
	// ErrUnknownSolver is returned by ParseSolver.
	ErrUnknownSolver = errors.New("pca: unknown solver")

	// ErrDecompositionFailed is returned when the SVD does not converge.
	ErrDecompositionFailed = errors.New("pca: decomposition failed")

	// ErrFeatureMismatch is returned by Project when features differ from the fitted ones.
	ErrFeatureMismatch = errors.New("pca: feature mismatch")

	// ErrComponentRange is returned for a component number outside 1..p.
	ErrComponentRange = errors.New("pca: component out of range")

	// ErrUnknownFeature is returned by Loading for a feature the model was not fitted on.
	ErrUnknownFeature = errors.New("pca: unknown feature")
)
