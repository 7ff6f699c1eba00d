// SPDX-License-Identifier: MIT

package distance

import "errors"

var (
	// ErrUnknownMetric is returned by ParseMetric for an unrecognized name.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrNotDissimilarity is returned by FromMatrix when the input is not a valid
	// dissimilarity matrix. It wraps the matrix validator error that failed.
	ErrNotDissimilarity = errors.New("distance: not a dissimilarity matrix")

	// ErrNegativeDistance is joined with ErrNotDissimilarity for entries below zero.
	ErrNegativeDistance = errors.New("distance: negative entry")
)
