// SPDX-License-Identifier: MIT

package hclust

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriterion is the sentinel behind InvalidCriterionError.
	ErrInvalidCriterion = errors.New("hclust: invalid linkage criterion")

	// ErrCutRange is returned by Cut for k outside 1..n.
	ErrCutRange = errors.New("hclust: cluster count out of range")

	// ErrMergeRange is returned by Rotate for a merge step outside 1..n-1.
	ErrMergeRange = errors.New("hclust: merge step out of range")

	// ErrInvalidTree is returned by New when merges do not describe a binary tree.
	ErrInvalidTree = errors.New("hclust: invalid merge tree")

	// ErrLabelMismatch is returned when a dissimilarity does not describe the tree's items.
	ErrLabelMismatch = errors.New("hclust: labels do not match")
)

// InvalidCriterionError names a linkage criterion that is not supported.
type InvalidCriterionError struct {
	Criterion string
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("hclust: invalid linkage criterion %q (want complete, single or average)", e.Criterion)
}

// Unwrap lets errors.Is(err, ErrInvalidCriterion) match.
func (e *InvalidCriterionError) Unwrap() error { return ErrInvalidCriterion }
