// SPDX-License-Identifier: MIT

// Package distance builds dissimilarity matrices for hierarchical clustering.
//
// A Dissimilarity is square, exactly symmetric, non-negative and has a zero
// diagonal. Compute guarantees this by filling only the upper triangle and
// mirroring it; FromMatrix checks it for matrices computed elsewhere.
package distance

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/matrix"
)

// Dissimilarity is an n×n matrix of pairwise distances between labeled items.
type Dissimilarity struct {
	labels []string
	n      int
	data   []float64 // row-major n*n
}

// Compute returns the pairwise distances between the rows of obs.
// Errors: *dataset.InsufficientDataError when obs has fewer than 2 rows, ErrUnknownMetric.
func Compute(obs *dataset.Observations, metric Metric) (*Dissimilarity, error) {
	if err := dataset.RequireRows("distance", obs.Rows(), 2); err != nil {
		return nil, err
	}
	if _, err := metric.norm(); err != nil {
		return nil, err
	}

	n := obs.Rows()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = obs.Row(i)
	}
	d := &Dissimilarity{labels: obs.Labels(), n: n, data: make([]float64, n*n)}
	var v float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v = metric.Between(rows[i], rows[j])
			d.data[i*n+j] = v
			d.data[j*n+i] = v
		}
	}

	return d, nil
}

// FromMatrix wraps a precomputed matrix. Nil labels become "1".."n".
//
// Errors (all wrapped in ErrNotDissimilarity): matrix.ErrNilMatrix,
// matrix.ErrNonSquare, matrix.ErrNaNInf, matrix.ErrAsymmetry (exact check),
// matrix.ErrNonZeroDiagonal, ErrNegativeDistance; dataset.ErrLabelMismatch
// when the label count differs from the size.
func FromMatrix(labels []string, m matrix.Matrix) (*Dissimilarity, error) {
	for _, check := range []func(matrix.Matrix) error{
		matrix.ValidateFinite,
		func(m matrix.Matrix) error { return matrix.ValidateSymmetric(m, 0) },
		func(m matrix.Matrix) error { return matrix.ValidateZeroDiagonal(m, 0) },
	} {
		if err := check(m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotDissimilarity, err)
		}
	}

	n := m.Rows()
	if labels == nil {
		labels = make([]string, n)
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
	}
	if len(labels) != n {
		return nil, fmt.Errorf("distance: %d labels for %d items: %w", len(labels), n, dataset.ErrLabelMismatch)
	}

	d := &Dissimilarity{labels: append([]string(nil), labels...), n: n, data: make([]float64, n*n)}
	var v float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ = m.At(i, j)
			if v < 0 {
				return nil, fmt.Errorf("%w: (%d,%d) = %g: %w", ErrNotDissimilarity, i, j, v, ErrNegativeDistance)
			}
			d.data[i*n+j] = v
		}
	}

	return d, nil
}

// Len returns the number of items.
func (d *Dissimilarity) Len() int { return d.n }

// Labels returns a copy of the item labels.
func (d *Dissimilarity) Labels() []string { return append([]string(nil), d.labels...) }

// At returns the distance between items i and j. It panics when out of range.
func (d *Dissimilarity) At(i, j int) float64 {
	if i < 0 || i >= d.n || j < 0 || j >= d.n {
		panic(fmt.Sprintf("distance: At(%d,%d) out of range for %d items", i, j, d.n))
	}

	return d.data[i*d.n+j]
}

// Condensed returns the strict upper triangle row by row, n(n-1)/2 values,
// in the order (0,1), (0,2), ..., (1,2), ...
func (d *Dissimilarity) Condensed() []float64 {
	out := make([]float64, 0, d.n*(d.n-1)/2)
	for i := 0; i < d.n; i++ {
		out = append(out, d.data[i*d.n+i+1:(i+1)*d.n]...)
	}

	return out
}

// Dense returns the full matrix as a new matrix.Dense.
func (d *Dissimilarity) Dense() *matrix.Dense {
	m, _ := matrix.NewDense(d.n, d.n) // n ≥ 1 for any constructed value
	for i := 0; i < d.n; i++ {
		for j := 0; j < d.n; j++ {
			_ = m.Set(i, j, d.data[i*d.n+j])
		}
	}

	return m
}

// New builds a Dissimilarity from a condensed upper triangle as returned by
// Condensed. Used for cophenetic matrices; values are trusted.
func New(labels []string, condensed []float64) (*Dissimilarity, error) {
	n := len(labels)
	if len(condensed) != n*(n-1)/2 {
		return nil, fmt.Errorf("distance: %d condensed values for %d items: %w", len(condensed), n, dataset.ErrLabelMismatch)
	}
	d := &Dissimilarity{labels: append([]string(nil), labels...), n: n, data: make([]float64, n*n)}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.data[i*n+j] = condensed[k]
			d.data[j*n+i] = condensed[k]
			k++
		}
	}

	return d, nil
}
