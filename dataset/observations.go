// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvstat/matrix"
)

// Observations is an n×p matrix of finite values with one label per row
// and one unique feature name per column. It is immutable: accessors
// return copies.
type Observations struct {
	labels   []string
	features []string
	x        *matrix.Dense
}

// NewObservations validates and copies rows into an observation matrix.
//
// A nil labels slice yields labels "1".."n". Errors: *InsufficientDataError
// (no rows), ErrNoFeatures, ErrDuplicateName, ErrEmptyName, ErrLabelMismatch,
// ErrRagged, ErrMissingValue (NaN or ±Inf).
func NewObservations(labels, features []string, rows [][]float64) (*Observations, error) {
	if err := RequireRows("observations", len(rows), 1); err != nil {
		return nil, err
	}
	if err := checkFeatures(features); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = defaultLabels(len(rows))
	}
	if len(labels) != len(rows) {
		return nil, fmt.Errorf("%w: %d labels for %d rows", ErrLabelMismatch, len(labels), len(rows))
	}
	for i, row := range rows {
		if len(row) != len(features) {
			return nil, fmt.Errorf("row %d: %w: %d values for %d features", i, ErrRagged, len(row), len(features))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: feature %q, row %q", ErrMissingValue, features[j], labels[i])
			}
		}
	}
	x, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, err
	}

	return &Observations{
		labels:   append([]string(nil), labels...),
		features: append([]string(nil), features...),
		x:        x,
	}, nil
}

// FromMatrix wraps a copy of m with labels and feature names.
// Used by transforms that produce a new matrix for the same rows.
func FromMatrix(labels, features []string, m matrix.Matrix) (*Observations, error) {
	if m == nil {
		return nil, matrix.ErrNilMatrix
	}
	if len(features) != m.Cols() {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrRagged, len(features), m.Cols())
	}
	if err := matrix.ValidateFinite(m); err != nil {
		if errors.Is(err, matrix.ErrNaNInf) {
			return nil, fmt.Errorf("%w: %v", ErrMissingValue, err)
		}
		return nil, err
	}
	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
		for j := range rows[i] {
			rows[i][j], _ = m.At(i, j)
		}
	}

	return NewObservations(labels, features, rows)
}

// Rows returns n.
func (o *Observations) Rows() int { return o.x.Rows() }

// Cols returns p.
func (o *Observations) Cols() int { return o.x.Cols() }

// Labels returns a copy of the row labels.
func (o *Observations) Labels() []string { return append([]string(nil), o.labels...) }

// Features returns a copy of the column names.
func (o *Observations) Features() []string { return append([]string(nil), o.features...) }

// FeatureIndex returns the column index of a feature.
func (o *Observations) FeatureIndex(name string) (int, bool) {
	for j, f := range o.features {
		if f == name {
			return j, true
		}
	}

	return 0, false
}

// At returns x[i,j]. It panics on out-of-range indices like a slice would.
func (o *Observations) At(i, j int) float64 {
	v, err := o.x.At(i, j)
	if err != nil {
		panic(err)
	}

	return v
}

// Row returns a copy of row i.
func (o *Observations) Row(i int) []float64 {
	r, err := o.x.Row(i)
	if err != nil {
		panic(err)
	}

	return r
}

// Column returns a copy of column j.
func (o *Observations) Column(j int) []float64 {
	c, err := o.x.Col(j)
	if err != nil {
		panic(err)
	}

	return c
}

// Matrix returns a copy of the underlying matrix.
func (o *Observations) Matrix() *matrix.Dense { return o.x.Clone().(*matrix.Dense) }

// SameFeatures reports whether other has identical feature names in the same order.
func (o *Observations) SameFeatures(other *Observations) bool {
	if other == nil || len(o.features) != len(other.features) {
		return false
	}
	for j := range o.features {
		if o.features[j] != other.features[j] {
			return false
		}
	}

	return true
}

func checkFeatures(features []string) error {
	if len(features) == 0 {
		return ErrNoFeatures
	}
	seen := make(map[string]bool, len(features))
	for j, f := range features {
		if f == "" {
			return fmt.Errorf("feature %d: %w", j, ErrEmptyName)
		}
		if seen[f] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, f)
		}
		seen[f] = true
	}

	return nil
}

func defaultLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}

	return out
}
