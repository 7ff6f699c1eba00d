// SPDX-License-Identifier: MIT

// Package standardize rescales every feature of an observation matrix to
// zero mean and unit sample standard deviation (n-1 denominator).
//
// A feature with zero variance cannot be rescaled; it is reported as a
// *DegenerateFeatureError naming the column instead of producing NaN.
package standardize

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/matrix"
)

// DefaultEpsilon is the relative threshold below which a sample standard
// deviation counts as zero: std ≤ DefaultEpsilon·max_i|x_i|, with no absolute
// floor.
const DefaultEpsilon = 1e-12

var (
	// ErrDegenerateFeature is the sentinel behind DegenerateFeatureError.
	ErrDegenerateFeature = errors.New("standardize: zero-variance feature")

	// ErrFeatureMismatch is returned by Apply when the feature names differ from the fitted ones.
	ErrFeatureMismatch = errors.New("standardize: feature mismatch")
)

// DegenerateFeatureError names the first column whose values are all identical.
type DegenerateFeatureError struct {
	Column string // feature name
	Index  int    // column index
}

func (e *DegenerateFeatureError) Error() string {
	return fmt.Sprintf("standardize: feature %q (column %d) has zero variance", e.Column, e.Index)
}

// Unwrap lets errors.Is(err, ErrDegenerateFeature) match.
func (e *DegenerateFeatureError) Unwrap() error { return ErrDegenerateFeature }

// Result is a standardized observation matrix with the parameters used.
type Result struct {
	Data    *dataset.Observations
	Means   []float64
	StdDevs []float64
}

// Moments returns the per-column mean and sample standard deviation.
//
// Errors: *dataset.InsufficientDataError (fewer than 2 rows) and
// *DegenerateFeatureError for the first zero-variance column in feature order.
func Moments(obs *dataset.Observations) (means, stds []float64, err error) {
	if err = dataset.RequireRows("standardize", obs.Rows(), 2); err != nil {
		return nil, nil, err
	}
	features := obs.Features()
	means = make([]float64, obs.Cols())
	stds = make([]float64, obs.Cols())
	for j := range features {
		col := obs.Column(j)
		means[j], stds[j] = stat.MeanStdDev(col, nil)
		if stds[j] <= DefaultEpsilon*floats.Norm(col, math.Inf(1)) {
			return nil, nil, &DegenerateFeatureError{Column: features[j], Index: j}
		}
	}

	return means, stds, nil
}

// Check reports the first degenerate column without transforming anything.
func Check(obs *dataset.Observations) error {
	_, _, err := Moments(obs)

	return err
}

// Standardize returns (x - mean_j) / std_j for every column j. Labels and
// feature names are preserved; the input is not modified.
func Standardize(obs *dataset.Observations) (*Result, error) {
	means, stds, err := Moments(obs)
	if err != nil {
		return nil, err
	}
	r := &Result{Means: means, StdDevs: stds}
	if r.Data, err = r.transform(obs); err != nil {
		return nil, err
	}

	return r, nil
}

// Apply standardizes new observations with the fitted means and deviations.
func (r *Result) Apply(obs *dataset.Observations) (*dataset.Observations, error) {
	if !r.Data.SameFeatures(obs) {
		return nil, fmt.Errorf("%w: fitted on %v, got %v", ErrFeatureMismatch, r.Data.Features(), obs.Features())
	}

	return r.transform(obs)
}

func (r *Result) transform(obs *dataset.Observations) (*dataset.Observations, error) {
	inv := make([]float64, len(r.StdDevs))
	for j, s := range r.StdDevs {
		inv[j] = 1 / s
	}
	centered, err := matrix.SubCols(obs.Matrix(), r.Means)
	if err != nil {
		return nil, fmt.Errorf("standardize: %w", err)
	}
	scaled, err := matrix.ScaleCols(centered, inv)
	if err != nil {
		return nil, fmt.Errorf("standardize: %w", err)
	}

	return dataset.FromMatrix(obs.Labels(), obs.Features(), scaled)
}
