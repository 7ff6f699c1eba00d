// SPDX-License-Identifier: MIT

// Package pca computes principal components of an observation matrix.
//
// Fit centers the columns, decomposes the sample covariance and returns
// exactly p components ordered by descending variance together with the
// scores of every observation. Two conventions make the output
// deterministic:
//
//   - Order: components are sorted by eigenvalue, largest first; exactly
//     equal eigenvalues keep the solver's original column order.
//   - Sign: in every loading vector the entry with the largest magnitude is
//     positive; among entries of equal magnitude the lowest feature index
//     decides.
//
// Fit does not standardize. Pass standardize.Standardize(...).Data to get
// correlation-matrix PCA, as is usual for features measured in different units.
package pca

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/matrix"
	"github.com/katalvlaran/lvstat/standardize"
)

// Component is one principal axis.
type Component struct {
	Index      int       // 1-based component number (PC1, PC2, ...)
	Eigenvalue float64   // variance of the scores along this axis
	StdDev     float64   // sqrt(Eigenvalue)
	Proportion float64   // Eigenvalue / total variance
	Cumulative float64   // running sum of Proportion
	Loadings   []float64 // unit vector, one entry per feature
}

// Name returns "PC<Index>".
func (c Component) Name() string { return fmt.Sprintf("PC%d", c.Index) }

// Result is a fitted PCA model.
type Result struct {
	Features   []string
	Labels     []string
	Center     []float64 // column means removed before projection
	Components []Component
	Scores     *matrix.Dense // n×p, row i = observation i in component coordinates
	Solver     Solver
}

// axis is an eigenpair before ordering; orig is its position in the solver output.
type axis struct {
	value float64
	vec   []float64
	orig  int
}

// Fit runs PCA on obs.
//
// Errors:
//   - *dataset.InsufficientDataError when obs has fewer than 2 rows.
//   - *standardize.DegenerateFeatureError for the first zero-variance column.
//   - matrix.ErrMatrixEigenFailed (Jacobi) or ErrDecompositionFailed (SVD), wrapped.
func Fit(obs *dataset.Observations, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	if err := dataset.RequireRows("pca", obs.Rows(), 2); err != nil {
		return nil, err
	}
	if err := standardize.Check(obs); err != nil {
		return nil, err
	}

	centered, center, err := matrix.CenterColumns(obs.Matrix())
	if err != nil {
		return nil, fmt.Errorf("pca: %w", err)
	}

	var axes []axis
	switch o.solver {
	case SolverSVD:
		axes, err = svdAxes(centered)
	default:
		axes, err = jacobiAxes(obs.Matrix(), o.tol, o.maxIter)
	}
	if err != nil {
		return nil, fmt.Errorf("pca: %s: %w", o.solver, err)
	}

	comps, err := buildComponents(axes)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Features:   obs.Features(),
		Labels:     obs.Labels(),
		Center:     center,
		Components: comps,
		Solver:     o.solver,
	}
	if res.Scores, err = res.project(centered); err != nil {
		return nil, err
	}

	return res, nil
}

// jacobiAxes diagonalizes the sample covariance of x. The tolerance is scaled
// by the covariance trace, which is positive once standardize.Check passed,
// so convergence does not depend on data units.
func jacobiAxes(x matrix.Matrix, tol float64, maxIter int) ([]axis, error) {
	cov, _, err := matrix.Covariance(x)
	if err != nil {
		return nil, err
	}
	p := cov.Rows()
	var trace float64
	for j := 0; j < p; j++ {
		v, _ := cov.At(j, j)
		trace += v
	}
	vals, q, err := matrix.Eigen(cov, tol*trace, maxIter)
	if err != nil {
		return nil, err
	}

	axes := make([]axis, p)
	for k := range axes {
		vec := make([]float64, p)
		for i := range vec {
			vec[i], _ = q.At(i, k)
		}
		axes[k] = axis{value: vals[k], vec: vec, orig: k}
	}

	return axes, nil
}

// buildComponents orders axes, fixes signs and derives the variance shares.
func buildComponents(axes []axis) ([]Component, error) {
	for k := range axes {
		if axes[k].value < 0 {
			axes[k].value = 0 // round-off on a positive semi-definite matrix
		}
	}
	sort.SliceStable(axes, func(a, b int) bool { return axes[a].value > axes[b].value })

	var total float64
	for _, a := range axes {
		total += a.value
	}
	if total <= 0 {
		return nil, fmt.Errorf("pca: total variance is zero: %w", standardize.ErrDegenerateFeature)
	}

	comps := make([]Component, len(axes))
	var cum float64
	for k, a := range axes {
		orientSign(a.vec)
		prop := a.value / total
		cum += prop
		comps[k] = Component{
			Index:      k + 1,
			Eigenvalue: a.value,
			StdDev:     math.Sqrt(a.value),
			Proportion: prop,
			Cumulative: cum,
			Loadings:   a.vec,
		}
	}

	return comps, nil
}

// orientSign flips v in place so that its largest-magnitude entry is positive.
// The first index wins among entries of equal magnitude.
func orientSign(v []float64) {
	best := 0
	for i := 1; i < len(v); i++ {
		if math.Abs(v[i]) > math.Abs(v[best]) {
			best = i
		}
	}
	if v[best] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}

// Rotation returns the p×p loading matrix; column k holds component k+1.
func (r *Result) Rotation() *matrix.Dense {
	p := len(r.Features)
	rows := make([][]float64, p)
	for i := range rows {
		rows[i] = make([]float64, len(r.Components))
		for k, c := range r.Components {
			rows[i][k] = c.Loadings[i]
		}
	}
	m, _ := matrix.NewFromRows(rows) // loadings are finite and p ≥ 1

	return m
}

// Project returns the scores of new observations under the fitted model.
func (r *Result) Project(obs *dataset.Observations) (*matrix.Dense, error) {
	features := obs.Features()
	if len(features) != len(r.Features) {
		return nil, fmt.Errorf("%w: fitted on %d features, got %d", ErrFeatureMismatch, len(r.Features), len(features))
	}
	for j := range features {
		if features[j] != r.Features[j] {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrFeatureMismatch, j, features[j], r.Features[j])
		}
	}
	centered, err := matrix.SubCols(obs.Matrix(), r.Center)
	if err != nil {
		return nil, fmt.Errorf("pca: %w", err)
	}

	return r.project(centered)
}

func (r *Result) project(centered matrix.Matrix) (*matrix.Dense, error) {
	s, err := matrix.Mul(centered, r.Rotation())
	if err != nil {
		return nil, fmt.Errorf("pca: scores: %w", err)
	}

	return s.(*matrix.Dense), nil
}

// ProjectRow scores a single observation given as one value per fitted feature.
func (r *Result) ProjectRow(x []float64) ([]float64, error) {
	if len(x) != len(r.Features) {
		return nil, fmt.Errorf("%w: fitted on %d features, got %d values", ErrFeatureMismatch, len(r.Features), len(x))
	}
	centered := make([]float64, len(x))
	for j := range x {
		centered[j] = x[j] - r.Center[j]
	}
	vt, err := matrix.Transpose(r.Rotation())
	if err != nil {
		return nil, fmt.Errorf("pca: %w", err)
	}
	s, err := matrix.MatVec(vt, centered)
	if err != nil {
		return nil, fmt.Errorf("pca: %w", err)
	}

	return s, nil
}
