// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"math"
	"strings"
)

// Solver selects the decomposition used by Fit.
type Solver int

const (
	// SolverJacobi diagonalizes the sample covariance with Jacobi rotations.
	SolverJacobi Solver = iota
	// SolverSVD takes the singular value decomposition of the centered data.
	SolverSVD
)

func (s Solver) String() string {
	switch s {
	case SolverJacobi:
		return "jacobi"
	case SolverSVD:
		return "svd"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// ParseSolver accepts "jacobi" or "svd" (case-insensitive).
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jacobi":
		return SolverJacobi, nil
	case "svd":
		return SolverSVD, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
}

const (
	// DefaultTolerance is the Jacobi convergence threshold on the largest
	// off-diagonal entry, relative to the trace of the covariance.
	DefaultTolerance = 1e-12

	// DefaultMaxIter caps the number of Jacobi rotations.
	DefaultMaxIter = 10000
)

const (
	panicSolverInvalid    = "pca: WithSolver: unknown solver"
	panicToleranceInvalid = "pca: WithTolerance: tol must be finite and > 0"
	panicMaxIterInvalid   = "pca: WithMaxIter: n must be > 0"
)

// Option configures Fit.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	solver  Solver
	tol     float64
	maxIter int
}

// WithSolver picks the decomposition. Panics on an unknown value.
func WithSolver(s Solver) Option {
	if s != SolverJacobi && s != SolverSVD {
		panic(panicSolverInvalid)
	}

	return func(o *Options) { o.solver = s }
}

// WithTolerance sets the Jacobi convergence threshold. Panics unless tol is finite and positive.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxIter caps Jacobi rotations. Panics when n < 1.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{solver: SolverJacobi, tol: DefaultTolerance, maxIter: DefaultMaxIter}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
