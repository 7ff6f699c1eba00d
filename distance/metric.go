// SPDX-License-Identifier: MIT

package distance

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Metric selects how two observation rows are compared.
type Metric int

const (
	// Euclidean is the L2 distance √Σ(xᵢ−yᵢ)².
	Euclidean Metric = iota
	// Manhattan is the L1 distance Σ|xᵢ−yᵢ|.
	Manhattan
	// Maximum is the L∞ (Chebyshev) distance max|xᵢ−yᵢ|.
	Maximum
)

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Maximum:
		return "maximum"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric maps a case-insensitive name to a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	case "maximum":
		return Maximum, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// norm returns the L parameter floats.Distance expects for m.
func (m Metric) norm() (float64, error) {
	switch m {
	case Euclidean:
		return 2, nil
	case Manhattan:
		return 1, nil
	case Maximum:
		return math.Inf(1), nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, m)
}

// Between returns the distance between two equal-length vectors under m.
// It panics if the lengths differ, as floats.Distance does.
func (m Metric) Between(x, y []float64) float64 {
	l, err := m.norm()
	if err != nil {
		panic(err)
	}

	return floats.Distance(x, y, l)
}
