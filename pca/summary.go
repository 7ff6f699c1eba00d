// SPDX-License-Identifier: MIT

package pca

import "fmt"

// Importance is one column of the classic "importance of components" table.
type Importance struct {
	Component  string
	StdDev     float64
	Proportion float64
	Cumulative float64
}

// Summary returns one Importance row per component, in component order.
func (r *Result) Summary() []Importance {
	out := make([]Importance, len(r.Components))
	for k, c := range r.Components {
		out[k] = Importance{
			Component:  c.Name(),
			StdDev:     c.StdDev,
			Proportion: c.Proportion,
			Cumulative: c.Cumulative,
		}
	}

	return out
}

// Component returns component number k (1-based).
func (r *Result) Component(k int) (Component, error) {
	if k < 1 || k > len(r.Components) {
		return Component{}, fmt.Errorf("%w: %d not in 1..%d", ErrComponentRange, k, len(r.Components))
	}

	return r.Components[k-1], nil
}

// Loading returns the loading of feature on component k (1-based).
func (r *Result) Loading(feature string, k int) (float64, error) {
	c, err := r.Component(k)
	if err != nil {
		return 0, err
	}
	for j, f := range r.Features {
		if f == feature {
			return c.Loadings[j], nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
}

// Point is an observation in the plane of two components.
type Point struct {
	Label string
	X, Y  float64
}

// Arrow is a feature direction in the plane of two components.
type Arrow struct {
	Feature string
	X, Y    float64
}

// Biplot holds the coordinates needed to draw a biplot of components a and b:
// observation scores, and feature loadings scaled by each component's
// standard deviation (so arrow length reflects the variance it carries).
type Biplot struct {
	A, B   int
	Points []Point
	Arrows []Arrow
}

// Biplot returns biplot coordinates for components a and b (1-based).
func (r *Result) Biplot(a, b int) (*Biplot, error) {
	ca, err := r.Component(a)
	if err != nil {
		return nil, err
	}
	cb, err := r.Component(b)
	if err != nil {
		return nil, err
	}

	bp := &Biplot{A: a, B: b}
	for i, label := range r.Labels {
		x, _ := r.Scores.At(i, a-1)
		y, _ := r.Scores.At(i, b-1)
		bp.Points = append(bp.Points, Point{Label: label, X: x, Y: y})
	}
	for j, f := range r.Features {
		bp.Arrows = append(bp.Arrows, Arrow{
			Feature: f,
			X:       ca.Loadings[j] * ca.StdDev,
			Y:       cb.Loadings[j] * cb.StdDev,
		})
	}

	return bp, nil
}
