// SPDX-License-Identifier: MIT

package hclust

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvstat/distance"
)

// Merge joins two nodes. Negative codes are leaves (-(i+1) for item i);
// positive codes refer to the cluster formed at that 1-based merge step.
type Merge struct {
	Left, Right int
}

// Tree is a binary merge tree (dendrogram) over n labeled items.
// A Tree is immutable; Rotate returns a new one.
type Tree struct {
	labels  []string
	merges  []Merge
	heights []float64
	order   []int
	linkage Linkage
}

// New assembles a tree from explicit merges, as produced by other software.
// Every leaf and every earlier step must be used exactly once, and heights
// must be finite and non-decreasing.
func New(labels []string, merges []Merge, heights []float64, linkage Linkage) (*Tree, error) {
	n := len(labels)
	if n < 1 || len(merges) != n-1 || len(heights) != n-1 {
		return nil, fmt.Errorf("%w: %d labels, %d merges, %d heights", ErrInvalidTree, n, len(merges), len(heights))
	}

	usedLeaf := make([]bool, n)
	usedStep := make([]bool, n)
	use := func(step, code int) error {
		switch {
		case code < 0 && -code <= n && !usedLeaf[-code-1]:
			usedLeaf[-code-1] = true
		case code > 0 && code < step && !usedStep[code]:
			usedStep[code] = true
		default:
			return fmt.Errorf("%w: merge %d references %d", ErrInvalidTree, step, code)
		}

		return nil
	}
	for s, m := range merges {
		if err := use(s+1, m.Left); err != nil {
			return nil, err
		}
		if err := use(s+1, m.Right); err != nil {
			return nil, err
		}
		h := heights[s]
		if math.IsNaN(h) || math.IsInf(h, 0) || (s > 0 && h < heights[s-1]) {
			return nil, fmt.Errorf("%w: height %g at merge %d", ErrInvalidTree, h, s+1)
		}
	}

	return &Tree{
		labels:  slices.Clone(labels),
		merges:  slices.Clone(merges),
		heights: slices.Clone(heights),
		order:   leafOrder(merges, n),
		linkage: linkage,
	}, nil
}

// Len returns the number of leaves.
func (t *Tree) Len() int { return len(t.labels) }

// Labels returns the item labels in item order.
func (t *Tree) Labels() []string { return slices.Clone(t.labels) }

// Merges returns the n-1 merges in step order.
func (t *Tree) Merges() []Merge { return slices.Clone(t.merges) }

// Heights returns the merge heights in step order.
func (t *Tree) Heights() []float64 { return slices.Clone(t.heights) }

// Order returns item indices in left-to-right leaf order.
func (t *Tree) Order() []int { return slices.Clone(t.order) }

// OrderLabels returns the labels in leaf order.
func (t *Tree) OrderLabels() []string {
	out := make([]string, len(t.order))
	for k, i := range t.order {
		out[k] = t.labels[i]
	}

	return out
}

// Linkage returns the criterion the tree was built with.
func (t *Tree) Linkage() Linkage { return t.linkage }

// Clone returns a deep copy.
func (t *Tree) Clone() *Tree {
	return &Tree{
		labels:  slices.Clone(t.labels),
		merges:  slices.Clone(t.merges),
		heights: slices.Clone(t.heights),
		order:   slices.Clone(t.order),
		linkage: t.linkage,
	}
}

// Rotate returns a copy with the two children of merge step (1-based)
// swapped. Topology and heights are unchanged; only the leaf order differs.
func (t *Tree) Rotate(step int) (*Tree, error) {
	if step < 1 || step > len(t.merges) {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrMergeRange, step, len(t.merges))
	}
	r := t.Clone()
	m := &r.merges[step-1]
	m.Left, m.Right = m.Right, m.Left
	r.order = leafOrder(r.merges, r.Len())

	return r, nil
}

// Cut assigns each item to one of k clusters by undoing the last k-1
// merges. Cluster ids are 0..k-1, numbered by first appearance in item order.
func (t *Tree) Cut(k int) ([]int, error) {
	n := t.Len()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrCutRange, k, n)
	}

	sets := newDSU(n)
	rep := make([]int, len(t.merges)+1) // rep[s] is some item inside step s
	leaf := func(code int) int {
		if code < 0 {
			return -code - 1
		}

		return rep[code]
	}
	for s := 1; s <= n-k; s++ {
		m := t.merges[s-1]
		l, r := leaf(m.Left), leaf(m.Right)
		sets.union(l, r)
		rep[s] = l
	}

	ids := make([]int, n)
	seen := make(map[int]int, k)
	for i := range ids {
		root := sets.find(i)
		id, ok := seen[root]
		if !ok {
			id = len(seen)
			seen[root] = id
		}
		ids[i] = id
	}

	return ids, nil
}

// CutHeight cuts the tree at height h: every merge with height ≤ h is kept.
func (t *Tree) CutHeight(h float64) ([]int, error) {
	kept := 0
	for _, mh := range t.heights {
		if mh <= h {
			kept++
		}
	}

	return t.Cut(t.Len() - kept)
}

// members returns, for every step s, the items under that cluster.
func (t *Tree) members() [][]int {
	out := make([][]int, len(t.merges)+1)
	side := func(code int) []int {
		if code < 0 {
			return []int{-code - 1}
		}

		return out[code]
	}
	for s, m := range t.merges {
		out[s+1] = append(slices.Clone(side(m.Left)), side(m.Right)...)
	}

	return out
}

// Cophenetic returns the matrix of cophenetic distances: for items i and j,
// the height of the merge at which they first share a cluster.
func (t *Tree) Cophenetic() *distance.Dissimilarity {
	n := t.Len()
	full := make([]float64, n*n)
	members := t.members()
	side := func(code int) []int {
		if code < 0 {
			return []int{-code - 1}
		}

		return members[code]
	}
	for s, m := range t.merges {
		for _, i := range side(m.Left) {
			for _, j := range side(m.Right) {
				full[i*n+j] = t.heights[s]
				full[j*n+i] = t.heights[s]
			}
		}
	}

	condensed := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		condensed = append(condensed, full[i*n+i+1:(i+1)*n]...)
	}
	d, _ := distance.New(t.labels, condensed) // length matches by construction

	return d
}

// CopheneticCorrelation is the Pearson correlation between the tree's
// cophenetic distances and d, over all item pairs. d must carry the tree's
// labels in the same item order. The result is NaN when either side has
// no variance (for example with two items).
func (t *Tree) CopheneticCorrelation(d *distance.Dissimilarity) (float64, error) {
	if !slices.Equal(d.Labels(), t.labels) {
		return 0, fmt.Errorf("%w: dissimilarity has %d items, tree %d", ErrLabelMismatch, d.Len(), t.Len())
	}

	return stat.Correlation(t.Cophenetic().Condensed(), d.Condensed(), nil), nil
}
