// SPDX-License-Identifier: MIT

// Package hclust performs agglomerative hierarchical clustering.
//
// Cluster starts with every item in its own cluster and repeatedly merges
// the closest pair, updating cluster distances with the Lance–Williams rule
// of the chosen Linkage. The result is a Tree of n-1 merges with
// non-decreasing heights.
//
// Ties are broken deterministically. Every active cluster is identified by
// the smallest item index it contains; among pairs at the minimum distance
// the lexicographically smallest (low, high) pair of identifiers merges
// first, and the merged cluster keeps the lower identifier.
//
// Merges use the conventional encoding: leaf i is -(i+1) and the cluster
// formed by merge step s (1-based) is s. Within a merge a singleton comes
// before a cluster, two singletons are ordered by item index and two
// clusters by formation step.
package hclust

import (
	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/distance"
)

// Cluster builds the merge tree of d under linkage.
//
// Errors: *dataset.InsufficientDataError when d has fewer than 2 items,
// *InvalidCriterionError for an unsupported linkage.
func Cluster(d *distance.Dissimilarity, linkage Linkage) (*Tree, error) {
	if !linkage.valid() {
		return nil, &InvalidCriterionError{Criterion: linkage.String()}
	}
	n := d.Len()
	if err := dataset.RequireRows("hclust", n, 2); err != nil {
		return nil, err
	}

	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist[i*n+j] = d.At(i, j)
			dist[j*n+i] = dist[i*n+j]
		}
	}

	var (
		active = make([]bool, n)
		size   = make([]int, n)
		node   = make([]int, n) // merge code of the cluster held in each slot
		t      = &Tree{
			labels:  d.Labels(),
			merges:  make([]Merge, 0, n-1),
			heights: make([]float64, 0, n-1),
			linkage: linkage,
		}
	)
	for i := range active {
		active[i], size[i], node[i] = true, 1, -(i + 1)
	}

	for step := 1; step < n; step++ {
		lo, hi := closestPair(dist, active, n)

		t.merges = append(t.merges, orderChildren(node[lo], node[hi]))
		t.heights = append(t.heights, dist[lo*n+hi])

		for k := 0; k < n; k++ {
			if !active[k] || k == lo || k == hi {
				continue
			}
			v := linkage.update(dist[lo*n+k], dist[hi*n+k], size[lo], size[hi])
			dist[lo*n+k], dist[k*n+lo] = v, v
		}
		size[lo] += size[hi]
		active[hi] = false
		node[lo] = step
	}
	t.order = leafOrder(t.merges, n)

	return t, nil
}

// ClusterByName parses name with ParseLinkage and calls Cluster.
func ClusterByName(d *distance.Dissimilarity, name string) (*Tree, error) {
	linkage, err := ParseLinkage(name)
	if err != nil {
		return nil, err
	}

	return Cluster(d, linkage)
}

// closestPair returns the active slots lo < hi at minimum distance. Scanning
// rows then columns in increasing order and replacing only on a strictly
// smaller value yields the lexicographically smallest pair among ties.
func closestPair(dist []float64, active []bool, n int) (lo, hi int) {
	lo, hi = -1, -1
	var best float64
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !active[j] {
				continue
			}
			if lo < 0 || dist[i*n+j] < best {
				lo, hi, best = i, j, dist[i*n+j]
			}
		}
	}

	return lo, hi
}

// orderChildren applies the child-order convention to two merge codes.
func orderChildren(a, b int) Merge {
	switch {
	case a < 0 && b < 0: // two leaves: lower item index first
		if -a > -b {
			a, b = b, a
		}
	case a > 0 && b > 0: // two clusters: earlier step first
		if a > b {
			a, b = b, a
		}
	case a > 0: // cluster then leaf: leaf first
		a, b = b, a
	}

	return Merge{Left: a, Right: b}
}

// leafOrder expands the root left to right and returns item indices.
func leafOrder(merges []Merge, n int) []int {
	order := make([]int, 0, n)
	if len(merges) == 0 {
		for i := 0; i < n; i++ {
			order = append(order, i)
		}

		return order
	}
	stack := []int{len(merges)}
	for len(stack) > 0 {
		code := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if code < 0 {
			order = append(order, -code-1)
			continue
		}
		m := merges[code-1]
		stack = append(stack, m.Right, m.Left)
	}

	return order
}
