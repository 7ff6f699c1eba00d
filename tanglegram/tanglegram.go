// SPDX-License-Identifier: MIT

// Package tanglegram compares two dendrograms over the same labels.
//
// Entanglement measures how badly the leaf orders of two trees disagree when
// drawn facing each other: 0 means the orders are identical, 1 means one is
// the reverse of the other. Untangle searches for child rotations that lower
// it. The search is greedy and best-effort: it never makes things worse but
// need not find the global minimum.
package tanglegram

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/lvstat/hclust"
)

// scorer evaluates entanglement against a fixed reference order.
type scorer struct {
	pos   map[string]int // label -> leaf position in the reference tree
	power float64
	worst float64 // the sum for a fully reversed order
}

func newScorer(ref *hclust.Tree, power float64) *scorer {
	order := ref.OrderLabels()
	s := &scorer{pos: make(map[string]int, len(order)), power: power}
	n := len(order)
	for k, label := range order {
		s.pos[label] = k
		s.worst += math.Pow(math.Abs(float64(n-1-2*k)), power)
	}

	return s
}

func (s *scorer) score(t *hclust.Tree) float64 {
	if s.worst == 0 {
		return 0
	}
	var sum float64
	for k, label := range t.OrderLabels() {
		sum += math.Pow(math.Abs(float64(s.pos[label]-k)), s.power)
	}

	return sum / s.worst
}

// Entanglement returns the normalized entanglement of a and b in [0, 1].
//
// Errors: *LeafSetMismatchError, ErrDuplicateLabel.
func Entanglement(a, b *hclust.Tree, opts ...Option) (float64, error) {
	o := gatherOptions(opts...)
	if err := checkLeafSets(a, b); err != nil {
		return 0, err
	}

	return newScorer(a, o.power).score(b), nil
}

// Untangle rotates merges of free to reduce its entanglement with fixed and
// returns the improved tree with its entanglement. Each pass visits the
// merges from the root down (the merge undone when going from k-1 to k
// clusters, k = 2..n) and keeps a rotation only when entanglement strictly
// decreases. Passes repeat until one makes no progress or the pass limit is
// reached. The input trees are not modified.
func Untangle(fixed, free *hclust.Tree, opts ...Option) (*hclust.Tree, float64, error) {
	o := gatherOptions(opts...)
	if err := checkLeafSets(fixed, free); err != nil {
		return nil, 0, err
	}
	best, score := untangle(newScorer(fixed, o.power), free, o.maxPasses)

	return best, score, nil
}

func untangle(s *scorer, free *hclust.Tree, maxPasses int) (*hclust.Tree, float64) {
	cur := free.Clone()
	score := s.score(cur)
	for pass := 0; pass < maxPasses && score > 0; pass++ {
		improved := false
		for step := cur.Len() - 1; step >= 1; step-- {
			rot, _ := cur.Rotate(step) // step is in range
			if e := s.score(rot); e < score {
				cur, score, improved = rot, e, true
			}
		}
		if !improved {
			break
		}
	}

	return cur, score
}

// UntangleBoth alternates one-sided untangling: a against b, then b against
// the new a, until a round brings no improvement or the pass limit is
// reached. Entanglement is symmetric in its arguments, so either tree may
// serve as the reference.
func UntangleBoth(a, b *hclust.Tree, opts ...Option) (*hclust.Tree, *hclust.Tree, float64, error) {
	o := gatherOptions(opts...)
	if err := checkLeafSets(a, b); err != nil {
		return nil, nil, 0, err
	}

	score := newScorer(a, o.power).score(b)
	for round := 0; round < o.maxPasses && score > 0; round++ {
		na, _ := untangle(newScorer(b, o.power), a, o.maxPasses)
		nb, e := untangle(newScorer(na, o.power), b, o.maxPasses)
		if e >= score {
			break
		}
		a, b, score = na, nb, e
	}

	return a.Clone(), b.Clone(), score, nil
}

// CopheneticCorrelation is the Pearson correlation of the cophenetic
// distances of a and b over all label pairs, aligned by label. It is NaN
// when either tree has a single distinct merge height over those pairs.
func CopheneticCorrelation(a, b *hclust.Tree) (float64, error) {
	if err := checkLeafSets(a, b); err != nil {
		return 0, err
	}

	ca, cb := a.Cophenetic(), b.Cophenetic()
	labels := a.Labels()
	idx := make(map[string]int, len(labels))
	for j, label := range b.Labels() {
		idx[label] = j
	}
	n := len(labels)
	x := make([]float64, 0, n*(n-1)/2)
	y := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			x = append(x, ca.At(i, j))
			y = append(y, cb.At(idx[labels[i]], idx[labels[j]]))
		}
	}

	return stat.Correlation(x, y, nil), nil
}

// checkLeafSets requires unique labels within each tree and equal label sets.
func checkLeafSets(a, b *hclust.Tree) error {
	la, lb := a.Labels(), b.Labels()
	sa, err := labelSet(la)
	if err != nil {
		return err
	}
	sb, err := labelSet(lb)
	if err != nil {
		return err
	}

	var missing, extra []string
	for _, l := range la {
		if _, ok := sb[l]; !ok {
			missing = append(missing, l)
		}
	}
	for _, l := range lb {
		if _, ok := sa[l]; !ok {
			extra = append(extra, l)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		slices.Sort(missing)
		slices.Sort(extra)

		return &LeafSetMismatchError{Missing: missing, Extra: extra}
	}

	return nil
}

func labelSet(labels []string) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, dup := set[l]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		set[l] = struct{}{}
	}

	return set, nil
}
