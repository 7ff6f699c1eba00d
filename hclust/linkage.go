// SPDX-License-Identifier: MIT

package hclust

import (
	"fmt"
	"math"
	"strings"
)

// Linkage is the rule that turns item distances into cluster distances.
type Linkage int

const (
	// Complete uses the largest distance between members (furthest neighbour).
	Complete Linkage = iota
	// Single uses the smallest distance between members (nearest neighbour).
	Single
	// Average uses the mean of all member distances (UPGMA).
	Average
)

func (l Linkage) String() string {
	switch l {
	case Complete:
		return "complete"
	case Single:
		return "single"
	case Average:
		return "average"
	default:
		return fmt.Sprintf("Linkage(%d)", int(l))
	}
}

func (l Linkage) valid() bool { return l == Complete || l == Single || l == Average }

// ParseLinkage maps a case-insensitive name to a Linkage.
// Unknown names yield *InvalidCriterionError.
func ParseLinkage(name string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "complete":
		return Complete, nil
	case "single":
		return Single, nil
	case "average":
		return Average, nil
	}

	return 0, &InvalidCriterionError{Criterion: name}
}

// update is the Lance–Williams step: the distance from the union of clusters
// a (size na) and b (size nb) to a third cluster, given its distances da, db.
func (l Linkage) update(da, db float64, na, nb int) float64 {
	switch l {
	case Single:
		return math.Min(da, db)
	case Average:
		avg := (float64(na)*da + float64(nb)*db) / float64(na+nb)
		// keep heights monotone under rounding
		return math.Max(avg, math.Min(da, db))
	default:
		return math.Max(da, db)
	}
}
