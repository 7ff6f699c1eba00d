// SPDX-License-Identifier: MIT
package hclust_test

import (
	"fmt"

	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/distance"
	"github.com/katalvlaran/lvstat/hclust"
)

// ExampleCluster groups two well separated pairs of points.
func ExampleCluster() {
	obs, _ := dataset.NewObservations(
		[]string{"a", "b", "c", "d"},
		[]string{"x", "y"},
		[][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 6}},
	)
	d, _ := distance.Compute(obs, distance.Euclidean)
	tree, _ := hclust.Cluster(d, hclust.Complete)

	for s, m := range tree.Merges() {
		fmt.Printf("step %d: %d %d at %.2f\n", s+1, m.Left, m.Right, tree.Heights()[s])
	}
	ids, _ := tree.Cut(2)
	fmt.Println(tree.OrderLabels(), ids)
	// Output:
	// step 1: -1 -2 at 1.00
	// step 2: -3 -4 at 1.00
	// step 3: 1 2 at 7.81
	// [a b c d] [0 0 1 1]
}
