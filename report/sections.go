// SPDX-License-Identifier: MIT

package report

import (
	"github.com/katalvlaran/lvstat/hclust"
	"github.com/katalvlaran/lvstat/pca"
)

// Importance is one row of the PCA importance table.
type Importance struct {
	Component  string  `yaml:"component" json:"component"`
	Eigenvalue float64 `yaml:"eigenvalue" json:"eigenvalue"`
	StdDev     float64 `yaml:"std_dev" json:"std_dev"`
	Proportion float64 `yaml:"proportion" json:"proportion"`
	Cumulative float64 `yaml:"cumulative" json:"cumulative"`
}

// PCASection is the output of the PCA pipeline.
type PCASection struct {
	Rows         int          `yaml:"rows" json:"rows"`
	Features     []string     `yaml:"features,flow" json:"features"`
	Solver       string       `yaml:"solver" json:"solver"`
	Standardized bool         `yaml:"standardized" json:"standardized"`
	Importance   []Importance `yaml:"importance" json:"importance"`
	Components   []string     `yaml:"components,flow" json:"components"` // names of the columns below
	Loadings     []Vector     `yaml:"loadings" json:"loadings"`          // one per feature
	Scores       []Vector     `yaml:"scores" json:"scores"`              // one per observation
}

// NewPCASection converts res, keeping the first k components in the
// loading and score tables (all of them when k ≤ 0 or k > p). The importance
// table always lists every component.
func NewPCASection(res *pca.Result, k int) *PCASection {
	p := len(res.Components)
	if k <= 0 || k > p {
		k = p
	}

	s := &PCASection{
		Rows:     len(res.Labels),
		Features: res.Features,
		Solver:   res.Solver.String(),
	}
	for _, c := range res.Components {
		s.Importance = append(s.Importance, Importance{
			Component:  c.Name(),
			Eigenvalue: c.Eigenvalue,
			StdDev:     c.StdDev,
			Proportion: c.Proportion,
			Cumulative: c.Cumulative,
		})
	}
	for _, c := range res.Components[:k] {
		s.Components = append(s.Components, c.Name())
	}
	for j, f := range res.Features {
		v := Vector{Name: f, Values: make([]float64, k)}
		for c := 0; c < k; c++ {
			v.Values[c] = res.Components[c].Loadings[j]
		}
		s.Loadings = append(s.Loadings, v)
	}
	for i, label := range res.Labels {
		v := Vector{Name: label, Values: make([]float64, k)}
		for c := 0; c < k; c++ {
			v.Values[c], _ = res.Scores.At(i, c)
		}
		s.Scores = append(s.Scores, v)
	}

	return s
}

// ClusterSection is the output of the clustering pipeline.
type ClusterSection struct {
	Items        int         `yaml:"items" json:"items"`
	Features     []string    `yaml:"features,flow" json:"features"`
	GroupedBy    string      `yaml:"grouped_by,omitempty" json:"grouped_by,omitempty"`
	Metric       string      `yaml:"metric" json:"metric"`
	Standardized bool        `yaml:"standardized" json:"standardized"`
	Trees        []Tree      `yaml:"trees" json:"trees"`
	Comparison   *Comparison `yaml:"comparison,omitempty" json:"comparison,omitempty"`
}

// Tree is one dendrogram. Merges use the leaf -(i+1) / step s encoding.
type Tree struct {
	Linkage               string    `yaml:"linkage" json:"linkage"`
	Labels                []string  `yaml:"labels,flow" json:"labels"`
	Merges                [][2]int  `yaml:"merges,flow" json:"merges"`
	Heights               []float64 `yaml:"heights,flow" json:"heights"`
	Order                 []string  `yaml:"order,flow" json:"order"`
	CopheneticCorrelation *float64  `yaml:"cophenetic_correlation,omitempty" json:"cophenetic_correlation,omitempty"`
	Clusters              []int     `yaml:"clusters,flow,omitempty" json:"clusters,omitempty"`
}

// NewTree converts t. Cophenetic correlation and cluster ids are filled in by the caller.
func NewTree(t *hclust.Tree) Tree {
	out := Tree{
		Linkage: t.Linkage().String(),
		Labels:  t.Labels(),
		Heights: t.Heights(),
		Order:   t.OrderLabels(),
	}
	for _, m := range t.Merges() {
		out.Merges = append(out.Merges, [2]int{m.Left, m.Right})
	}

	return out
}

// Comparison relates the first two trees of a ClusterSection.
type Comparison struct {
	Left                  string   `yaml:"left" json:"left"`
	Right                 string   `yaml:"right" json:"right"`
	Untangle              string   `yaml:"untangle" json:"untangle"`
	Power                 float64  `yaml:"power" json:"power"`
	EntanglementBefore    float64  `yaml:"entanglement_before" json:"entanglement_before"`
	EntanglementAfter     float64  `yaml:"entanglement_after" json:"entanglement_after"`
	LeftOrder             []string `yaml:"left_order,flow" json:"left_order"`
	RightOrder            []string `yaml:"right_order,flow" json:"right_order"`
	CopheneticCorrelation *float64 `yaml:"cophenetic_correlation,omitempty" json:"cophenetic_correlation,omitempty"`
}
