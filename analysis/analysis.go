// SPDX-License-Identifier: MIT

// Package analysis wires the numerical packages into the two lvstat
// pipelines:
//
//	PCA:     clean → observations → standardize → pca.Fit
//	Cluster: clean → group mean → observations → [standardize] → distance
//	         → one tree per linkage → [cut] → tree comparison
//
// Every stage logs one Info record; failures are returned wrapped with the
// stage name and otherwise unchanged, so errors.As still finds the typed
// errors of the lower packages.
package analysis

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/katalvlaran/lvstat/config"
	"github.com/katalvlaran/lvstat/dataset"
	"github.com/katalvlaran/lvstat/distance"
	"github.com/katalvlaran/lvstat/hclust"
	"github.com/katalvlaran/lvstat/pca"
	"github.com/katalvlaran/lvstat/report"
	"github.com/katalvlaran/lvstat/standardize"
	"github.com/katalvlaran/lvstat/tanglegram"
)

// Runner executes the pipelines under one configuration.
type Runner struct {
	Logger *slog.Logger // nil means slog.Default()
	Config config.Config
}

// New returns a Runner; a nil logger falls back to slog.Default().
func New(logger *slog.Logger, cfg config.Config) *Runner {
	return &Runner{Logger: logger, Config: cfg}
}

func (r *Runner) log() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}

	return r.Logger
}

func stageErr(stage string, err error) error {
	return fmt.Errorf("analysis: %s: %w", stage, err)
}

// Load reads a CSV file with the dataset settings. The label and group-by
// columns are always read as categorical, even when their values look numeric.
func (r *Runner) Load(path string) (*dataset.Frame, error) {
	dc := r.Config.Dataset
	var opts []dataset.Option
	if dc.Delimiter != "" {
		d, _ := utf8.DecodeRuneInString(dc.Delimiter)
		opts = append(opts, dataset.WithDelimiter(d))
	}
	if dc.MissingTokens != nil {
		opts = append(opts, dataset.WithMissingTokens(dc.MissingTokens...))
	}
	for _, col := range []string{dc.LabelColumn, dc.GroupBy} {
		if col != "" {
			opts = append(opts, dataset.WithColumnKind(col, dataset.Categorical))
		}
	}

	frame, err := dataset.LoadCSV(path, opts...)
	if err != nil {
		return nil, stageErr("load", err)
	}
	r.log().Info("loaded dataset", "path", path, "rows", frame.Len(), "columns", frame.Schema().Len())

	return frame, nil
}

// clean recodes sentinels and drops excluded columns.
func (r *Runner) clean(frame *dataset.Frame) (*dataset.Frame, error) {
	dc := r.Config.Dataset
	if len(dc.Sentinels) > 0 {
		frame = frame.RecodeSentinels(dc.Sentinels...)
	}
	if len(dc.Exclude) > 0 {
		var err error
		if frame, err = frame.Drop(dc.Exclude...); err != nil {
			return nil, stageErr("clean", err)
		}
	}

	return frame, nil
}

func (r *Runner) dropIncomplete(frame *dataset.Frame) *dataset.Frame {
	if !r.Config.Dataset.DropIncomplete {
		return frame
	}
	before := frame.Len()
	frame = frame.DropIncomplete()
	if dropped := before - frame.Len(); dropped > 0 {
		r.log().Info("dropped incomplete rows", "dropped", dropped, "kept", frame.Len())
	}

	return frame
}

// PCA runs the PCA pipeline on frame.
func (r *Runner) PCA(frame *dataset.Frame) (*report.PCASection, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	frame, err := r.clean(frame)
	if err != nil {
		return nil, err
	}
	frame = r.dropIncomplete(frame)

	obs, err := frame.Observations(r.Config.Dataset.LabelColumn)
	if err != nil {
		return nil, stageErr("observations", err)
	}
	r.log().Info("observations ready", "rows", obs.Rows(), "features", obs.Cols())

	std, err := standardize.Standardize(obs)
	if err != nil {
		return nil, stageErr("standardize", err)
	}
	r.log().Debug("standardized", "means", std.Means, "std_devs", std.StdDevs)

	pc := r.Config.PCA
	solver, err := pca.ParseSolver(pc.Solver)
	if err != nil {
		return nil, stageErr("pca", err)
	}
	res, err := pca.Fit(std.Data,
		pca.WithSolver(solver),
		pca.WithTolerance(pc.Tolerance),
		pca.WithMaxIter(pc.MaxIter),
	)
	if err != nil {
		return nil, stageErr("pca", err)
	}
	pc1 := res.Components[0]
	r.log().Info("pca fitted", "solver", solver, "components", len(res.Components),
		"pc1_proportion", pc1.Proportion)

	section := report.NewPCASection(res, pc.ReportComponents)
	section.Standardized = true

	return section, nil
}

// Cluster runs the clustering pipeline on frame.
func (r *Runner) Cluster(frame *dataset.Frame) (*report.ClusterSection, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	dc, cc := r.Config.Dataset, r.Config.Cluster
	frame, err := r.clean(frame)
	if err != nil {
		return nil, err
	}
	label := dc.LabelColumn
	if dc.GroupBy != "" {
		if frame, err = frame.GroupMean(dc.GroupBy, true); err != nil {
			return nil, stageErr("group", err)
		}
		label = dc.GroupBy
		r.log().Info("grouped rows", "by", dc.GroupBy, "groups", frame.Len())
	}
	frame = r.dropIncomplete(frame)

	obs, err := frame.Observations(label)
	if err != nil {
		return nil, stageErr("observations", err)
	}
	r.log().Info("observations ready", "rows", obs.Rows(), "features", obs.Cols())
	if cc.Standardize {
		std, err := standardize.Standardize(obs)
		if err != nil {
			return nil, stageErr("standardize", err)
		}
		obs = std.Data
	}

	metric, err := distance.ParseMetric(cc.Metric)
	if err != nil {
		return nil, stageErr("distance", err)
	}
	d, err := distance.Compute(obs, metric)
	if err != nil {
		return nil, stageErr("distance", err)
	}

	section := &report.ClusterSection{
		Items:        obs.Rows(),
		Features:     obs.Features(),
		GroupedBy:    dc.GroupBy,
		Metric:       metric.String(),
		Standardized: cc.Standardize,
	}
	trees := make([]*hclust.Tree, 0, len(cc.Linkages))
	for _, name := range cc.Linkages {
		tree, err := hclust.ClusterByName(d, name)
		if err != nil {
			return nil, stageErr("cluster", err)
		}
		trees = append(trees, tree)

		ts := report.NewTree(tree)
		coph, err := tree.CopheneticCorrelation(d)
		if err != nil {
			return nil, stageErr("cluster", err)
		}
		ts.CopheneticCorrelation = report.Defined(coph)
		if cc.Cut > 0 {
			if ts.Clusters, err = tree.Cut(cc.Cut); err != nil {
				return nil, stageErr("cut", err)
			}
		}
		section.Trees = append(section.Trees, ts)
		r.log().Info("tree built", "linkage", tree.Linkage(), "merges", tree.Len()-1,
			"root_height", ts.Heights[len(ts.Heights)-1], "cophenetic_correlation", coph)
	}

	if len(trees) >= 2 {
		if section.Comparison, err = r.compare(trees[0], trees[1]); err != nil {
			return nil, stageErr("compare", err)
		}
	}

	return section, nil
}

// compare measures and reduces the entanglement of two trees.
func (r *Runner) compare(a, b *hclust.Tree) (*report.Comparison, error) {
	cc := r.Config.Cluster
	power := tanglegram.WithPower(cc.EntanglementPower)

	before, err := tanglegram.Entanglement(a, b, power)
	if err != nil {
		return nil, err
	}
	after := before
	switch cc.Untangle {
	case config.UntangleOneSided:
		b, after, err = tanglegram.Untangle(a, b, power)
	case config.UntangleTwoSided:
		a, b, after, err = tanglegram.UntangleBoth(a, b, power)
	}
	if err != nil {
		return nil, err
	}
	coph, err := tanglegram.CopheneticCorrelation(a, b)
	if err != nil {
		return nil, err
	}
	r.log().Info("trees compared", "left", a.Linkage(), "right", b.Linkage(),
		"entanglement_before", before, "entanglement_after", after, "untangle", cc.Untangle)

	return &report.Comparison{
		Left:                  a.Linkage().String(),
		Right:                 b.Linkage().String(),
		Untangle:              cc.Untangle,
		Power:                 cc.EntanglementPower,
		EntanglementBefore:    before,
		EntanglementAfter:     after,
		LeftOrder:             a.OrderLabels(),
		RightOrder:            b.OrderLabels(),
		CopheneticCorrelation: report.Defined(coph),
	}, nil
}
