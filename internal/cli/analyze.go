// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstat/report"
)

func newPCACommand(a *app) *cobra.Command {
	var (
		solver     string
		label      string
		components int
	)
	cmd := &cobra.Command{
		Use:   "pca <csv>",
		Short: "Principal component analysis of the numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("solver") {
				a.cfg.PCA.Solver = solver
			}
			if f.Changed("label") {
				a.cfg.Dataset.LabelColumn = label
			}
			if f.Changed("components") {
				a.cfg.PCA.ReportComponents = components
			}

			r := a.runner()
			frame, err := r.Load(args[0])
			if err != nil {
				return err
			}
			section, err := r.PCA(frame)
			if err != nil {
				return err
			}
			rep := report.New(args[0])
			rep.PCA = section

			return a.write(cmd, rep)
		},
	}
	cmd.Flags().StringVar(&solver, "solver", "", "decomposition: jacobi or svd")
	cmd.Flags().StringVar(&label, "label", "", "categorical column used as observation labels")
	cmd.Flags().IntVar(&components, "components", 0, "components kept in loading and score tables (0 = all)")

	return cmd
}

func newClusterCommand(a *app) *cobra.Command {
	var (
		label    string
		groupBy  string
		linkages []string
		metric   string
		cut      int
		untangle string
	)
	cmd := &cobra.Command{
		Use:   "cluster <csv>",
		Short: "Hierarchical clustering with tree comparison",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			cc := &a.cfg.Cluster
			if f.Changed("label") {
				a.cfg.Dataset.LabelColumn = label
			}
			if f.Changed("group-by") {
				a.cfg.Dataset.GroupBy = groupBy
			}
			if f.Changed("linkage") {
				cc.Linkages = linkages
			}
			if f.Changed("metric") {
				cc.Metric = metric
			}
			if f.Changed("cut") {
				cc.Cut = cut
			}
			if f.Changed("untangle") {
				cc.Untangle = untangle
			}

			r := a.runner()
			frame, err := r.Load(args[0])
			if err != nil {
				return err
			}
			section, err := r.Cluster(frame)
			if err != nil {
				return err
			}
			rep := report.New(args[0])
			rep.Cluster = section

			return a.write(cmd, rep)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "categorical column used as item labels")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "average rows sharing this categorical column before clustering")
	cmd.Flags().StringSliceVar(&linkages, "linkage", nil, "linkage criteria: complete, single, average (repeatable)")
	cmd.Flags().StringVar(&metric, "metric", "", "distance: euclidean, manhattan or maximum")
	cmd.Flags().IntVar(&cut, "cut", 0, "report cluster ids for this many clusters (0 = off)")
	cmd.Flags().StringVar(&untangle, "untangle", "", "tree comparison: none, step1side or step2side")

	return cmd
}
