// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/katalvlaran/lvstat/distance"
	"github.com/katalvlaran/lvstat/hclust"
	"github.com/katalvlaran/lvstat/internal/logging"
	"github.com/katalvlaran/lvstat/pca"
	"github.com/katalvlaran/lvstat/report"
	"github.com/katalvlaran/lvstat/tanglegram"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid value")

func invalid(key string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
}

// Validate checks every enumerated and numeric setting. Errors name the
// offending key and wrap ErrInvalidConfig together with the parser's error.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return invalid("log.format", fmt.Errorf("%w: %q", logging.ErrUnknownFormat, c.Log.Format))
	}
	if utf8.RuneCountInString(c.Dataset.Delimiter) != 1 {
		return invalid("dataset.delimiter", fmt.Errorf("want a single character, got %q", c.Dataset.Delimiter))
	}

	if _, err := pca.ParseSolver(c.PCA.Solver); err != nil {
		return invalid("pca.solver", err)
	}
	if !positiveFinite(c.PCA.Tolerance) {
		return invalid("pca.tolerance", fmt.Errorf("must be finite and > 0, got %g", c.PCA.Tolerance))
	}
	if c.PCA.MaxIter < 1 {
		return invalid("pca.max_iter", fmt.Errorf("must be ≥ 1, got %d", c.PCA.MaxIter))
	}
	if c.PCA.ReportComponents < 0 {
		return invalid("pca.report_components", fmt.Errorf("must be ≥ 0, got %d", c.PCA.ReportComponents))
	}

	if _, err := distance.ParseMetric(c.Cluster.Metric); err != nil {
		return invalid("cluster.metric", err)
	}
	if len(c.Cluster.Linkages) == 0 {
		return invalid("cluster.linkages", errors.New("at least one linkage is required"))
	}
	for _, name := range c.Cluster.Linkages {
		if _, err := hclust.ParseLinkage(name); err != nil {
			return invalid("cluster.linkages", err)
		}
	}
	if c.Cluster.Cut < 0 {
		return invalid("cluster.cut", fmt.Errorf("must be ≥ 0, got %d", c.Cluster.Cut))
	}
	if !tanglegram.ValidPower(c.Cluster.EntanglementPower) {
		return invalid("cluster.entanglement_power", fmt.Errorf("must be finite and ≥ %g, got %g", tanglegram.MinPower, c.Cluster.EntanglementPower))
	}
	switch c.Cluster.Untangle {
	case UntangleNone, UntangleOneSided, UntangleTwoSided:
	default:
		return invalid("cluster.untangle", fmt.Errorf("want none, step1side or step2side, got %q", c.Cluster.Untangle))
	}

	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return invalid("output.format", err)
	}

	return nil
}

func positiveFinite(x float64) bool { return x > 0 && !math.IsInf(x, 1) }
