// SPDX-License-Identifier: MIT

// Package cli is the lvstat command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvstat/analysis"
	"github.com/katalvlaran/lvstat/config"
	"github.com/katalvlaran/lvstat/internal/logging"
	"github.com/katalvlaran/lvstat/report"
)

// app carries flag values and the loaded configuration between commands.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string
	output    string
	format    string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the lvstat command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lvstat",
		Short:         "Exploratory PCA and hierarchical clustering of tabular data",
		Long:          `lvstat reads a CSV table, cleans it and runs either a principal component analysis or an agglomerative hierarchical clustering, writing the results as a YAML or JSON report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.lvstat/config.yaml)")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	f.StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides config)")
	f.StringVarP(&a.output, "output", "o", "", "report file (default stdout)")
	f.StringVar(&a.format, "format", "", "report format: yaml or json (overrides config)")

	root.AddCommand(newPCACommand(a), newClusterCommand(a), newConfigCommand(a))

	return root
}

// Execute runs the command line and exits with status 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvstat:", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies persistent flag overrides and
// builds the logger on the command's stderr.
func (a *app) setup(cmd *cobra.Command) error {
	c, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("log-level") {
		c.Log.Level = a.logLevel
	}
	if f.Changed("log-format") {
		c.Log.Format = a.logFormat
	}
	if f.Changed("output") {
		c.Output.Path = a.output
	}
	if f.Changed("format") {
		c.Output.Format = a.format
	}
	a.cfg = c

	a.logger, err = logging.New(cmd.ErrOrStderr(), c.Log.Level, c.Log.Format)

	return err
}

func (a *app) runner() *analysis.Runner { return analysis.New(a.logger, *a.cfg) }

// write encodes rep to the configured output.
func (a *app) write(cmd *cobra.Command, rep *report.Report) (err error) {
	format, err := report.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if path := a.cfg.Output.Path; path != "" {
		file, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create report: %w", ferr)
		}
		defer func() {
			if cerr := file.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close report: %w", cerr)
			}
		}()
		w = file
	}
	if err := rep.Write(w, format); err != nil {
		return err
	}
	a.logger.Info("report written", "run_id", rep.RunID, "format", format, "path", a.cfg.Output.Path)

	return nil
}
