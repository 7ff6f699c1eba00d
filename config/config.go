// SPDX-License-Identifier: MIT

// Package config loads lvstat settings from defaults, an optional YAML file
// and LVSTAT_* environment variables, in increasing order of precedence.
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides: LVSTAT_PCA_SOLVER=svd.
const EnvPrefix = "LVSTAT"

// Untangle modes for ClusterConfig.Untangle.
const (
	UntangleNone     = "none"
	UntangleOneSided = "step1side"
	UntangleTwoSided = "step2side"
)

// Config is the complete application configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Dataset DatasetConfig `mapstructure:"dataset" yaml:"dataset"`
	PCA     PCAConfig     `mapstructure:"pca" yaml:"pca"`
	Cluster ClusterConfig `mapstructure:"cluster" yaml:"cluster"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DatasetConfig describes how to read and clean the input table.
type DatasetConfig struct {
	Delimiter      string    `mapstructure:"delimiter" yaml:"delimiter"`
	MissingTokens  []string  `mapstructure:"missing_tokens" yaml:"missing_tokens"`
	Sentinels      []float64 `mapstructure:"sentinels" yaml:"sentinels"`
	LabelColumn    string    `mapstructure:"label_column" yaml:"label_column"`
	GroupBy        string    `mapstructure:"group_by" yaml:"group_by"`
	Exclude        []string  `mapstructure:"exclude" yaml:"exclude"`
	DropIncomplete bool      `mapstructure:"drop_incomplete" yaml:"drop_incomplete"`
}

// PCAConfig tunes the PCA pipeline.
type PCAConfig struct {
	Solver           string  `mapstructure:"solver" yaml:"solver"`
	Tolerance        float64 `mapstructure:"tolerance" yaml:"tolerance"`
	MaxIter          int     `mapstructure:"max_iter" yaml:"max_iter"`
	ReportComponents int     `mapstructure:"report_components" yaml:"report_components"`
}

// ClusterConfig tunes the clustering pipeline.
type ClusterConfig struct {
	Metric            string   `mapstructure:"metric" yaml:"metric"`
	Standardize       bool     `mapstructure:"standardize" yaml:"standardize"`
	Linkages          []string `mapstructure:"linkages" yaml:"linkages"`
	Cut               int      `mapstructure:"cut" yaml:"cut"`
	EntanglementPower float64  `mapstructure:"entanglement_power" yaml:"entanglement_power"`
	Untangle          string   `mapstructure:"untangle" yaml:"untangle"`
}

// OutputConfig selects where and how the report is written. An empty Path means stdout.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Dataset: DatasetConfig{
			Delimiter:      ",",
			MissingTokens:  []string{"", "NA", "NaN"},
			Sentinels:      []float64{-999},
			Exclude:        []string{},
			DropIncomplete: true,
		},
		PCA: PCAConfig{Solver: "jacobi", Tolerance: 1e-12, MaxIter: 10000, ReportComponents: 2},
		Cluster: ClusterConfig{
			Metric:            "euclidean",
			Standardize:       true,
			Linkages:          []string{"complete", "single"},
			EntanglementPower: 1.5,
			Untangle:          UntangleOneSided,
		},
		Output: OutputConfig{Format: "yaml"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("dataset.delimiter", d.Dataset.Delimiter)
	v.SetDefault("dataset.missing_tokens", d.Dataset.MissingTokens)
	v.SetDefault("dataset.sentinels", d.Dataset.Sentinels)
	v.SetDefault("dataset.label_column", d.Dataset.LabelColumn)
	v.SetDefault("dataset.group_by", d.Dataset.GroupBy)
	v.SetDefault("dataset.exclude", d.Dataset.Exclude)
	v.SetDefault("dataset.drop_incomplete", d.Dataset.DropIncomplete)
	v.SetDefault("pca.solver", d.PCA.Solver)
	v.SetDefault("pca.tolerance", d.PCA.Tolerance)
	v.SetDefault("pca.max_iter", d.PCA.MaxIter)
	v.SetDefault("pca.report_components", d.PCA.ReportComponents)
	v.SetDefault("cluster.metric", d.Cluster.Metric)
	v.SetDefault("cluster.standardize", d.Cluster.Standardize)
	v.SetDefault("cluster.linkages", d.Cluster.Linkages)
	v.SetDefault("cluster.cut", d.Cluster.Cut)
	v.SetDefault("cluster.entanglement_power", d.Cluster.EntanglementPower)
	v.SetDefault("cluster.untangle", d.Cluster.Untangle)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.path", d.Output.Path)
}

// DefaultPath is ~/.lvstat/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	return filepath.Join(home, ".lvstat", "config.yaml"), nil
}

// Load reads the configuration. An explicit path must exist; with an empty
// path ~/.lvstat/config.yaml is read when present. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".lvstat"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Save writes c as YAML to path, or to DefaultPath when path is empty,
// creating the directory if needed.
func Save(c *Config, path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
