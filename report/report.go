// SPDX-License-Identifier: MIT

// Package report holds the serializable results of an lvstat run.
//
// Sections carry plain slices so that the YAML and JSON encodings are stable
// and readable without this package. Values that may be undefined, such as
// a correlation over constant distances, are pointers and omitted when nil.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the encoding of Write.
type Format int

const (
	// FormatYAML encodes with gopkg.in/yaml.v3.
	FormatYAML Format = iota
	// FormatJSON encodes indented JSON.
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}

	return "yaml"
}

// ParseFormat accepts yaml, yml or json (case-insensitive).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Report is the top-level document.
type Report struct {
	RunID     string          `yaml:"run_id" json:"run_id"`
	CreatedAt time.Time       `yaml:"created_at" json:"created_at"`
	Source    string          `yaml:"source" json:"source"`
	PCA       *PCASection     `yaml:"pca,omitempty" json:"pca,omitempty"`
	Cluster   *ClusterSection `yaml:"cluster,omitempty" json:"cluster,omitempty"`
}

// New starts a report for source with a fresh run id.
func New(source string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Source:    source,
	}
}

// Write encodes r to w.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
	}

	return nil
}

// Vector is a named row of numbers: a feature's loadings or an observation's scores.
type Vector struct {
	Name   string    `yaml:"name" json:"name"`
	Values []float64 `yaml:"values,flow" json:"values"`
}

// Defined returns &x, or nil when x is NaN or infinite.
func Defined(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}

	return &x
}
