// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// DefaultMissingTokens are the cell values read as missing.
var DefaultMissingTokens = []string{"", "NA", "NaN"}

// Option configures ReadCSV.
type Option func(*readOptions)

type readOptions struct {
	delimiter rune
	missing   map[string]struct{}
	kinds     map[string]Kind
}

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(r rune) Option {
	return func(o *readOptions) { o.delimiter = r }
}

// WithMissingTokens replaces the set of tokens read as missing.
// Tokens are compared after trimming surrounding whitespace.
func WithMissingTokens(tokens ...string) Option {
	return func(o *readOptions) {
		o.missing = make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			o.missing[strings.TrimSpace(t)] = struct{}{}
		}
	}
}

// WithColumnKind forces the kind of a column instead of inferring it.
func WithColumnKind(name string, k Kind) Option {
	return func(o *readOptions) { o.kinds[name] = k }
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path string, opts ...Option) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, opts...)
}

// ReadCSV reads a header row followed by records.
//
// Column kinds come from WithColumnKind, otherwise a column is Numeric when
// every non-missing cell parses as a float64, and Categorical otherwise.
// Missing numeric cells become NaN.
func ReadCSV(r io.Reader, opts ...Option) (*Frame, error) {
	o := readOptions{delimiter: ',', kinds: map[string]Kind{}}
	WithMissingTokens(DefaultMissingTokens...)(&o)
	for _, fn := range opts {
		fn(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	for name := range o.kinds {
		if !contains(names, name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
	}

	// cells[j] holds column j top to bottom
	cells := make([][]string, len(names))
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line++
		if len(rec) != len(names) {
			return nil, fmt.Errorf("line %d: %w: got %d, want %d", line, ErrRaggedRow, len(rec), len(names))
		}
		for j, v := range rec {
			cells[j] = append(cells[j], strings.TrimSpace(v))
		}
	}

	fields := make([]Field, len(names))
	num := make([][]float64, len(names))
	cat := make([][]string, len(names))
	for j, name := range names {
		kind, forced := o.kinds[name]
		values, perr := parseNumeric(cells[j], o.missing)
		switch {
		case !forced && perr == nil:
			kind = Numeric
		case !forced:
			kind = Categorical
		case kind == Numeric && perr != nil:
			return nil, fmt.Errorf("column %q: %w", name, perr)
		}
		fields[j] = Field{Name: name, Kind: kind}
		if kind == Numeric {
			num[j] = values
		} else {
			cat[j] = cells[j]
		}
	}

	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	return &Frame{schema: schema, rows: line - 1, num: num, cat: cat}, nil
}

// parseNumeric converts a column of cells, mapping missing tokens to NaN.
func parseNumeric(col []string, missing map[string]struct{}) ([]float64, error) {
	out := make([]float64, len(col))
	for i, s := range col {
		if _, ok := missing[s]; ok {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q is not a number", i+2, ErrKindMismatch, s)
		}
		out[i] = v
	}

	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
