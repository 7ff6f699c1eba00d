// SPDX-License-Identifier: MIT

// Package dataset loads tabular data, cleans it, and turns it into the
// finite, rectangular Observations consumed by the numerical packages.
//
// A Frame carries an explicit Schema: every column is either Numeric or
// Categorical, decided once at load time (inferred or overridden) and
// checked again whenever a column is used.
package dataset

import (
	"fmt"
	"strings"
)

// Kind is the type of a column.
type Kind int

const (
	// Numeric columns hold float64 values; missing cells are NaN.
	Numeric Kind = iota
	// Categorical columns hold raw strings.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind accepts "numeric" or "categorical" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric":
		return Numeric, nil
	case "categorical":
		return Categorical, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Field is a named, typed column.
type Field struct {
	Name string
	Kind Kind
}

// Schema is an ordered, immutable set of fields with unique names.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates names (non-empty, unique) and builds the lookup index.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if strings.TrimSpace(f.Name) == "" {
			return nil, fmt.Errorf("column %d: %w", i, ErrEmptyName)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, f.Name)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}

	return s, nil
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// Field returns the i-th field.
func (s *Schema) Field(i int) Field { return s.fields[i] }

// Fields returns a copy of all fields in order.
func (s *Schema) Fields() []Field { return append([]Field(nil), s.fields...) }

// Lookup returns the field with the given name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i], true
}

// Names returns all field names in order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}

	return out
}

// NumericNames returns the names of the numeric fields in order.
func (s *Schema) NumericNames() []string {
	var out []string
	for _, f := range s.fields {
		if f.Kind == Numeric {
			out = append(out, f.Name)
		}
	}

	return out
}

// require resolves name to its index and checks its kind.
func (s *Schema) require(name string, kind Kind) (int, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	if s.fields[i].Kind != kind {
		return 0, fmt.Errorf("%w: %q is %s, want %s", ErrKindMismatch, name, s.fields[i].Kind, kind)
	}

	return i, nil
}
