// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
)

// Frame is an immutable, column-major table with a Schema.
// Cleaning methods return new frames and never modify the receiver.
type Frame struct {
	schema *Schema
	rows   int
	num    [][]float64 // per field; nil for categorical fields
	cat    [][]string  // per field; nil for numeric fields
}

// Len returns the number of rows.
func (f *Frame) Len() int { return f.rows }

// Schema returns the frame's schema.
func (f *Frame) Schema() *Schema { return f.schema }

// Numeric returns a copy of a numeric column.
func (f *Frame) Numeric(name string) ([]float64, error) {
	j, err := f.schema.require(name, Numeric)
	if err != nil {
		return nil, err
	}

	return append([]float64(nil), f.num[j]...), nil
}

// Categorical returns a copy of a categorical column.
func (f *Frame) Categorical(name string) ([]string, error) {
	j, err := f.schema.require(name, Categorical)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), f.cat[j]...), nil
}

// RecodeSentinels replaces numeric cells exactly equal to any of values with NaN
// (e.g. a -999 "not measured" code).
func (f *Frame) RecodeSentinels(values ...float64) *Frame {
	out := f.shallow()
	for j, col := range f.num {
		if col == nil {
			continue
		}
		recoded := make([]float64, len(col))
		for i, v := range col {
			recoded[i] = v
			for _, s := range values {
				if v == s {
					recoded[i] = math.NaN()
					break
				}
			}
		}
		out.num[j] = recoded
	}

	return out
}

// Select keeps only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		i, ok := f.schema.index[name]
		if !ok {
			return nil, fmt.Errorf("select: %w: %q", ErrUnknownColumn, name)
		}
		idx[k] = i
	}

	return f.project(idx)
}

// Drop removes the named columns. Every name must exist.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	skip := make(map[int]bool, len(names))
	for _, name := range names {
		i, ok := f.schema.index[name]
		if !ok {
			return nil, fmt.Errorf("drop: %w: %q", ErrUnknownColumn, name)
		}
		skip[i] = true
	}
	var idx []int
	for i := range f.schema.fields {
		if !skip[i] {
			idx = append(idx, i)
		}
	}

	return f.project(idx)
}

// FilterCategorical keeps rows whose value in column is one of keep.
func (f *Frame) FilterCategorical(column string, keep ...string) (*Frame, error) {
	j, err := f.schema.require(column, Categorical)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	allowed := make(map[string]bool, len(keep))
	for _, k := range keep {
		allowed[k] = true
	}
	var rows []int
	for i, v := range f.cat[j] {
		if allowed[v] {
			rows = append(rows, i)
		}
	}

	return f.subset(rows), nil
}

// DropIncomplete removes rows that have a NaN in any numeric column.
func (f *Frame) DropIncomplete() *Frame {
	var rows []int
	for i := 0; i < f.rows; i++ {
		complete := true
		for _, col := range f.num {
			if col != nil && math.IsNaN(col[i]) {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, i)
		}
	}

	return f.subset(rows)
}

// GroupMean aggregates rows sharing the same value of the categorical column by,
// averaging every numeric column. Groups appear in first-appearance order and
// other categorical columns are dropped.
//
// With skipMissing, NaN cells are ignored (a group with no values yields NaN);
// otherwise any NaN makes the group mean NaN.
func (f *Frame) GroupMean(by string, skipMissing bool) (*Frame, error) {
	key, err := f.schema.require(by, Categorical)
	if err != nil {
		return nil, fmt.Errorf("group: %w", err)
	}

	var order []string
	members := map[string][]int{}
	for i, v := range f.cat[key] {
		if _, seen := members[v]; !seen {
			order = append(order, v)
		}
		members[v] = append(members[v], i)
	}

	fields := []Field{{Name: by, Kind: Categorical}}
	num := [][]float64{nil}
	cat := [][]string{order}
	for j, fd := range f.schema.fields {
		if fd.Kind != Numeric {
			continue
		}
		means := make([]float64, len(order))
		for g, k := range order {
			means[g] = groupMean(f.num[j], members[k], skipMissing)
		}
		fields = append(fields, fd)
		num = append(num, means)
		cat = append(cat, nil)
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	return &Frame{schema: schema, rows: len(order), num: num, cat: cat}, nil
}

func groupMean(col []float64, rows []int, skipMissing bool) float64 {
	var sum float64
	var n int
	for _, i := range rows {
		v := col[i]
		if math.IsNaN(v) && skipMissing {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}

// Observations builds the numeric observation matrix from the frame.
//
// labelColumn names a categorical column used as row labels; empty means
// labels "1".."n". features lists numeric columns; empty means every numeric
// column in schema order. Any NaN in the selected features is an error, so
// call DropIncomplete first when missing values are expected.
func (f *Frame) Observations(labelColumn string, features ...string) (*Observations, error) {
	var labels []string
	if labelColumn != "" {
		j, err := f.schema.require(labelColumn, Categorical)
		if err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
		labels = f.cat[j]
	}
	if len(features) == 0 {
		features = f.schema.NumericNames()
	}

	cols := make([]int, len(features))
	for k, name := range features {
		j, err := f.schema.require(name, Numeric)
		if err != nil {
			return nil, fmt.Errorf("features: %w", err)
		}
		cols[k] = j
	}

	rows := make([][]float64, f.rows)
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for k, j := range cols {
			rows[i][k] = f.num[j][i]
		}
	}

	return NewObservations(labels, features, rows)
}

// shallow copies the frame header; column slices are shared until replaced.
func (f *Frame) shallow() *Frame {
	return &Frame{
		schema: f.schema,
		rows:   f.rows,
		num:    append([][]float64(nil), f.num...),
		cat:    append([][]string(nil), f.cat...),
	}
}

// project keeps the given field indices, in order.
func (f *Frame) project(idx []int) (*Frame, error) {
	fields := make([]Field, len(idx))
	num := make([][]float64, len(idx))
	cat := make([][]string, len(idx))
	for k, i := range idx {
		fields[k] = f.schema.fields[i]
		num[k] = f.num[i]
		cat[k] = f.cat[i]
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	return &Frame{schema: schema, rows: f.rows, num: num, cat: cat}, nil
}

// subset keeps the given row indices, in order.
func (f *Frame) subset(rows []int) *Frame {
	out := &Frame{
		schema: f.schema,
		rows:   len(rows),
		num:    make([][]float64, len(f.num)),
		cat:    make([][]string, len(f.cat)),
	}
	for j := range f.schema.fields {
		if f.num[j] != nil {
			col := make([]float64, len(rows))
			for k, i := range rows {
				col[k] = f.num[j][i]
			}
			out.num[j] = col
		}
		if f.cat[j] != nil {
			col := make([]string, len(rows))
			for k, i := range rows {
				col[k] = f.cat[j][i]
			}
			out.cat[j] = col
		}
	}

	return out
}
