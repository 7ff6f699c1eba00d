// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a CSV source has no header row.
	ErrEmptyInput = errors.New("dataset: empty input")

	// ErrEmptyName is returned for a blank column name.
	ErrEmptyName = errors.New("dataset: empty column name")

	// ErrDuplicateName is returned when two columns (or features) share a name.
	ErrDuplicateName = errors.New("dataset: duplicate column name")

	// ErrRaggedRow is returned when a CSV record has a different field count than the header.
	ErrRaggedRow = errors.New("dataset: record has wrong number of fields")

	// ErrRagged is returned when observation rows differ in length.
	ErrRagged = errors.New("dataset: ragged observation rows")

	// ErrUnknownColumn is returned when a referenced column is not in the schema.
	ErrUnknownColumn = errors.New("dataset: unknown column")

	// ErrUnknownKind is returned by ParseKind for an unrecognized kind name.
	ErrUnknownKind = errors.New("dataset: unknown column kind")

	// ErrKindMismatch is returned when a column is used as the wrong kind
	// (e.g. a categorical column selected as a feature, or a numeric cell that does not parse).
	ErrKindMismatch = errors.New("dataset: column kind mismatch")

	// ErrMissingValue is returned when a missing (NaN) value reaches an observation matrix.
	ErrMissingValue = errors.New("dataset: missing value")

	// ErrLabelMismatch is returned when the label count does not match the row count.
	ErrLabelMismatch = errors.New("dataset: label count does not match rows")

	// ErrNoFeatures is returned when an observation matrix would have no columns.
	ErrNoFeatures = errors.New("dataset: no feature columns")

	// ErrInsufficientData is the sentinel behind InsufficientDataError.
	ErrInsufficientData = errors.New("dataset: insufficient data")
)

// InsufficientDataError reports that an operation received fewer observations
// than it needs (PCA and clustering need at least two).
type InsufficientDataError struct {
	Op   string // operation that rejected the input
	Rows int    // observations received
	Min  int    // observations required
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("dataset: %s needs at least %d observations, got %d", e.Op, e.Min, e.Rows)
}

// Unwrap lets errors.Is(err, ErrInsufficientData) match.
func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// RequireRows returns an *InsufficientDataError when rows < min, nil otherwise.
func RequireRows(op string, rows, min int) error {
	if rows < min {
		return &InsufficientDataError{Op: op, Rows: rows, Min: min}
	}

	return nil
}
