// SPDX-License-Identifier: MIT

package tanglegram

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLeafSetMismatch is the sentinel behind LeafSetMismatchError.
	ErrLeafSetMismatch = errors.New("tanglegram: trees have different leaf sets")

	// ErrDuplicateLabel is returned when a tree repeats a leaf label.
	ErrDuplicateLabel = errors.New("tanglegram: duplicate leaf label")
)

// LeafSetMismatchError lists the labels that keep two trees from being compared.
// Missing holds labels of the first tree absent from the second, Extra the
// reverse; both are sorted.
type LeafSetMismatchError struct {
	Missing []string
	Extra   []string
}

func (e *LeafSetMismatchError) Error() string {
	return fmt.Sprintf("tanglegram: trees have different leaf sets (missing [%s], extra [%s])",
		strings.Join(e.Missing, " "), strings.Join(e.Extra, " "))
}

// Unwrap lets errors.Is(err, ErrLeafSetMismatch) match.
func (e *LeafSetMismatchError) Unwrap() error { return ErrLeafSetMismatch }
