// SPDX-License-Identifier: MIT
// Package source: sentinel errors.
// Every message carries the "source: " prefix; callers match with errors.Is.

package source

import "errors"

var (
	// ErrNegativeIndex is returned when an index list contains a value < 0.
	ErrNegativeIndex = errors.New("source: negative index")

	// ErrOutOfRange indicates a (variable, observation) pair outside the host data.
	ErrOutOfRange = errors.New("source: cell out of range")

	// ErrRagged is returned by NewTable when columns differ in length.
	ErrRagged = errors.New("source: columns have different lengths")

	// ErrUnsupportedColumn marks an Arrow column whose type is not numeric.
	ErrUnsupportedColumn = errors.New("source: unsupported column type")

	// ErrNotNumeric is returned when a spreadsheet cell holds non-numeric text.
	ErrNotNumeric = errors.New("source: cell is not numeric")

	// ErrNoSheet is returned when a workbook has no worksheet of the given name.
	ErrNoSheet = errors.New("source: no such worksheet")

	// ErrReleased is returned by an Arrow accessor read after Release.
	ErrReleased = errors.New("source: accessor released")

	// ErrNilSource indicates a nil record, workbook or accessor was supplied.
	ErrNilSource = errors.New("source: nil source")
)
