// SPDX-License-Identifier: MIT

// Package source - Apache Arrow backed accessor.
//
// Purpose:
//   - Read numeric columns of an arrow.Record as variables, rows as observations.
//   - Surface Arrow nulls as NaN so the missing predicate sees them.
//
// Notes:
//   - Arrow arrays are immutable once built, so the accessor is Reentrant.
//   - The accessor retains the record; call Release when done.
package source

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Arrow reads cells from the numeric columns of an arrow.Record.
type Arrow struct {
	rec   arrow.Record
	cols  []arrow.Array
	read  []func(i int) float64 // per-column typed reader
	nRows int
}

var (
	_ NumericAccessor = (*Arrow)(nil)
	_ Reentrant       = (*Arrow)(nil)
)

// NewArrow wraps rec. Every column must be an integer or floating-point array;
// otherwise ErrUnsupportedColumn is returned naming the offending field.
func NewArrow(rec arrow.Record) (*Arrow, error) {
	if rec == nil {
		return nil, fmt.Errorf("NewArrow: %w", ErrNilSource)
	}
	ncols := int(rec.NumCols())
	a := &Arrow{
		cols:  make([]arrow.Array, ncols),
		read:  make([]func(int) float64, ncols),
		nRows: int(rec.NumRows()),
	}
	for c := 0; c < ncols; c++ {
		col := rec.Column(c)
		fn, ok := numericReader(col)
		if !ok {
			return nil, fmt.Errorf("NewArrow: column %q (%s): %w",
				rec.ColumnName(c), col.DataType(), ErrUnsupportedColumn)
		}
		a.cols[c] = col
		a.read[c] = fn
	}
	rec.Retain()
	a.rec = rec

	return a, nil
}

// Value returns column v, row o as float64. Nulls read as NaN.
func (a *Arrow) Value(v, o int) (float64, error) {
	if a.rec == nil {
		return 0, fmt.Errorf("Arrow.Value(%d,%d): %w", v, o, ErrReleased)
	}
	if v < 0 || v >= len(a.cols) || o < 0 || o >= a.nRows {
		return 0, fmt.Errorf("Arrow.Value(%d,%d): %w", v, o, ErrOutOfRange)
	}
	if a.cols[v].IsNull(o) {
		return math.NaN(), nil
	}

	return a.read[v](o), nil
}

// IsMissing treats NaN (Arrow null) and Stata-encoded missing doubles as missing.
func (a *Arrow) IsMissing(x float64) bool { return StataMissing(x) }

// Reentrant is always true; Arrow arrays are immutable.
func (a *Arrow) Reentrant() bool { return true }

// Indices returns the full contiguous selection over the record.
func (a *Arrow) Indices() Indices { return Range(len(a.cols), a.nRows) }

// Release drops the reference taken by NewArrow. Later Value calls fail
// with ErrReleased.
func (a *Arrow) Release() {
	if a.rec != nil {
		a.rec.Release()
	}
	a.rec, a.cols, a.read, a.nRows = nil, nil, nil, 0
}

// numericReader returns a typed float64 reader for col, or false.
func numericReader(col arrow.Array) (func(int) float64, bool) {
	switch arr := col.(type) {
	case *array.Float64:
		return arr.Value, true
	case *array.Float32:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Int8:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Int16:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Int32:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Int64:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Uint8:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Uint16:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Uint32:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Uint64:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	default:
		return nil, false
	}
}
