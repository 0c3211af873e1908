// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet reads one worksheet of an excelize workbook.
// Column v (0-based, A=0) is a variable, row o (0-based, after the header rows)
// is an observation. Empty cells read as NaN and are missing.
//
// excelize is not documented as safe for concurrent reads, so Sheet does not
// implement Reentrant; parallel builds serialize it.
type Sheet struct {
	f      *excelize.File
	name   string
	header int
}

var _ NumericAccessor = (*Sheet)(nil)

// NewSheet binds the named worksheet. header is the number of leading rows
// (labels) to skip before observation 0.
func NewSheet(f *excelize.File, name string, header int) (*Sheet, error) {
	if f == nil {
		return nil, fmt.Errorf("NewSheet: %w", ErrNilSource)
	}
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, fmt.Errorf("NewSheet(%q): %w", name, ErrNoSheet)
	}
	if header < 0 {
		header = 0
	}

	return &Sheet{f: f, name: name, header: header}, nil
}

// Value parses the raw cell text at (v, o).
func (s *Sheet) Value(v, o int) (float64, error) {
	if v < 0 || o < 0 {
		return 0, fmt.Errorf("Sheet.Value(%d,%d): %w", v, o, ErrOutOfRange)
	}
	cell, err := excelize.CoordinatesToCellName(v+1, o+1+s.header)
	if err != nil {
		return 0, fmt.Errorf("Sheet.Value(%d,%d): %w", v, o, err)
	}
	raw, err := s.f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("Sheet.Value(%s): %w", cell, err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN(), nil
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("Sheet.Value(%s) %q: %w", cell, raw, ErrNotNumeric)
	}

	return x, nil
}

// IsMissing treats empty cells (NaN) as missing.
func (s *Sheet) IsMissing(x float64) bool { return NaNMissing(x) }

// Indices selects every used column and every row below the header.
func (s *Sheet) Indices() (Indices, error) {
	rows, err := s.f.GetRows(s.name)
	if err != nil {
		return Indices{}, fmt.Errorf("Sheet.Indices: %w", err)
	}
	nCols := 0
	for _, r := range rows {
		nCols = max(nCols, len(r))
	}

	return Range(nCols, len(rows)-s.header), nil
}
