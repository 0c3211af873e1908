// SPDX-License-Identifier: MIT

package source

import "fmt"

// Table is an in-memory, column-major numeric source: cols[v][o].
// It never changes after NewTable and is safe for concurrent reads.
type Table struct {
	cols    [][]float64
	nObs    int
	missing func(float64) bool
}

var (
	_ NumericAccessor = (*Table)(nil)
	_ Reentrant       = (*Table)(nil)
)

// TableOption customizes a Table.
type TableOption func(*Table)

// WithMissing overrides the missing-value predicate (default StataMissing).
func WithMissing(pred func(float64) bool) TableOption {
	if pred == nil {
		panic("source: WithMissing: nil predicate")
	}

	return func(t *Table) { t.missing = pred }
}

// NewTable copies cols (one slice per variable) into a Table.
// All columns must have the same length; otherwise ErrRagged.
func NewTable(cols [][]float64, opts ...TableOption) (*Table, error) {
	t := &Table{cols: make([][]float64, len(cols)), missing: StataMissing}
	for v, col := range cols {
		if v > 0 && len(col) != t.nObs {
			return nil, fmt.Errorf("NewTable: column %d has %d rows, want %d: %w", v, len(col), t.nObs, ErrRagged)
		}
		t.nObs = len(col)
		t.cols[v] = append([]float64(nil), col...)
	}
	for _, set := range opts {
		set(t)
	}

	return t, nil
}

// Value returns cols[v][o] or ErrOutOfRange.
func (t *Table) Value(v, o int) (float64, error) {
	if v < 0 || v >= len(t.cols) || o < 0 || o >= t.nObs {
		return 0, fmt.Errorf("Table.Value(%d,%d): %w", v, o, ErrOutOfRange)
	}

	return t.cols[v][o], nil
}

// IsMissing applies the configured predicate.
func (t *Table) IsMissing(x float64) bool { return t.missing(x) }

// Reentrant is always true; a Table is read-only.
func (t *Table) Reentrant() bool { return true }

// Shape returns (variables, observations).
func (t *Table) Shape() (vars, obs int) { return len(t.cols), t.nObs }

// Indices returns the full contiguous selection over the table.
func (t *Table) Indices() Indices { return Range(len(t.cols), t.nObs) }
