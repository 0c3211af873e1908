// SPDX-License-Identifier: MIT

// Package extract - Dataset: observations × variables, row-major.
//
// Purpose:
//   - Flat buffer with the explicit index formula i*cols + j.
//   - Row i is observation rank i, column j is variable rank j, both in
//     provider order; Row(i) equals what BuildRecord would return for the
//     i-th observation index.
//   - Immutable after BuildDataset returns; safe for concurrent readers.
//
// Complexity quicksheet:
//   - BuildDataset: O(r*c) accessor calls; At/Row: O(1); Values: O(r*c).
package extract

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/statdata/source"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxRow = "Row"
)

// Dataset is an immutable rectangular block of converted values.
type Dataset[T Integer] struct {
	r, c     int   // observation and variable counts
	data     []T   // row-major storage, len == r*c
	vars     []int // variable index snapshot (column order)
	obs      []int // observation index snapshot (row order)
	sentinel T     // value used for missing cells
}

// Historical widths of the byte/int extractors.
type (
	ByteDataset = Dataset[int8]
	IntDataset  = Dataset[int32]
)

// BuildDataset converts every in-scope (observation, variable) cell.
//
// Implementation:
//   - Stage 1: resolve options and converter (config errors before any read).
//   - Stage 2: snapshot the index provider and allocate r*c cells.
//   - Stage 3: fill rows. With one worker, rows are filled in order on the
//     caller's goroutine. With more, rows are split into contiguous ranges; each
//     goroutine owns the sub-slice of its range, and the first error cancels
//     the group.
//   - Stage 4: return the Dataset only when every row succeeded.
//
// Behavior highlights:
//   - Outer loop observations, inner loop variables, both in provider order.
//   - Non-reentrant accessors are serialized when workers > 1.
//   - ctx is checked between rows; cancellation returns ctx.Err().
//
// Errors:
//   - ErrConfiguration, ErrNilAccessor, ErrInvalidIndex, *AccessorError,
//     ErrOverflow, context errors. On error the Dataset is nil.
func BuildDataset[T Integer](ctx context.Context, idx source.IndexProvider, acc source.NumericAccessor, opts ...Option) (*Dataset[T], error) {
	o := gatherOptions(opts...)
	conv, err := newConverter[T](o)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("BuildDataset: %w", ErrNilAccessor)
	}
	ix, err := snapshot(idx)
	if err != nil {
		return nil, fmt.Errorf("BuildDataset: %w", err)
	}

	rows, cols := ix.NumObservations(), ix.NumVariables()
	workers := min(o.workers, rows)
	log := o.logger.With(
		"build_id", uuid.NewString(),
		"rows", rows,
		"cols", cols,
		"workers", max(workers, 1),
		"width", WidthOf[T]().String(),
	)
	ctx, span := startSpan(ctx, spanDataset,
		attribute.Int("statdata.rows", rows),
		attribute.Int("statdata.cols", cols),
		attribute.Int("statdata.workers", max(workers, 1)),
		attribute.String("statdata.width", WidthOf[T]().String()),
	)
	start := time.Now()
	log.Debug("dataset build started")

	data := make([]T, rows*cols)
	if workers <= 1 {
		err = fillRows(ctx, conv, acc, ix, data, 0, rows)
	} else {
		err = fillParallel(ctx, conv, acc, ix, data, workers)
	}
	endSpan(span, err)
	if err != nil {
		log.Warn("dataset build failed", "elapsed", time.Since(start), "err", err)
		return nil, err
	}
	log.Debug("dataset build finished", "elapsed", time.Since(start))

	return &Dataset[T]{
		r:        rows,
		c:        cols,
		data:     data,
		vars:     ix.VariableIndices(),
		obs:      ix.ObservationIndices(),
		sentinel: conv.Sentinel(),
	}, nil
}

// fillRows fills observation ranks [lo, hi) into dst, which starts at row lo.
func fillRows[T Integer](ctx context.Context, conv Converter[T], acc source.NumericAccessor, ix source.Indices, dst []T, lo, hi int) error {
	cols := ix.NumVariables()
	var i, base int
	for i = lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		base = (i - lo) * cols
		if err := fillRow(conv, acc, ix, ix.Observation(i), dst[base:base+cols]); err != nil {
			return err
		}
	}

	return nil
}

// fillParallel splits rows into `workers` contiguous ranges.
// Each goroutine receives a capacity-limited sub-slice so no two goroutines can
// reach the same cell.
func fillParallel[T Integer](ctx context.Context, conv Converter[T], acc source.NumericAccessor, ix source.Indices, data []T, workers int) error {
	if !source.IsReentrant(acc) {
		acc = source.Serialize(acc)
	}
	rows, cols := ix.NumObservations(), ix.NumVariables()
	chunk := (rows + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < rows; lo += chunk {
		hi := min(lo+chunk, rows)
		dst := data[lo*cols : hi*cols : hi*cols]
		g.Go(func() error {
			return fillRows(gctx, conv, acc, ix, dst, lo, hi)
		})
	}

	return g.Wait()
}

// Rows returns the observation count.
func (d *Dataset[T]) Rows() int { return d.r }

// Cols returns the variable count.
func (d *Dataset[T]) Cols() int { return d.c }

// Shape returns (rows, cols).
func (d *Dataset[T]) Shape() (rows, cols int) { return d.r, d.c }

// Width returns the runtime tag of T.
func (d *Dataset[T]) Width() Width { return WidthOf[T]() }

// Sentinel returns the value used for missing cells in this dataset.
func (d *Dataset[T]) Sentinel() T { return d.sentinel }

// VarIndices returns a copy of the variable indices (column order).
func (d *Dataset[T]) VarIndices() []int { return append([]int(nil), d.vars...) }

// ObsIndices returns a copy of the observation indices (row order).
func (d *Dataset[T]) ObsIndices() []int { return append([]int(nil), d.obs...) }

// indexOf bounds-checks (row, col) and returns the flat offset.
func (d *Dataset[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= d.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= d.c {
		return 0, ErrOutOfRange
	}

	return row*d.c + col, nil
}

// At returns the value at (observation rank, variable rank) or ErrOutOfRange.
func (d *Dataset[T]) At(row, col int) (T, error) {
	off, err := d.indexOf(row, col)
	if err != nil {
		return 0, rankErrorf("Dataset", ctxAt, err, row, col)
	}

	return d.data[off], nil
}

// Int64At is At widened to int64 (uint64 values above MaxInt64 wrap).
func (d *Dataset[T]) Int64At(row, col int) (int64, error) {
	v, err := d.At(row, col)

	return int64(v), err
}

// Row returns observation rank i as a Record sharing the dataset's storage.
// The Record is read-only, so sharing is safe.
func (d *Dataset[T]) Row(i int) (Record[T], error) {
	if i < 0 || i >= d.r {
		return Record[T]{}, rankErrorf("Dataset", ctxRow, ErrOutOfRange, i)
	}

	return d.row(i), nil
}

func (d *Dataset[T]) row(i int) Record[T] {
	lo, hi := i*d.c, (i+1)*d.c

	return Record[T]{obs: d.obs[i], vals: d.data[lo:hi:hi]}
}

// Records yields (rank, Record) for every row in order.
func (d *Dataset[T]) Records() iter.Seq2[int, Record[T]] {
	return func(yield func(int, Record[T]) bool) {
		for i := 0; i < d.r; i++ {
			if !yield(i, d.row(i)) {
				return
			}
		}
	}
}

// Equal reports identical shape, index snapshots and values.
func (d *Dataset[T]) Equal(other *Dataset[T]) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.r != other.r || d.c != other.c || !equalInts(d.vars, other.vars) || !equalInts(d.obs, other.obs) {
		return false
	}
	for i := range d.data {
		if d.data[i] != other.data[i] {
			return false
		}
	}

	return true
}

// String renders one "[...]" line per row.
func (d *Dataset[T]) String() string {
	var b strings.Builder
	for i := 0; i < d.r; i++ {
		writeRow(&b, d.data[i*d.c:(i+1)*d.c])
		b.WriteString("\n")
	}

	return b.String()
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
