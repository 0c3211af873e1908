// SPDX-License-Identifier: MIT

// Package extract - Record: one observation, all in-scope variables.
//
// Purpose:
//   - Dense fixed-length row; position r holds the variable at rank r of the
//     index provider, for every Record built from the same provider.
//   - Immutable: no setters; values handed out are copies.
package extract

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/statdata/source"
)

// Record is an immutable row of converted values for one observation.
type Record[T Integer] struct {
	obs  int // observation index in the source
	vals []T // one value per variable rank; never written after build
}

// Historical widths of the byte/int extractors.
type (
	ByteRecord = Record[int8]
	IntRecord  = Record[int32]
)

// BuildRecord reads observation obs for every variable of idx, in provider
// order, and converts each cell.
//
// Implementation:
//   - Stage 1: resolve options and the converter (ErrConfiguration fails here,
//     before any accessor call).
//   - Stage 2: snapshot the index provider; reject a negative obs.
//   - Stage 3: fill one row through the shared converter.
//
// Errors:
//   - ErrConfiguration, ErrNilAccessor, ErrInvalidIndex, *AccessorError
//     (errors.Is ErrAccessor), ErrOverflow. On error the Record is zero.
//
// Complexity: O(V) accessor calls, one allocation.
func BuildRecord[T Integer](ctx context.Context, obs int, idx source.IndexProvider, acc source.NumericAccessor, opts ...Option) (Record[T], error) {
	o := gatherOptions(opts...)
	conv, err := newConverter[T](o)
	if err != nil {
		return Record[T]{}, err
	}
	if acc == nil {
		return Record[T]{}, fmt.Errorf("BuildRecord: %w", ErrNilAccessor)
	}
	if obs < 0 {
		return Record[T]{}, fmt.Errorf("BuildRecord: observation %d: %w", obs, ErrInvalidIndex)
	}
	ix, err := snapshot(idx)
	if err != nil {
		return Record[T]{}, fmt.Errorf("BuildRecord: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return Record[T]{}, err
	}

	_, span := startSpan(ctx, spanRecord,
		attribute.Int("statdata.observation", obs),
		attribute.Int("statdata.cols", ix.NumVariables()),
		attribute.String("statdata.width", WidthOf[T]().String()),
	)
	vals := make([]T, ix.NumVariables())
	err = fillRow(conv, acc, ix, obs, vals)
	endSpan(span, err)
	if err != nil {
		o.logger.Warn("record build failed", "obs", obs, "err", err)
		return Record[T]{}, err
	}

	return Record[T]{obs: obs, vals: vals}, nil
}

// fillRow converts every variable of observation obs into dst (len == V).
// It is the only place where cells are read; both builders share it.
func fillRow[T Integer](conv Converter[T], acc source.NumericAccessor, ix source.Indices, obs int, dst []T) error {
	var v int
	var raw float64
	var err error
	for r := range dst {
		v = ix.Variable(r)
		if raw, err = acc.Value(v, obs); err != nil {
			return &AccessorError{Var: v, Obs: obs, Err: err}
		}
		if dst[r], err = conv.Convert(raw, acc.IsMissing(raw)); err != nil {
			return fmt.Errorf("cell (var=%d, obs=%d): %w", v, obs, err)
		}
	}

	return nil
}

// snapshot wraps source.Snapshot errors with ErrInvalidIndex.
func snapshot(idx source.IndexProvider) (source.Indices, error) {
	ix, err := source.Snapshot(idx)
	if err != nil {
		return source.Indices{}, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}

	return ix, nil
}

// Obs returns the source observation index the record was built from.
func (r Record[T]) Obs() int { return r.obs }

// Len returns the number of variables.
func (r Record[T]) Len() int { return len(r.vals) }

// At returns the value at variable rank, or ErrOutOfRange.
func (r Record[T]) At(rank int) (T, error) {
	if rank < 0 || rank >= len(r.vals) {
		return 0, rankErrorf("Record", "At", ErrOutOfRange, rank)
	}

	return r.vals[rank], nil
}

// All yields (rank, value) pairs in variable order.
func (r Record[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range r.vals {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Equal reports element-wise equality (observation index included).
func (r Record[T]) Equal(other Record[T]) bool {
	if r.obs != other.obs || len(r.vals) != len(other.vals) {
		return false
	}
	for i := range r.vals {
		if r.vals[i] != other.vals[i] {
			return false
		}
	}

	return true
}

// String renders "[v0, v1, ...]".
func (r Record[T]) String() string {
	var b strings.Builder
	writeRow(&b, r.vals)

	return b.String()
}

func writeRow[T Integer](b *strings.Builder, vals []T) {
	b.WriteString("[")
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%d", v)
	}
	b.WriteString("]")
}
