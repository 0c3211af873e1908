// SPDX-License-Identifier: MIT

package columnar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/katalvlaran/statdata/extract"
)

// Schema metadata keys written by FromDataset.
const (
	MetaWidth    = "statdata.width"
	MetaSentinel = "statdata.sentinel"
)

var (
	// ErrNameCount is returned when WithNames does not name every column.
	ErrNameCount = errors.New("columnar: column name count does not match dataset")

	// ErrNilDataset indicates a nil dataset.
	ErrNilDataset = errors.New("columnar: nil dataset")
)

// Option configures FromDataset.
type Option func(*options)

type options struct {
	names        []string
	mem          memory.Allocator
	nullSentinel bool
}

// WithNames sets the field names, one per variable rank.
// Default: "v<variable index>".
func WithNames(names ...string) Option {
	return func(o *options) { o.names = append([]string(nil), names...) }
}

// WithAllocator sets the Arrow allocator (default memory.NewGoAllocator()).
func WithAllocator(mem memory.Allocator) Option {
	return func(o *options) { o.mem = mem }
}

// WithNullSentinel writes cells equal to the dataset sentinel as nulls.
func WithNullSentinel() Option {
	return func(o *options) { o.nullSentinel = true }
}

// FromDataset builds an arrow.Record with d.Rows() rows and d.Cols() columns.
// The caller owns the record and must Release it.
func FromDataset[T extract.Integer](d *extract.Dataset[T], opts ...Option) (arrow.Record, error) {
	if d == nil {
		return nil, ErrNilDataset
	}
	o := options{mem: memory.NewGoAllocator()}
	for _, set := range opts {
		set(&o)
	}
	rows, cols := d.Shape()
	names, err := fieldNames(o.names, d.VarIndices())
	if err != nil {
		return nil, err
	}

	dt := arrowType(d.Width())
	fields := make([]arrow.Field, cols)
	for j := range fields {
		fields[j] = arrow.Field{Name: names[j], Type: dt, Nullable: o.nullSentinel}
	}
	meta := arrow.NewMetadata(
		[]string{MetaWidth, MetaSentinel},
		[]string{d.Width().String(), strconv.FormatInt(int64(d.Sentinel()), 10)},
	)
	schema := arrow.NewSchema(fields, &meta)

	arrs := make([]arrow.Array, cols)
	defer func() {
		for _, a := range arrs {
			if a != nil {
				a.Release()
			}
		}
	}()
	for j := 0; j < cols; j++ {
		b := array.NewBuilder(o.mem, dt)
		b.Reserve(rows)
		for i := 0; i < rows; i++ {
			v, err := d.At(i, j)
			if err != nil {
				b.Release()
				return nil, fmt.Errorf("FromDataset: %w", err)
			}
			if o.nullSentinel && v == d.Sentinel() {
				b.AppendNull()
				continue
			}
			appendValue(b, v)
		}
		arrs[j] = b.NewArray()
		b.Release()
	}

	return array.NewRecord(schema, arrs, int64(rows)), nil
}

func fieldNames(names []string, vars []int) ([]string, error) {
	if names == nil {
		out := make([]string, len(vars))
		for j, v := range vars {
			out[j] = "v" + strconv.Itoa(v)
		}

		return out, nil
	}
	if len(names) != len(vars) {
		return nil, fmt.Errorf("FromDataset: %d names for %d columns: %w", len(names), len(vars), ErrNameCount)
	}

	return names, nil
}

// arrowType maps a width to its Arrow primitive type.
func arrowType(w extract.Width) arrow.DataType {
	switch w {
	case extract.Int8:
		return arrow.PrimitiveTypes.Int8
	case extract.Int16:
		return arrow.PrimitiveTypes.Int16
	case extract.Int32:
		return arrow.PrimitiveTypes.Int32
	case extract.Uint8:
		return arrow.PrimitiveTypes.Uint8
	case extract.Uint16:
		return arrow.PrimitiveTypes.Uint16
	case extract.Uint32:
		return arrow.PrimitiveTypes.Uint32
	case extract.Uint64:
		return arrow.PrimitiveTypes.Uint64
	default:
		return arrow.PrimitiveTypes.Int64
	}
}

// appendValue appends v to the typed builder created by arrowType.
func appendValue[T extract.Integer](b array.Builder, v T) {
	switch bb := b.(type) {
	case *array.Int8Builder:
		bb.Append(int8(v))
	case *array.Int16Builder:
		bb.Append(int16(v))
	case *array.Int32Builder:
		bb.Append(int32(v))
	case *array.Int64Builder:
		bb.Append(int64(v))
	case *array.Uint8Builder:
		bb.Append(uint8(v))
	case *array.Uint16Builder:
		bb.Append(uint16(v))
	case *array.Uint32Builder:
		bb.Append(uint32(v))
	case *array.Uint64Builder:
		bb.Append(uint64(v))
	}
}
