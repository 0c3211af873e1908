// SPDX-License-Identifier: MIT

package extract

import (
	"context"

	"github.com/katalvlaran/statdata/source"
)

// Frame is a width-erased view of a Dataset, for callers that pick the width
// at runtime (configuration files, environment).
type Frame interface {
	Shape() (rows, cols int)
	Width() Width
	Int64At(row, col int) (int64, error)
}

var (
	_ Frame = (*Dataset[int8])(nil)
	_ Frame = (*Dataset[uint64])(nil)
)

// BuildFrame dispatches a runtime Width to BuildDataset.
// An invalid width fails with ErrConfiguration before any cell is read.
func BuildFrame(ctx context.Context, w Width, idx source.IndexProvider, acc source.NumericAccessor, opts ...Option) (Frame, error) {
	switch w {
	case Int8:
		return asFrame(BuildDataset[int8](ctx, idx, acc, opts...))
	case Int16:
		return asFrame(BuildDataset[int16](ctx, idx, acc, opts...))
	case Int32:
		return asFrame(BuildDataset[int32](ctx, idx, acc, opts...))
	case Int64:
		return asFrame(BuildDataset[int64](ctx, idx, acc, opts...))
	case Uint8:
		return asFrame(BuildDataset[uint8](ctx, idx, acc, opts...))
	case Uint16:
		return asFrame(BuildDataset[uint16](ctx, idx, acc, opts...))
	case Uint32:
		return asFrame(BuildDataset[uint32](ctx, idx, acc, opts...))
	case Uint64:
		return asFrame(BuildDataset[uint64](ctx, idx, acc, opts...))
	default:
		return nil, ValidateWidth(w)
	}
}

// asFrame keeps a nil *Dataset from turning into a non-nil Frame.
func asFrame[T Integer](d *Dataset[T], err error) (Frame, error) {
	if err != nil {
		return nil, err
	}

	return d, nil
}
