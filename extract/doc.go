// Package extract marshals cells of a host data source into dense, typed,
// immutable integer containers.
//
// What it does:
//
//   - Element conversion: a missing cell becomes the configured sentinel, every
//     other cell is rounded (ties toward +∞ by default, or half away from zero)
//     and narrowed to the target width.
//   - BuildRecord: one observation, all in-scope variables, in provider order.
//   - BuildDataset: all in-scope observations × variables, row-major, optionally
//     split across workers.
//   - Sequence views: ToSlice/ToSlices and Go iterators over records and rows.
//
// The target width is the type parameter T (int8 … uint64). Configuration is
// passed as functional options:
//
//	ds, err := extract.BuildDataset[int8](ctx, idx, acc,
//	    extract.WithSentinel(-1),
//	    extract.WithOverflow(extract.OverflowSaturate),
//	    extract.WithWorkers(4),
//	)
//	if err != nil {
//	    // errors.Is(err, extract.ErrAccessor) / ErrConfiguration / ErrOverflow
//	}
//	rows, cols := ds.Shape()
//
// Builds are all-or-nothing: on any error no Record or Dataset is returned.
// Built values never change and are safe for concurrent readers.
package extract
