// Package source defines the boundary between statdata and the host that owns
// the data: which variables and observations are in scope (IndexProvider) and
// how a single numeric cell is read and classified (NumericAccessor).
//
// The package also ships a few concrete hosts:
//
//   - Table: an in-memory, column-major float64 source (tests, fixtures).
//   - Arrow: numeric columns of an Apache Arrow record.
//   - Sheet: a worksheet of an Excel workbook opened with excelize.
//
// Accessors are assumed NOT to be reentrant. Serialize wraps any accessor with a
// mutex; an accessor that is safe for concurrent reads says so by implementing
// Reentrant.
package source
