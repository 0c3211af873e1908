// Package columnar exports extract.Dataset values as Apache Arrow records, one
// typed column per variable (Int8 … Uint64 depending on the dataset width).
//
// It is a pure view/copy conversion: values and order are unchanged, and no
// rounding or sentinel logic is repeated here. Optionally, cells equal to the
// dataset's sentinel become Arrow nulls.
package columnar
