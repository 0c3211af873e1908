// Package statdata moves numeric data out of a host's columnar store into
// dense, typed Go values ready for numeric work.
//
// 🚀 What is statdata?
//
//	A small library that reads every in-scope (variable, observation) cell of
//	a host dataset through an accessor, maps missing cells to a sentinel,
//	rounds the rest to the nearest integer and narrows them to int8 … uint64:
//		• Records: one observation, all variables
//		• Datasets: observations × variables, row-major, optionally parallel
//		• Sequence views: plain slices, Go iterators, Arrow records
//
// Under the hood, everything is organized under a few subpackages:
//
//	source/   — IndexProvider / NumericAccessor contracts + Table, Arrow, Sheet hosts
//	extract/  — element converter, BuildRecord, BuildDataset, sequence views
//	columnar/ — Dataset → arrow.Record export
//	config/   — env + YAML configuration, validated, turned into extract options
//
// Quick example:
//
//	tbl, _ := source.NewTable([][]float64{{3.6, -0.5}, {math.NaN(), 7}})
//	ds, _ := extract.BuildDataset[int8](ctx, tbl.Indices(), tbl)
//	fmt.Print(ds) // [4, -1]\n[0, 7]\n
//
//	go get github.com/katalvlaran/statdata
package statdata
