// Package output writes filtered title frames to export files.
//
// The package is organized around three concerns:
//
//   - Layout (layout.go): the export column layout. Alias bookkeeping
//     columns are dropped and the identifying columns move to the end.
//
//   - Writers: pluggable destinations via the [Writer] interface.
//     [XLSXWriter] produces a single-sheet workbook, [DelimitedWriter]
//     produces CSV or raw IMDb TSV, and [SQLiteWriter] loads a titles table.
//
//   - Registry (registry.go): maps format names to writer factories so the
//     CLI can select a format with --format.
package output
