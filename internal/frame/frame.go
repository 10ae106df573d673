// Package frame provides a small in-memory table of string cells used as the
// working representation of IMDb dataset files. Column order is significant
// and preserved through every operation so that exported files keep the
// layout of the source datasets.
package frame

import (
	"fmt"
	"sort"
	"strconv"
)

// Null is the IMDb marker for a missing value.
const Null = `\N`

// Frame is an ordered set of named columns with string rows.
// Frames are treated as immutable: every operation returns a new Frame.
// Row slices may be shared between frames and must not be modified.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New creates an empty frame with the given columns.
func New(columns []string) *Frame {
	cols := append([]string(nil), columns...)

	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}

	return &Frame{columns: cols, index: idx}
}

// FromRows creates a frame from columns and rows, validating row widths.
func FromRows(columns []string, rows [][]string) (*Frame, error) {
	f := New(columns)

	for i, r := range rows {
		if err := f.Append(r...); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	return f, nil
}

// Append adds a row. The number of cells must equal the number of columns.
func (f *Frame) Append(cells ...string) error {
	if len(cells) != len(f.columns) {
		return fmt.Errorf("expected %d fields, got %d", len(f.columns), len(cells))
	}

	f.rows = append(f.rows, cells)

	return nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Has reports whether the frame has a column named col.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Row returns the i-th row.
func (f *Frame) Row(i int) Row {
	return Row{frame: f, cells: f.rows[i]}
}

// Each calls fn for every row in order.
func (f *Frame) Each(fn func(Row)) {
	for _, cells := range f.rows {
		fn(Row{frame: f, cells: cells})
	}
}

// Filter returns a frame holding the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	out := f.derive()

	for _, cells := range f.rows {
		if keep(Row{frame: f, cells: cells}) {
			out.rows = append(out.rows, cells)
		}
	}

	return out
}

// DropDuplicates keeps the first row seen for each distinct combination of
// the given key columns.
func (f *Frame) DropDuplicates(keys ...string) *Frame {
	out := f.derive()
	seen := make(map[string]struct{}, len(f.rows))

	for _, cells := range f.rows {
		k := f.compositeKey(cells, keys)
		if _, dup := seen[k]; dup {
			continue
		}

		seen[k] = struct{}{}
		out.rows = append(out.rows, cells)
	}

	return out
}

// SortStable returns a frame with rows ordered by less. Rows that compare
// equal keep their relative order.
func (f *Frame) SortStable(less func(a, b Row) bool) *Frame {
	out := f.derive()
	out.rows = append(out.rows, f.rows...)

	sort.SliceStable(out.rows, func(i, j int) bool {
		return less(Row{frame: f, cells: out.rows[i]}, Row{frame: f, cells: out.rows[j]})
	})

	return out
}

// Rename returns a frame with column from renamed to to. A missing column
// is ignored.
func (f *Frame) Rename(from, to string) *Frame {
	cols := f.Columns()
	for i, c := range cols {
		if c == from {
			cols[i] = to
		}
	}

	out := New(cols)
	out.rows = f.rows

	return out
}

// Drop returns a frame without the named columns. Missing columns are ignored.
func (f *Frame) Drop(cols ...string) *Frame {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}

	keep := make([]string, 0, len(f.columns))
	for _, c := range f.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}

	return f.Reorder(keep)
}

// Reorder returns a frame with exactly the given columns in the given order.
// Columns that do not exist in f are created with null cells.
func (f *Frame) Reorder(cols []string) *Frame {
	out := New(cols)
	src := make([]int, len(cols))

	for i, c := range cols {
		if j, ok := f.index[c]; ok {
			src[i] = j
		} else {
			src[i] = -1
		}
	}

	out.rows = make([][]string, 0, len(f.rows))

	for _, cells := range f.rows {
		row := make([]string, len(cols))
		for i, j := range src {
			if j < 0 {
				row[i] = Null
			} else {
				row[i] = cells[j]
			}
		}

		out.rows = append(out.rows, row)
	}

	return out
}

func (f *Frame) derive() *Frame {
	return &Frame{columns: f.columns, index: f.index}
}

func (f *Frame) compositeKey(cells []string, keys []string) string {
	if len(keys) == 1 {
		return cellAt(cells, f.index, keys[0])
	}

	var k []byte
	for _, key := range keys {
		k = strconv.AppendQuote(k, cellAt(cells, f.index, key))
	}

	return string(k)
}

func cellAt(cells []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok {
		return Null
	}

	return cells[i]
}
