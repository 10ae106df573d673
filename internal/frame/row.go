package frame

import (
	"strconv"
	"strings"
)

// Row is a read-only view of a single frame row.
type Row struct {
	frame *Frame
	cells []string
}

// Get returns the raw cell for col, or Null when the column does not exist.
func (r Row) Get(col string) string {
	return cellAt(r.cells, r.frame.index, col)
}

// IsNull reports whether the cell for col is missing.
func (r Row) IsNull(col string) bool {
	v := r.Get(col)
	return v == Null || v == ""
}

// Int parses the cell for col as an integer. Float-formatted whole numbers
// such as "1994.0" are accepted since re-exported files may carry them.
func (r Row) Int(col string) (int64, bool) {
	if r.IsNull(col) {
		return 0, false
	}

	v := strings.TrimSpace(r.Get(col))
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n, true
	}

	fl, err := strconv.ParseFloat(v, 64)
	if err != nil || fl != float64(int64(fl)) {
		return 0, false
	}

	return int64(fl), true
}

// Float parses the cell for col as a float.
func (r Row) Float(col string) (float64, bool) {
	if r.IsNull(col) {
		return 0, false
	}

	fl, err := strconv.ParseFloat(strings.TrimSpace(r.Get(col)), 64)
	if err != nil {
		return 0, false
	}

	return fl, true
}

// Values returns a copy of the row cells in column order.
func (r Row) Values() []string {
	return append([]string(nil), r.cells...)
}
