package output

import (
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

// droppedColumns are alias bookkeeping columns that never reach an export.
var droppedColumns = []string{
	dataset.ColTitle,
	dataset.ColTitleID,
	dataset.ColOrdering,
	dataset.ColTypes,
	dataset.ColAttributes,
	dataset.ColIsOriginalTitle,
	dataset.ColIsAdult,
}

// trailingColumns are moved to the end of an export, in this order.
var trailingColumns = []string{
	dataset.ColStartYear,
	dataset.ColEndYear,
	dataset.ColTitleType,
	dataset.ColTconst,
}

// Layout returns f arranged for export: dropped columns removed, the
// remaining columns in their original order, followed by startYear,
// endYear, titleType and tconst. Trailing columns missing from f are
// created as nulls.
func Layout(f *frame.Frame) *frame.Frame {
	trimmed := f.Drop(droppedColumns...)

	trailing := make(map[string]bool, len(trailingColumns))
	for _, c := range trailingColumns {
		trailing[c] = true
	}

	cols := make([]string, 0, len(trimmed.Columns())+len(trailingColumns))

	for _, c := range trimmed.Columns() {
		if !trailing[c] {
			cols = append(cols, c)
		}
	}

	cols = append(cols, trailingColumns...)

	return trimmed.Reorder(cols)
}
