package output

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

// SheetName is the worksheet every XLSX export is written to.
const SheetName = "Sheet1"

const ctxCheckInterval = 4096

// XLSXWriter writes a frame as a single-sheet workbook. Numeric columns
// become number cells and nulls become empty cells.
type XLSXWriter struct {
	path string
	opts fileOptions
}

// NewXLSXWriter creates a workbook writer for path.
func NewXLSXWriter(path string, opts ...FileOption) *XLSXWriter {
	return &XLSXWriter{path: path, opts: newFileOptions(opts)}
}

// Path returns the output file path.
func (w *XLSXWriter) Path() string {
	return w.path
}

// Write streams the header and rows into the workbook and saves it.
func (w *XLSXWriter) Write(ctx context.Context, f *frame.Frame) error {
	if err := w.opts.prepare(w.path); err != nil {
		return err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sw, err := wb.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	cols := f.Columns()

	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}

	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < f.Len(); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		if err := sw.SetRow(cell, cellValues(f.Row(i), cols)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}

	if err := wb.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}

	if err := os.Chmod(w.path, w.opts.perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", w.path, err)
	}

	return nil
}

func cellValues(r frame.Row, cols []string) []interface{} {
	vals := make([]interface{}, len(cols))

	for i, c := range cols {
		if r.IsNull(c) {
			continue
		}

		if dataset.NumericColumns[c] {
			if n, ok := r.Int(c); ok {
				vals[i] = n
				continue
			}

			if fl, ok := r.Float(c); ok {
				vals[i] = fl
				continue
			}
		}

		vals[i] = r.Get(c)
	}

	return vals
}
