package output

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

// Delimited output dialects.
const (
	DialectCSV = "csv"
	DialectTSV = "tsv"
)

// DelimitedWriter writes a frame as CSV or as raw IMDb-style TSV.
// CSV output is quoted where needed and writes nulls as empty fields.
// TSV output is unquoted and keeps the \N null marker.
type DelimitedWriter struct {
	dialect string
	path    string
	out     io.Writer
	opts    fileOptions
}

// NewDelimitedWriter creates a writer for path in the given dialect.
func NewDelimitedWriter(dialect, path string, opts ...FileOption) *DelimitedWriter {
	return &DelimitedWriter{dialect: dialect, path: path, opts: newFileOptions(opts)}
}

// NewStreamWriter creates a delimited writer that writes to w instead of a
// file. If w is nil, os.Stdout is used.
func NewStreamWriter(dialect string, w io.Writer) *DelimitedWriter {
	if w == nil {
		w = os.Stdout
	}

	return &DelimitedWriter{dialect: dialect, out: w, opts: newFileOptions(nil)}
}

// Path returns the output file path, or "" for stream writers.
func (w *DelimitedWriter) Path() string {
	return w.path
}

// Write encodes the frame to the writer's destination.
func (w *DelimitedWriter) Write(ctx context.Context, f *frame.Frame) error {
	if w.out != nil {
		return w.encode(ctx, w.out, f)
	}

	if err := w.opts.prepare(w.path); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, w.opts.perm) //nolint:gosec // user-chosen export path
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.path, err)
	}

	bw := bufio.NewWriter(file)

	if err := w.encode(ctx, bw, f); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", w.path, err)
	}

	if err := bw.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", w.path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", w.path, err)
	}

	return nil
}

func (w *DelimitedWriter) encode(ctx context.Context, out io.Writer, f *frame.Frame) error {
	switch w.dialect {
	case DialectCSV:
		return encodeCSV(ctx, out, f)
	case DialectTSV:
		return encodeTSV(ctx, out, f)
	default:
		return fmt.Errorf("unknown delimited dialect %q", w.dialect)
	}
}

func encodeCSV(ctx context.Context, out io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(out)

	if err := cw.Write(f.Columns()); err != nil {
		return err
	}

	cols := f.Columns()
	record := make([]string, len(cols))

	for i := 0; i < f.Len(); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		r := f.Row(i)
		for j, c := range cols {
			if r.IsNull(c) {
				record[j] = ""
			} else {
				record[j] = r.Get(c)
			}
		}

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

func encodeTSV(ctx context.Context, out io.Writer, f *frame.Frame) error {
	if _, err := io.WriteString(out, strings.Join(f.Columns(), "\t")+"\n"); err != nil {
		return err
	}

	for i := 0; i < f.Len(); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		cells := f.Row(i).Values()
		for j, c := range cells {
			if c == "" {
				cells[j] = frame.Null
			}
		}

		if _, err := io.WriteString(out, strings.Join(cells, "\t")+"\n"); err != nil {
			return err
		}
	}

	return nil
}
