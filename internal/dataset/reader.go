package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

// ErrMissingColumn is returned when a dataset lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// maxLineBytes bounds a single TSV line. title.akas rows are short, but
// some attribute lists in title.basics are not.
const maxLineBytes = 4 << 20

// cancelCheckEvery is the number of lines read between context checks.
const cancelCheckEvery = 1 << 16

// ReadTSV parses an IMDb-style TSV stream into a frame.
func ReadTSV(ctx context.Context, r io.Reader) (*frame.Frame, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}

		return nil, fmt.Errorf("reading header: %w", io.ErrUnexpectedEOF)
	}

	header := strings.Split(strings.TrimSuffix(sc.Text(), "\r"), "\t")
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	f := frame.New(header)

	line := 1

	for sc.Scan() {
		line++

		if line%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}

		if err := f.Append(strings.Split(text, "\t")...); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}

	return f, nil
}

// ReadCSV parses a comma separated stream with a header row. Empty cells
// are treated as null.
func ReadCSV(_ context.Context, r io.Reader) (*frame.Frame, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	f := frame.New(header)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if err := f.Append(rec...); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ReadFile reads a dataset file, choosing the parser by extension:
// .csv files are read as CSV, everything else as IMDb TSV.
func ReadFile(ctx context.Context, path string) (*frame.Frame, error) {
	file, err := os.Open(path) //nolint:gosec // path is user-provided dataset file
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var f *frame.Frame

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err = ReadCSV(ctx, file)
	} else {
		f, err = ReadTSV(ctx, file)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return f, nil
}

// RequireColumns checks that f carries every named column.
func RequireColumns(f *frame.Frame, name string, cols ...string) error {
	var missing []string

	for _, c := range cols {
		if !f.Has(c) {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", name, ErrMissingColumn, strings.Join(missing, ", "))
	}

	return nil
}
