// Package watched reads a user's "already watched" spreadsheet and removes
// the listed titles from a catalog frame.
//
// A watched list is an .xlsx workbook whose first sheet has a header row
// with a primaryTitle column. Titles are matched on that exact text.
package watched

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/filter"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
)

var (
	// ErrListNotFound is returned when the watched workbook does not exist.
	ErrListNotFound = errors.New("watched list not found")
	// ErrNoTitleColumn is returned when the first sheet has no primaryTitle header.
	ErrNoTitleColumn = errors.New("primaryTitle column not found")
)

// List is the set of watched primary titles.
type List map[string]struct{}

// Contains reports whether title is on the list.
func (l List) Contains(title string) bool {
	_, ok := l[title]
	return ok
}

// Load reads the watched list at path.
func Load(path string) (List, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, path)
		}

		return nil, fmt.Errorf("checking watched list %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening watched list %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w in %s: workbook has no sheets", ErrNoTitleColumn, path)
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheets[0], path, err)
	}
	defer rows.Close()

	col := -1
	list := make(List)

	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("reading row of %s: %w", path, err)
		}

		if col < 0 {
			col = headerIndex(cells, dataset.ColPrimaryTitle)
			if col < 0 {
				return nil, fmt.Errorf("%w in %s", ErrNoTitleColumn, path)
			}

			continue
		}

		if col < len(cells) && cells[col] != "" {
			list[cells[col]] = struct{}{}
		}
	}

	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("reading rows of %s: %w", path, err)
	}

	if col < 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTitleColumn, path)
	}

	return list, nil
}

// Exclude removes the titles on the watched list at path from titles.
// A missing list or a list without a primaryTitle column is logged as a
// warning and titles are returned unchanged. The returned count is the
// number of rows removed.
func Exclude(ctx context.Context, titles *frame.Frame, path string) (*frame.Frame, int, error) {
	logger := logging.FromContext(ctx)

	list, err := Load(path)
	if err != nil {
		if errors.Is(err, ErrListNotFound) || errors.Is(err, ErrNoTitleColumn) {
			logger.Warn("proceeding without exclusions", slog.String("path", path), slog.String("reason", err.Error()))
			return titles, 0, nil
		}

		return nil, 0, err
	}

	out, err := filter.ExcludeTitles(list).Apply(ctx, titles)
	if err != nil {
		return nil, 0, err
	}

	logger.Info("watched titles excluded",
		slog.String("path", path),
		slog.Int("listed", len(list)),
		logging.Rows(titles.Len(), out.Len()),
	)

	return out, titles.Len() - out.Len(), nil
}

func headerIndex(cells []string, name string) int {
	for i, c := range cells {
		if strings.TrimSpace(c) == name {
			return i
		}
	}

	return -1
}
