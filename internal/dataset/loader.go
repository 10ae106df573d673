package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/logging"
)

// ErrLoad wraps any failure to read the dataset files in Load.
var ErrLoad = errors.New("loading datasets")

// Paths locates the three dataset files.
type Paths struct {
	Basics  string
	Ratings string
	Akas    string
}

// Catalog holds the loaded datasets. Titles is basics inner-joined with
// ratings; Akas is title.akas as read from disk.
type Catalog struct {
	Basics  *frame.Frame
	Ratings *frame.Frame
	Titles  *frame.Frame
	Akas    *frame.Frame
}

// LoadBasics reads title.basics.
func LoadBasics(ctx context.Context, path string) (*frame.Frame, error) {
	return loadRequired(ctx, path, "title.basics", ColTconst, ColTitleType, ColPrimaryTitle)
}

// LoadRatings reads title.ratings.
func LoadRatings(ctx context.Context, path string) (*frame.Frame, error) {
	return loadRequired(ctx, path, "title.ratings", ColTconst, ColAverageRating, ColNumVotes)
}

// LoadAkas reads title.akas.
func LoadAkas(ctx context.Context, path string) (*frame.Frame, error) {
	return loadRequired(ctx, path, "title.akas", ColTitleID, ColLanguage)
}

func loadRequired(ctx context.Context, path, name string, cols ...string) (*frame.Frame, error) {
	start := time.Now()

	f, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := RequireColumns(f, name, cols...); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("dataset read",
		slog.String("dataset", name),
		slog.String("path", path),
		slog.Int("rows", f.Len()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return f, nil
}

// Load reads all three datasets concurrently and merges basics with
// ratings.
func Load(ctx context.Context, p Paths) (*Catalog, error) {
	var cat Catalog

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		f, err := LoadBasics(gctx, p.Basics)
		cat.Basics = f

		return err
	})

	g.Go(func() error {
		f, err := LoadRatings(gctx, p.Ratings)
		cat.Ratings = f

		return err
	})

	g.Go(func() error {
		f, err := LoadAkas(gctx, p.Akas)
		cat.Akas = f

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	cat.Titles = Merge(cat.Basics, cat.Ratings)

	logging.FromContext(ctx).Info("datasets loaded",
		slog.Int("titles", cat.Basics.Len()),
		slog.Int("rated", cat.Titles.Len()),
		slog.Int("akas", cat.Akas.Len()),
	)

	return &cat, nil
}

// Merge inner-joins basics with ratings on tconst.
func Merge(basics, ratings *frame.Frame) *frame.Frame {
	return frame.Join(basics, ratings, ColTconst, ColTconst, frame.Inner)
}
