package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

// ErrWrite marks a failure to produce an export file.
var ErrWrite = errors.New("writing output")

// Writer is the interface for export destinations.
type Writer interface {
	// Write stores the frame at the writer's destination.
	Write(ctx context.Context, f *frame.Frame) error
}

// fileOptions holds settings shared by all file-backed writers.
type fileOptions struct {
	perm   os.FileMode
	logger *slog.Logger
}

// FileOption configures a file-backed writer.
type FileOption func(*fileOptions)

// WithPermissions overrides the default file permissions (0644).
func WithPermissions(perm os.FileMode) FileOption {
	return func(o *fileOptions) {
		o.perm = perm
	}
}

// WithLogger sets the logger used for overwrite warnings.
func WithLogger(logger *slog.Logger) FileOption {
	return func(o *fileOptions) {
		o.logger = logger
	}
}

func newFileOptions(opts []FileOption) fileOptions {
	o := fileOptions{
		perm:   0o644,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// prepare creates the parent directories of path and warns when an
// existing file is about to be replaced.
func (o fileOptions) prepare(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); err == nil {
		o.logger.Warn("overwriting existing file", slog.String("path", path))
	}

	return nil
}
