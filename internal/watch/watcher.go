package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc is called each time the watcher triggers a re-run.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the output of a single pipeline execution so the
// watcher can report how the exports changed between runs.
type RunResult struct {
	Movies   int
	TVSeries int
	Outputs  []string
}

// Options configures the watch behaviour.
type Options struct {
	// Dirs are watched non-recursively.
	Dirs []string

	// Files restricts events to these paths. When empty, every
	// non-temporary file in Dirs is relevant.
	Files []string

	// Debounce is the quiet period before triggering a re-run.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns the default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 2 * time.Second,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Dirs) == 0 {
		return fmt.Errorf("no directories to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range opts.Dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %q: %w", dir, err)
		}
	}

	relevant, err := newRelevance(opts.Files)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Dirs, ", "), opts.Debounce)

	prev := doRun(sigCtx, opts, runFn, "(initial)", nil)

	runs := make(chan string, 1)

	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		select {
		case runs <- path:
		default:
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case path := <-runs:
			prev = doRun(sigCtx, opts, runFn, path, prev)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			opts.Logger.Debug("input changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single pipeline run, prints the status line and
// returns the result to compare the next run against. On failure the
// previous result is kept.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string, prev *RunResult) *RunResult {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return prev
	}

	fmt.Fprintf(opts.Out, "[%s] %s → OK (%d movies, %d tv series)\n",
		now, trigger, result.Movies, result.TVSeries)

	if d := Delta(prev, result); d != "" {
		fmt.Fprintf(opts.Out, "  changes: %s\n", d)
	}

	return result
}

// Delta describes how the row counts moved between two runs, e.g.
// "movies +3, tv series -1". It is empty when nothing changed or there is
// no previous run.
func Delta(prev, curr *RunResult) string {
	if prev == nil || curr == nil {
		return ""
	}

	var parts []string

	if d := curr.Movies - prev.Movies; d != 0 {
		parts = append(parts, fmt.Sprintf("movies %+d", d))
	}

	if d := curr.TVSeries - prev.TVSeries; d != 0 {
		parts = append(parts, fmt.Sprintf("tv series %+d", d))
	}

	return strings.Join(parts, ", ")
}

// newRelevance returns the event filter for the given file set.
func newRelevance(files []string) (func(fsnotify.Event) bool, error) {
	wanted := make(map[string]bool, len(files))

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		wanted[abs] = true
	}

	return func(event fsnotify.Event) bool {
		if !isRelevant(event) {
			return false
		}

		if len(wanted) == 0 {
			return true
		}

		abs, err := filepath.Abs(event.Name)

		return err == nil && wanted[abs]
	}, nil
}

// isRelevant filters out event kinds and editor or spreadsheet temp files.
func isRelevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)

	// Spreadsheet apps write "~$name.xlsx" lock files next to the workbook.
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") || strings.HasPrefix(name, "#") ||
		strings.HasPrefix(name, "~$") {
		return false
	}

	return true
}
