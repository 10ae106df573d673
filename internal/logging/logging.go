// Package logging initialises a [log/slog] logger from the application
// configuration, carries it through a context, and provides the row-count
// attributes the pipeline stages log.
package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/hupe1980/imdbsieve/internal/config"
)

type ctxKey struct{}

// SetupWithWriter creates a *slog.Logger configured according to cfg,
// writing to w, and installs it as the process-wide default. Records carry
// the active user when one is set.
func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.EffectiveLogLevel()),
		ReplaceAttr: roundDurations,
	}

	var handler slog.Handler

	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.User != "" {
		logger = logger.With(slog.String("user", cfg.User))
	}

	slog.SetDefault(logger)

	return logger
}

// roundDurations renders durations at millisecond precision.
func roundDurations(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindDuration {
		return slog.String(a.Key, a.Value.Duration().Round(time.Millisecond).String())
	}

	return a
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Rows returns a "rows" attribute group recording how many rows entered and
// left a pipeline step.
func Rows(in, out int) slog.Attr {
	return slog.Group("rows",
		slog.Int("in", in),
		slog.Int("out", out),
		slog.Int("dropped", in-out),
	)
}

// NewContext returns a child context carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from ctx, falling back to slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}
