package output

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in format names.
const (
	FormatXLSX   = "xlsx"
	FormatCSV    = "csv"
	FormatTSV    = "tsv"
	FormatSQLite = "sqlite"
)

// ErrUnknownFormat is returned for a format name no writer is registered under.
var ErrUnknownFormat = errors.New("unknown output format")

// WriterFactory creates a Writer for the given output path.
// When path is "-", stream-capable formats write to stdout.
type WriterFactory func(path string) Writer

// Registry maps format names to WriterFactory functions, enabling
// pluggable export formats.
type Registry struct {
	mu      sync.RWMutex
	writers map[string]WriterFactory
}

// NewRegistry creates an empty writer registry.
func NewRegistry() *Registry {
	return &Registry{
		writers: make(map[string]WriterFactory),
	}
}

// Register adds a writer factory under the given format name.
// Existing entries for the same name are overwritten.
func (r *Registry) Register(name string, factory WriterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writers[name] = factory
}

// Writer returns the factory for the given format, or an error if not found.
func (r *Registry) Writer(name string) (WriterFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.writers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, r.availableLocked())
	}

	return f, nil
}

// Formats returns the sorted list of registered format names.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.formatsLocked()
}

// AvailableFormats returns a comma-separated string of registered format names.
func (r *Registry) AvailableFormats() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.availableLocked()
}

func (r *Registry) formatsLocked() []string {
	names := make([]string, 0, len(r.writers))
	for name := range r.writers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) availableLocked() string {
	formats := r.formatsLocked()
	if len(formats) == 0 {
		return "none"
	}

	return strings.Join(formats, ", ")
}

// FileName returns base with the extension for format.
func FileName(base, format string) string {
	return base + "." + strings.ToLower(format)
}

// DefaultRegistry returns a registry pre-populated with the built-in
// export formats: xlsx, csv, tsv, sqlite.
func DefaultRegistry(opts ...FileOption) *Registry {
	r := NewRegistry()

	r.Register(FormatXLSX, func(path string) Writer {
		return NewXLSXWriter(path, opts...)
	})

	r.Register(FormatCSV, func(path string) Writer {
		if path == "-" {
			return NewStreamWriter(DialectCSV, nil)
		}

		return NewDelimitedWriter(DialectCSV, path, opts...)
	})

	r.Register(FormatTSV, func(path string) Writer {
		if path == "-" {
			return NewStreamWriter(DialectTSV, nil)
		}

		return NewDelimitedWriter(DialectTSV, path, opts...)
	})

	r.Register(FormatSQLite, func(path string) Writer {
		return NewSQLiteWriter(path, opts...)
	})

	return r
}
