package jot

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/aretw0/jot/internal/platform"
	"github.com/aretw0/jot/pkg/core"
)

// Version is the library version.
const Version = "0.1.0"

// --- Types ---

// Note is a public alias for core.Note.
type Note = core.Note

// Category is a public alias for core.Category.
type Category = core.Category

// NotePatch is a public alias for core.NotePatch.
type NotePatch = core.NotePatch

// Filter is a public alias for core.Filter.
type Filter = core.Filter

// FilterPatch is a public alias for core.FilterPatch.
type FilterPatch = core.FilterPatch

// Notebook is a note manager bound to its persistent store.
type Notebook = platform.Notebook

// --- Configuration ---

// Option defines a functional option for configuring a Notebook.
type Option = platform.Option

// WithAutoInit creates the data directory when it is missing. Enabled by default.
func WithAutoInit(auto bool) Option {
	return platform.WithAutoInit(auto)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the notebook without ever writing to disk.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the sandbox applied to `go run` and `go test` binaries.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom key-value store.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithFormat selects the record format: "json" (default) or "yaml".
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithErrorHandler receives persistence failures, which are otherwise only logged.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithClock sets the time source for note timestamps.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator sets the generator for note and category identifiers.
func WithIDGenerator(newID func() string) Option {
	return platform.WithIDGenerator(newID)
}

// WithLocale sets the language used to order note titles.
func WithLocale(tag language.Tag) Option {
	return platform.WithLocale(tag)
}

// --- Factories ---

// Open loads the notebook stored at path, or at the resolved default data
// directory when path is empty.
func Open(path string, opts ...Option) (*Notebook, error) {
	return platform.Open(path, opts...)
}

// ResolveDataDir returns the directory Open would use for path.
func ResolveDataDir(path string) (string, error) {
	return platform.ResolveDataDir(path)
}

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return core.Ptr(v)
}
