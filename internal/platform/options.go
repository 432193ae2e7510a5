package platform

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/aretw0/jot/pkg/core"
)

// options holds the internal configuration for a Notebook.
type options struct {
	store        core.Store
	logger       *slog.Logger
	format       string
	autoInit     bool
	mustExist    bool
	readOnly     bool
	forceTemp    bool
	devSafety    bool
	errorHandler func(error)
	clock        func() time.Time
	newID        func() string
	locale       *language.Tag
}

// Option defines a functional option for configuring a Notebook.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:    slog.New(slog.DiscardHandler),
		format:    "json",
		autoInit:  true,
		devSafety: true,
	}
}

// WithLogger sets the logger for the store, the persistence adapter and
// the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStore allows injecting a custom key-value store (e.g. memory.Store).
// If provided, path resolution and the filesystem store are skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithFormat selects the record format ("json" or "yaml").
// Defaults to "json".
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithAutoInit controls whether a missing data directory is created.
// Enabled by default.
func WithAutoInit(auto bool) Option {
	return func(o *options) {
		o.autoInit = auto
	}
}

// WithMustExist requires the data directory to already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Saves are rejected by the store and reported to the error handler.
// 2. The data directory is never created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.forceTemp = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test`. By default (true) the data directory is re-rooted under the
// system temp dir so development runs never touch real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithErrorHandler registers a callback for swallowed persistence failures
// and watcher errors.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithClock sets the time source for note timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}

// WithIDGenerator sets the generator for note and category identifiers.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithLocale sets the language used to order note titles.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = &tag
	}
}
