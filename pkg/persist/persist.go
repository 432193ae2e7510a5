// Package persist bridges the notes Manager to a key-value text store.
//
// Reads and writes never fail from the caller's point of view: a missing or
// unreadable record yields the caller's default, and a failed write is
// dropped. Every failure is logged and handed to the configured error
// handler as an *Error so it stays observable.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/jot/pkg/core"
)

// Keys of the two persisted collections.
const (
	NotesKey      = "jot-notes"
	CategoriesKey = "jot-categories"
)

// Operations reported in Error.Op.
const (
	OpLoad = "load"
	OpSave = "save"
)

// Error describes a swallowed persistence failure.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Adapter reads and writes typed records through a core.Store.
type Adapter struct {
	store   core.Store
	codec   Codec
	logger  *slog.Logger
	onError func(error)

	mu   sync.Mutex
	seen map[string]string // last text read or written per key
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithCodec sets the record format. Defaults to JSON.
func WithCodec(c Codec) Option {
	return func(a *Adapter) {
		if c != nil {
			a.codec = c
		}
	}
}

// WithLogger sets the logger failures are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithErrorHandler registers a callback receiving every swallowed *Error.
func WithErrorHandler(fn func(error)) Option {
	return func(a *Adapter) {
		a.onError = fn
	}
}

// New creates an Adapter over store.
func New(store core.Store, opts ...Option) *Adapter {
	a := &Adapter{
		store:  store,
		codec:  JSON{},
		logger: slog.New(slog.DiscardHandler),
		seen:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Codec returns the record format in use.
func (a *Adapter) Codec() Codec {
	return a.codec
}

// Load decodes the record at key, returning def when it is absent, empty or
// cannot be read or decoded.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, core.ErrNotFound) || (err == nil && raw == "") {
		return def
	}
	if err != nil {
		a.report(OpLoad, key, err)
		return def
	}

	var v T
	if err := a.codec.Unmarshal([]byte(raw), &v); err != nil {
		a.report(OpLoad, key, err)
		return def
	}
	a.remember(key, raw)
	return v
}

// Save encodes v and writes it at key. Failures are reported, not returned.
func Save[T any](ctx context.Context, a *Adapter, key string, v T) {
	data, err := a.codec.Marshal(v)
	if err != nil {
		a.report(OpSave, key, err)
		return
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		a.report(OpSave, key, err)
		return
	}
	a.remember(key, string(data))
	a.logger.Debug("record saved", "key", key, "bytes", len(data))
}

// LoadNotes loads the notes collection, defaulting to no notes.
func (a *Adapter) LoadNotes(ctx context.Context) []core.Note {
	return Load(ctx, a, NotesKey, []core.Note{})
}

// LoadCategories loads the categories collection, defaulting to
// core.DefaultCategories.
func (a *Adapter) LoadCategories(ctx context.Context) []core.Category {
	return Load(ctx, a, CategoriesKey, core.DefaultCategories())
}

// Changed reports whether the text at key differs from what this Adapter
// last read or wrote there, i.e. whether someone else has written it since.
func (a *Adapter) Changed(ctx context.Context, key string) bool {
	raw, err := a.store.Get(ctx, key)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return true
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	last, ok := a.seen[key]
	if !ok {
		return raw != ""
	}
	return raw != last
}

func (a *Adapter) remember(key, raw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen[key] = raw
}

func (a *Adapter) report(op, key string, err error) {
	perr := &Error{Op: op, Key: key, Err: err}
	a.logger.Error("persistence failure", "op", op, "key", key, "error", err)
	if a.onError != nil {
		a.onError(perr)
	}
}

// Mirror saves every collection snapshot it observes.
// It is the Manager's only persistence trigger.
type Mirror struct {
	adapter *Adapter
}

// NewMirror creates a Mirror writing through a.
func NewMirror(a *Adapter) *Mirror {
	return &Mirror{adapter: a}
}

// NotesChanged implements core.Observer.
func (m *Mirror) NotesChanged(notes []core.Note) {
	Save(context.Background(), m.adapter, NotesKey, notes)
}

// CategoriesChanged implements core.Observer.
func (m *Mirror) CategoriesChanged(categories []core.Category) {
	Save(context.Background(), m.adapter, CategoriesKey, categories)
}

var _ core.Observer = (*Mirror)(nil)
