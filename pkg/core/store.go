package core

import "context"

// Store is the key-value text persistence port.
// Implementations hold opaque text values under short string keys
// (e.g. a directory of files, or a map in memory).
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Watchable is implemented by stores that can report changes made to them,
// including changes made by other processes.
type Watchable interface {
	// Watch emits an Event for every change to a key matching pattern.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Observer receives snapshots of the Manager's collections after they change.
// Calls happen synchronously, in operation order, while the Manager is locked:
// implementations must not call back into the Manager.
type Observer interface {
	NotesChanged(notes []Note)
	CategoriesChanged(categories []Category)
}
