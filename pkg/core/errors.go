package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by a Store when a key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrReadOnly is returned by a Store opened in read-only mode.
	ErrReadOnly = errors.New("store is in read-only mode")
)
