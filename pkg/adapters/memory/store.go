// Package memory provides an in-process core.Store.
// It keeps nothing across restarts; use it for tests and embedding.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jot/pkg/core"
)

// watchBuffer is the per-subscriber event buffer. Events are dropped for
// subscribers that fall this far behind.
const watchBuffer = 64

type subscriber struct {
	pattern string
	ch      chan core.Event
}

// Store is a map-backed core.Store, safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
	subs map[*subscriber]struct{}
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]string),
		subs: make(map[*subscriber]struct{}),
	}
}

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", core.ErrNotFound
	}
	return v, nil
}

// Set implements core.Store.
func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eType := core.EventModify
	if _, ok := s.data[key]; !ok {
		eType = core.EventCreate
	}
	s.data[key] = value
	s.broadcast(core.Event{Type: eType, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	s.broadcast(core.Event{Type: core.EventDelete, Key: key, Timestamp: time.Now().Unix()})
	return nil
}

// Watch implements core.Watchable. Only writes made through this Store are
// observed.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	sub := &subscriber{pattern: pattern, ch: make(chan core.Event, watchBuffer)}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, sub)
		close(sub.ch)
		return nil
	})

	return sub.ch, nil
}

// broadcast must be called with s.mu held.
func (s *Store) broadcast(e core.Event) {
	for sub := range s.subs {
		if ok, _ := doublestar.Match(sub.pattern, e.Key); !ok {
			continue
		}
		select {
		case sub.ch <- e:
		default:
		}
	}
}

var (
	_ core.Store     = (*Store)(nil)
	_ core.Watchable = (*Store)(nil)
)
