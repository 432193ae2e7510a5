package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func TestStore_GetSet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_Watch(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "jot-*")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, "jot-notes", "[]"))
	require.NoError(t, s.Set(ctx, "jot-notes", "[ ]"))

	select {
	case e := <-events:
		assert.Equal(t, core.EventCreate, e.Type)
		assert.Equal(t, "jot-notes", e.Key)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	e := <-events
	assert.Equal(t, core.EventModify, e.Type)

	cancel()
	require.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestStore_WatchBadPattern(t *testing.T) {
	_, err := NewStore().Watch(context.Background(), "[")
	assert.Error(t, err)
}

func TestStore_WatchUnsubscribesOnCancel(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "*")
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.subs) == 0
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Set(context.Background(), "jot-notes", "[]"))
	_, open := <-events
	assert.False(t, open)
}
