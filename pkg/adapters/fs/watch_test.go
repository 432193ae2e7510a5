package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func nextEvent(t *testing.T, events <-chan core.Event) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "events channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return core.Event{}
	}
}

func TestWatch_ReportsMatchingKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newTestStore(t, Config{})

	events, err := s.Watch(ctx, "jot-*")
	require.NoError(t, err)

	// Foreign files and temp files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "other.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, TempFilePrefix+"1"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Path, "unrelated.json"), []byte("x"), 0644))

	require.NoError(t, s.Set(ctx, "jot-notes", "[]"))

	e := nextEvent(t, events)
	assert.Equal(t, "jot-notes", e.Key)
	assert.Equal(t, core.EventCreate, e.Type)

	require.NoError(t, os.Remove(filepath.Join(s.Path, "jot-notes.json")))
	for {
		e = nextEvent(t, events)
		if e.Type == core.EventDelete {
			break
		}
	}
	assert.Equal(t, "jot-notes", e.Key)
}

func TestWatch_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestStore(t, Config{})

	events, err := s.Watch(ctx, "*")
	require.NoError(t, err)
	require.True(t, s.State().(StoreState).WatcherActive)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return !s.State().(StoreState).WatcherActive
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatch_InvalidPattern(t *testing.T) {
	s := newTestStore(t, Config{})
	_, err := s.Watch(context.Background(), "[")
	assert.Error(t, err)
}
