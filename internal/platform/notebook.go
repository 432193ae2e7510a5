package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/persist"
)

// WatchPattern matches both persisted collections.
const WatchPattern = "{" + persist.NotesKey + "," + persist.CategoriesKey + "}"

// Notebook is a Manager bound to its persistent store.
type Notebook struct {
	*core.Manager

	Store   core.Store
	Adapter *persist.Adapter
	// Path is the resolved data directory; empty for injected stores.
	Path string

	logger  *slog.Logger
	onError func(error)
}

// Reload re-reads both collections when another writer has changed either
// of them. It reports whether the manager state was replaced.
// Concurrent writers are last-write-wins.
func (n *Notebook) Reload(ctx context.Context) bool {
	if !n.Adapter.Changed(ctx, persist.NotesKey) && !n.Adapter.Changed(ctx, persist.CategoriesKey) {
		return false
	}
	notes := n.Adapter.LoadNotes(ctx)
	categories := n.Adapter.LoadCategories(ctx)
	n.Manager.Replace(notes, categories)
	n.logger.Info("notebook reloaded", "notes", len(notes), "categories", len(categories))
	return true
}

// Watch follows external changes to the collections until ctx is done.
// Every change is reloaded into the manager before it is forwarded on the
// returned channel; echoes of this notebook's own saves are dropped.
func (n *Notebook) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := n.Store.(core.Watchable)
	if !ok {
		return nil, fmt.Errorf("store %T does not support watching", n.Store)
	}
	events, err := w.Watch(ctx, WatchPattern)
	if err != nil {
		return nil, err
	}

	out := make(chan core.Event, cap(events))
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if !n.Reload(ctx) {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		n.logger.Error("notebook watch stopped", "error", err)
		if n.onError != nil {
			n.onError(err)
		}
	}))

	return out, nil
}
