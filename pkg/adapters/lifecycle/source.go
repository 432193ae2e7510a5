// Package lifecycle exposes notebook changes as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// Watcher is anything that streams change events until ctx is done,
// such as *platform.Notebook.
type Watcher interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
}

type changeSource struct {
	watcher Watcher
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that starts watching w on Start and
// emits every change it reports.
func NewSource(w Watcher) lifecycle.Source {
	return &changeSource{
		watcher: w,
		out:     make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching. Events stops once ctx is done or the watcher
// closes its channel.
func (s *changeSource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx)
	if err != nil {
		close(s.out)
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event through String.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
