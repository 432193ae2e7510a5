package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/persist"
)

// Open wires a Notebook: it resolves the data directory, prepares the store,
// loads both collections and binds the manager to the store so every
// mutation is saved.
func Open(path string, opts ...Option) (*Notebook, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	codec, err := persist.CodecFor(o.format)
	if err != nil {
		return nil, err
	}

	store, resolved, err := buildStore(path, o, codec)
	if err != nil {
		return nil, err
	}

	adapterOpts := []persist.Option{
		persist.WithCodec(codec),
		persist.WithLogger(o.logger),
	}
	if o.errorHandler != nil {
		adapterOpts = append(adapterOpts, persist.WithErrorHandler(o.errorHandler))
	}
	adapter := persist.New(store, adapterOpts...)

	ctx := context.Background()
	notes := adapter.LoadNotes(ctx)
	categories := adapter.LoadCategories(ctx)

	managerOpts := []core.ManagerOption{
		core.WithObserver(persist.NewMirror(adapter)),
		core.WithLogger(o.logger),
	}
	if o.clock != nil {
		managerOpts = append(managerOpts, core.WithClock(o.clock))
	}
	if o.newID != nil {
		managerOpts = append(managerOpts, core.WithIDGenerator(o.newID))
	}
	if o.locale != nil {
		managerOpts = append(managerOpts, core.WithLocale(*o.locale))
	}

	o.logger.Debug("notebook opened", "path", resolved, "format", codec.Name(),
		"notes", len(notes), "categories", len(categories))

	return &Notebook{
		Manager: core.NewManager(notes, categories, managerOpts...),
		Store:   store,
		Adapter: adapter,
		Path:    resolved,
		logger:  o.logger,
		onError: o.errorHandler,
	}, nil
}

func buildStore(path string, o *options, codec persist.Codec) (core.Store, string, error) {
	if o.store != nil {
		return o.store, "", nil
	}

	var resolved string
	if o.forceTemp {
		name := path
		if name == "" {
			name = "default"
		}
		resolved = SandboxPath(name, true)
	} else {
		var err error
		resolved, err = ResolveDataDir(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve data directory: %w", err)
		}
		if o.devSafety && IsDevRun() {
			safe := SandboxPath(resolved, true)
			if safe != resolved {
				o.logger.Warn("dev run detected, using sandbox", "path", safe, "requested", resolved)
			}
			resolved = safe
		}
	}

	store := fs.NewStore(fs.Config{
		Path:         resolved,
		Ext:          codec.Ext(),
		AutoInit:     o.autoInit && !o.mustExist,
		ReadOnly:     o.readOnly,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})
	if err := store.Initialize(context.Background()); err != nil {
		return nil, "", err
	}
	return store, resolved, nil
}
