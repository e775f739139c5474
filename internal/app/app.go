// Package app wires configuration, storage, persistence, state and navigation
// into one session. Both entry points build their session through Open.
package app

import (
	"fmt"

	"github.com/hack-pad/hackpadfs"
	"go.uber.org/zap"

	"github.com/kittclouds/galaxymap/internal/config"
	"github.com/kittclouds/galaxymap/internal/logging"
	"github.com/kittclouds/galaxymap/internal/store"
	"github.com/kittclouds/galaxymap/pkg/navigation"
	"github.com/kittclouds/galaxymap/pkg/persist"
	"github.com/kittclouds/galaxymap/pkg/state"
)

// App is one running mind map session.
type App struct {
	Config     *config.Config
	Log        *zap.Logger
	KV         store.Storer
	Gateway    *persist.Gateway
	Store      *state.Store
	Controller *navigation.Controller
}

// Deps are the collaborators Open cannot build from configuration alone.
type Deps struct {
	// FS backs the fs and indexeddb backends.
	FS       hackpadfs.FS
	Log      *zap.Logger
	Notifier navigation.Notifier
	// StateOptions are appended after the options derived from configuration.
	StateOptions []state.Option
}

// OpenStorer opens the key-value backend named by cfg.
func OpenStorer(cfg config.StorageConfig, fsys hackpadfs.FS) (store.Storer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemStore(), nil
	case config.BackendSQLite:
		return store.NewSQLiteStoreWithDSN(cfg.DSN)
	case config.BackendFS, config.BackendIndexedDB:
		if fsys == nil {
			return nil, fmt.Errorf("storage backend %s needs a filesystem", cfg.Backend)
		}
		return store.NewFSStore(fsys, cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// Open builds a session and hydrates it from storage.
func Open(cfg *config.Config, deps Deps) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logging.OrNop(deps.Log)

	kv, err := OpenStorer(cfg.Storage, deps.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	gw := persist.New(kv,
		persist.WithKey(cfg.Storage.Key),
		persist.WithDelay(cfg.Autosave.Delay),
		persist.WithLogger(log.Named("persist")),
	)

	opts := append([]state.Option{
		state.WithLogger(log.Named("state")),
		state.WithCanvas(state.Canvas{
			MinX:   cfg.Canvas.MinX,
			MinY:   cfg.Canvas.MinY,
			Width:  cfg.Canvas.Width,
			Height: cfg.Canvas.Height,
		}),
	}, deps.StateOptions...)
	st := state.New(gw, opts...)

	navOpts := []navigation.Option{navigation.WithLogger(log.Named("navigation"))}
	if deps.Notifier != nil {
		navOpts = append(navOpts, navigation.WithNotifier(deps.Notifier))
	}

	log.Info("Mind map session opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.Duration("autosave", cfg.Autosave.Delay),
	)

	return &App{
		Config:     cfg,
		Log:        log,
		KV:         kv,
		Gateway:    gw,
		Store:      st,
		Controller: navigation.New(st, navOpts...),
	}, nil
}

// Close flushes the pending write and releases storage.
func (a *App) Close() error {
	flushErr := a.Store.Flush()
	a.Store.Close()
	if err := a.KV.Close(); err != nil {
		return err
	}
	return flushErr
}
