// Package cli implements the appstash command-line interface: a thin
// command dispatcher over the stash façade, wired to the backend chosen
// in configuration.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/appstash/appstash/internal/config"
	"github.com/appstash/appstash/internal/kv"
	"github.com/appstash/appstash/internal/logging"
	"github.com/appstash/appstash/internal/stash"

	_ "modernc.org/sqlite"
)

// App binds a configured stash to an output stream and dispatches
// commands against it.
type App struct {
	cfg   *config.Config
	stash *stash.Stash
	out   io.Writer
	close func() error
}

// NewApp opens the configured backend and wraps it in a stash. The
// returned App must be closed to release backend resources.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer) (*App, error) {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}

	s := stash.New(ctx, store,
		stash.WithAppName(cfg.AppName),
		stash.WithVersion(cfg.Version),
		stash.WithLogger(log),
	)

	return &App{cfg: cfg, stash: s, out: out, close: closeStore}, nil
}

// openStore builds the kv backend named in the configuration.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemoryStore(), func() error { return nil }, nil
	case config.BackendFile:
		s, err := kv.OpenFileStore(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case config.BackendSQLite:
		s, err := kv.OpenSQLiteStore(ctx, cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Close releases the underlying backend.
func (a *App) Close() error {
	return a.close()
}
