package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/interview-coach/internal/config"
	"github.com/jonathan/interview-coach/internal/db"
	"github.com/jonathan/interview-coach/internal/localstore"
	"github.com/jonathan/interview-coach/internal/observability"
	"github.com/jonathan/interview-coach/internal/server"
)

// loadConfig loads the configuration, applies --sqlite and installs the logger.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var overrides []config.Override
	if opts.sqlitePath != "" {
		overrides = append(overrides,
			config.Override{Key: "store", Value: config.StoreSQLite},
			config.Override{Key: "sqlite_path", Value: opts.sqlitePath},
		)
	}
	cfg, err := config.Load(overrides...)
	if err != nil {
		return nil, err
	}
	if err := observability.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured event store. The returned func closes it.
func openStore(ctx context.Context, cfg *config.Config) (server.Store, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		store, err := localstore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Debug("opened sqlite store", "path", cfg.SQLitePath)
		return store, func() { _ = store.Close() }, nil
	default:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return database, database.Close, nil
	}
}
