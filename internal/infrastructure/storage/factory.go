// Package storage wires a world-state backend from configuration.
package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"assetregistry/internal/config"
	"assetregistry/internal/infrastructure/migration"
	"assetregistry/internal/state"
)

// Open returns the configured world-state backend. The postgres backend gets
// its schema migrated before use.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (state.Store, error) {
	switch cfg.State.Backend {
	case config.BackendMemory:
		return state.NewMemory(), nil
	case config.BackendSQLite:
		return state.NewSQLite(cfg.State.SQLitePath, log)
	case config.BackendPostgres:
		mg := migration.New(cfg, migration.DefaultEngine)
		if err := mg.Up(); err != nil {
			return nil, fmt.Errorf("migrate world state: %w", err)
		}
		return state.NewPostgres(ctx, cfg.State.DatabaseURI, log)
	default:
		return nil, fmt.Errorf("unknown state backend %q", cfg.State.Backend)
	}
}
