package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for
	// migrations.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"assetregistry/internal/config"
)

// Migrator is the subset of migrate.Migrate the runner needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// Engine builds a migrator; injectable so tests stay off the filesystem and
// database.
type Engine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine Engine
}

func New(cfg *config.Config, engine Engine) *Migration {
	return &Migration{
		cfg:    cfg,
		engine: engine,
	}
}

// DefaultEngine is the production implementation.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies pending migrations to the world-state database. A database
// already at the latest version is not an error.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+mg.cfg.State.Migrations, mg.cfg.State.DatabaseURI)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
