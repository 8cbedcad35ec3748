package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"assetregistry/internal/selector"
)

// SQLite is an embedded single-file world state. Records live in one
// key-value table; selectors are evaluated in-process over a range scan, the
// same way a rich query walks the state database.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSQLite(path string, log *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite state: %w", err)
	}

	s := &SQLite{
		db:  db,
		log: log.With("component", "sqlite_state"),
	}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite state: %w", err)
	}
	return s, nil
}

func (s *SQLite) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS world_state (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	return err
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO world_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		s.log.Error("failed to put key", "key", key, "error", err)
		return fmt.Errorf("%w: put %s: %v", ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM world_state WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get key", "key", key, "error", err)
		return nil, fmt.Errorf("%w: get %s: %v", ErrStoreUnavailable, key, err)
	}
	if len(value) == 0 {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *SQLite) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLite) Query(ctx context.Context, sel *selector.Selector) (Iterator, error) {
	pairs, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	return newPairIterator(matchPairs(pairs, sel), sel), nil
}

func (s *SQLite) QueryPaginated(ctx context.Context, sel *selector.Selector, pageSize int, bookmark string) (Iterator, Metadata, error) {
	pairs, err := s.scan(ctx)
	if err != nil {
		return nil, Metadata{}, err
	}
	page, meta, err := paginate(matchPairs(pairs, sel), pageSize, bookmark)
	if err != nil {
		return nil, Metadata{}, err
	}
	return newPairIterator(page, sel), meta, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) scan(ctx context.Context) ([]kv, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM world_state ORDER BY key`)
	if err != nil {
		s.log.Error("failed to scan world state", "error", err)
		return nil, fmt.Errorf("%w: range scan: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var pairs []kv
	for rows.Next() {
		var p kv
		if err := rows.Scan(&p.key, &p.value); err != nil {
			return nil, fmt.Errorf("%w: scan row: %v", ErrStoreUnavailable, err)
		}
		if len(p.value) == 0 {
			continue
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: range scan: %v", ErrStoreUnavailable, err)
	}
	return pairs, nil
}
