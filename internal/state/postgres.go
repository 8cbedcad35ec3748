package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"assetregistry/internal/selector"
)

// Postgres backs the world state with a pgx pool. The schema is managed by
// the migration package.
type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPostgres(ctx context.Context, dsn string, log *slog.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres state: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrStoreUnavailable, err)
	}
	return &Postgres{
		pool: pool,
		log:  log.With("component", "postgres_state"),
	}, nil
}

func (s *Postgres) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO world_state (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		s.log.Error("failed to put key", "key", key, "error", err)
		return fmt.Errorf("%w: put %s: %v", ErrStoreUnavailable, key, err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM world_state WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *Postgres) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Postgres) Query(ctx context.Context, sel *selector.Selector) (Iterator, error) {
	pairs, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	return newPairIterator(matchPairs(pairs, sel), sel), nil
}

func (s *Postgres) QueryPaginated(ctx context.Context, sel *selector.Selector, pageSize int, bookmark string) (Iterator, Metadata, error) {
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

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func (s *Postgres) scan(ctx context.Context) ([]kv, error) {
	rows, err := s.pool.Query(ctx,
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
