package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetregistry/internal/config"
	"assetregistry/internal/selector"
	"assetregistry/internal/utils/logger"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "state.db"), logger.New(config.EnvLocal))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_PutGet(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1","docType":"asset"}`)))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a1","docType":"asset"}`, string(got))
}

func TestSQLite_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1","v":1}`)))
	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1","v":2}`)))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a1","v":2}`, string(got))
}

func TestSQLite_GetMissing(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_Exists(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1"}`)))

	ok, err := s.Exists(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "a2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_QueryFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1","docType":"asset"}`)))
	require.NoError(t, s.Put(ctx, "p1", []byte(`{"id":"p1","docType":"paymentDetails"}`)))

	it, err := s.Query(ctx, selector.New().Eq("docType", "asset"))
	require.NoError(t, err)

	records, err := Drain(it)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1"}, recordIDs(records))
}

func TestSQLite_Pagination(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)
	for _, id := range []string{"a1", "a2", "a3"} {
		require.NoError(t, s.Put(ctx, id, []byte(`{"id":"`+id+`","docType":"asset"}`)))
	}

	it, meta, err := s.QueryPaginated(ctx, selector.New(), 2, "")
	require.NoError(t, err)
	first, err := Drain(it)
	require.NoError(t, err)
	assert.Equal(t, 2, meta.FetchedCount)

	it, meta2, err := s.QueryPaginated(ctx, selector.New(), 2, meta.Bookmark)
	require.NoError(t, err)
	second, err := Drain(it)
	require.NoError(t, err)
	assert.Equal(t, 1, meta2.FetchedCount)

	assert.ElementsMatch(t, []string{"a1", "a2", "a3"},
		append(recordIDs(first), recordIDs(second)...))
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	log := logger.New(config.EnvLocal)

	s, err := NewSQLite(path, log)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "a1", []byte(`{"id":"a1"}`)))
	require.NoError(t, s.Close())

	s, err = NewSQLite(path, log)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"a1"}`, string(got))
}
