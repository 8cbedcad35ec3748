package asset

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetregistry/internal/clock"
	"assetregistry/internal/config"
	"assetregistry/internal/record"
	"assetregistry/internal/state"
	"assetregistry/internal/utils/logger"
)

var testStart = time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (Servicer, *state.Memory, *clock.Manual) {
	t.Helper()
	store := state.NewMemory()
	clk := clock.NewManual(testStart)
	return NewService(store, clk, logger.New(config.EnvLocal)), store, clk
}

func TestInitLedger(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	err := svc.InitLedger(ctx, []record.Record{
		{"id": "p1", "first_name": "Ann"},
		{"id": "p2", "first_name": "Bob"},
	})
	require.NoError(t, err)

	got, err := svc.ReadAsset(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, DocType, got.DocType())
	assert.Equal(t, "Ann", got.GetString("first_name"))
	assert.Equal(t, "01/02/2026 10:30:00", got.GetString(FieldCreatedAt))
}

func TestInitLedger_OverridesCallerTimestamp(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	err := svc.InitLedger(ctx, []record.Record{
		{"id": "p1", FieldCreatedAt: "31/12/1999 23:59:59"},
	})
	require.NoError(t, err)

	got, err := svc.ReadAsset(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "01/02/2026 10:30:00", got.GetString(FieldCreatedAt))
}

func TestInitLedger_AbortsOnInvalidRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	err := svc.InitLedger(ctx, []record.Record{
		{"id": "p1"},
		{"first_name": "NoID"},
		{"id": "p3"},
	})
	assert.ErrorIs(t, err, record.ErrMissingID)

	// The batch stops at the failing record.
	_, err = svc.ReadAsset(ctx, "p3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAsset(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	stored, err := svc.CreateAsset(ctx, record.Record{"id": "a1", "first_name": "Ann"})
	require.NoError(t, err)

	assert.Equal(t, "a1", stored.ID())
	assert.Equal(t, DocType, stored.DocType())
	assert.Equal(t, "01/02/2026 10:30:00", stored.GetString(FieldCreatedAt))
}

func TestCreateAsset_MissingID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{"first_name": "Ann"})
	assert.ErrorIs(t, err, record.ErrMissingID)
}

func TestCreateAsset_DuplicateLeavesStoredUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{"id": "a1", "first_name": "Ann"})
	require.NoError(t, err)

	_, err = svc.CreateAsset(ctx, record.Record{"id": "a1", "first_name": "Bob"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := svc.ReadAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.GetString("first_name"))
}

func TestReadAsset_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.ReadAsset(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetExists(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	ok, err := svc.AssetExists(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.CreateAsset(ctx, record.Record{"id": "a1"})
	require.NoError(t, err)

	ok, err = svc.AssetExists(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateAsset_SchemaPreservingMerge(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{"id": "a1", "first_name": "Ann"})
	require.NoError(t, err)

	merged, err := svc.UpdateAsset(ctx, "a1", record.Record{
		"first_name": "Bea",
		"extra":      "dropped",
		"id":         "evil",
		"docType":    "other",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bea", merged.GetString("first_name"))
	assert.NotContains(t, merged, "extra")
	assert.Equal(t, "a1", merged.ID())
	assert.Equal(t, DocType, merged.DocType())

	// The merge is persisted, not just returned.
	got, err := svc.ReadAsset(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Bea", got.GetString("first_name"))
	assert.NotContains(t, got, "extra")
}

func TestUpdateAsset_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateAsset(ctx, "nope", record.Record{"first_name": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllAssets_ExcludesOtherDocTypes(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{"id": "a1"})
	require.NoError(t, err)
	_, err = svc.CreateAsset(ctx, record.Record{"id": "a2"})
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "g1",
		[]byte(`{"id":"g1","docType":"paymentDetails"}`)))

	all, err := svc.GetAllAssets(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a1", "a2"}, ids(all))
}

func TestSearchAssets_Criteria(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	for i, name := range []string{"Ann", "Bob", "Ann"} {
		_, err := svc.CreateAsset(ctx, record.Record{
			"id":         fmt.Sprintf("a%d", i),
			"first_name": name,
		})
		require.NoError(t, err)
	}

	matches, err := svc.SearchAssets(ctx, map[string]string{"first_name": "Ann"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a0", "a2"}, ids(matches))
}

func TestSearchAssets_AppliesProjection(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{
		"id":         "a1",
		"first_name": "Ann",
		"ssn":        "000-00-0000",
	})
	require.NoError(t, err)

	matches, err := svc.SearchAssets(ctx, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "Ann", matches[0].GetString("first_name"))
	assert.NotContains(t, matches[0], "ssn")
	assert.Equal(t, "a1", matches[0].ID())
}

func TestGetProfileByWalletID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAsset(ctx, record.Record{"id": "a1", FieldWalletID: "0xabc"})
	require.NoError(t, err)

	got, err := svc.GetProfileByWalletID(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID())

	_, err = svc.GetProfileByWalletID(ctx, "0xmissing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQueryAssetsWithPagination(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	const total = 5
	for i := 0; i < total; i++ {
		_, err := svc.CreateAsset(ctx, record.Record{"id": fmt.Sprintf("a%d", i)})
		require.NoError(t, err)
	}

	var seen []string
	bookmark := ""
	for {
		page, err := svc.QueryAssetsWithPagination(ctx, nil, 2, bookmark)
		require.NoError(t, err)
		if page.FetchedCount == 0 {
			break
		}
		seen = append(seen, ids(page.Records)...)
		bookmark = page.Bookmark
	}

	assert.ElementsMatch(t, []string{"a0", "a1", "a2", "a3", "a4"}, seen)
}

func TestQueryAssetsWithPagination_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.QueryAssetsWithPagination(ctx, nil, 0, "")
	assert.ErrorIs(t, err, state.ErrInvalidPageSize)

	_, err = svc.QueryAssetsWithPagination(ctx, nil, 5, "%%%bogus%%%")
	assert.ErrorIs(t, err, state.ErrInvalidBookmark)
}

func ids(records []record.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID())
	}
	return out
}
