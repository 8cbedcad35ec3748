package asset

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"assetregistry/internal/clock"
	"assetregistry/internal/encoding"
	"assetregistry/internal/record"
	"assetregistry/internal/selector"
	"assetregistry/internal/state"
)

// DocType discriminates asset records in the world state.
const DocType = "asset"

// Well-known asset fields.
const (
	FieldCreatedAt = "created_at"
	FieldWalletID  = "wallet_id"
)

// projection is the fixed field allowlist listing and search operations
// return. id and docType are always retained by the selector.
var projection = []string{
	"first_name",
	"last_name",
	"email",
	"phone",
	FieldWalletID,
	FieldCreatedAt,
}

// Servicer defines the asset operations of the registry contract.
type Servicer interface {
	InitLedger(ctx context.Context, assets []record.Record) error
	CreateAsset(ctx context.Context, r record.Record) (record.Record, error)
	ReadAsset(ctx context.Context, id string) (record.Record, error)
	AssetExists(ctx context.Context, id string) (bool, error)
	UpdateAsset(ctx context.Context, id string, partial record.Record) (record.Record, error)
	GetAllAssets(ctx context.Context) ([]record.Record, error)
	SearchAssets(ctx context.Context, criteria map[string]string) ([]record.Record, error)
	QueryAssetsWithPagination(ctx context.Context, criteria map[string]string, pageSize int, bookmark string) (Page, error)
	GetProfileByWalletID(ctx context.Context, walletID string) (record.Record, error)
}

// Service orchestrates the canonical encoder and the record store to
// implement asset operations.
type Service struct {
	store state.Store
	clock clock.Clock
	log   *slog.Logger
}

func NewService(store state.Store, clk clock.Clock, log *slog.Logger) Servicer {
	return &Service{
		store: store,
		clock: clk,
		log:   log.With("component", "asset_service"),
	}
}

// InitLedger stamps and persists a batch of assets. The first failing write
// aborts the batch; durability of earlier writes is governed by the external
// transaction boundary.
func (s *Service) InitLedger(ctx context.Context, assets []record.Record) error {
	for i, a := range assets {
		stamped := a.Clone()
		stamped[FieldCreatedAt] = clock.Timestamp(s.clock.Now())
		if _, err := s.persist(ctx, stamped); err != nil {
			s.log.Error("init ledger aborted", "index", i, "error", err)
			return fmt.Errorf("init ledger at index %d: %w", i, err)
		}
	}
	s.log.Info("ledger initialized", "assets", len(assets))
	return nil
}

// CreateAsset persists a new asset and returns its canonical record. The
// primary key must be unused.
func (s *Service) CreateAsset(ctx context.Context, r record.Record) (record.Record, error) {
	id := r.ID()
	if id == "" {
		return nil, record.ErrMissingID
	}

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check asset %s: %w", id, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}

	stored, err := s.persist(ctx, r)
	if err != nil {
		return nil, err
	}
	s.log.Info("asset created", "id", id)
	return stored, nil
}

// ReadAsset returns the decoded record for id.
func (s *Service) ReadAsset(ctx context.Context, id string) (record.Record, error) {
	b, err := s.store.Get(ctx, id)
	if errors.Is(err, state.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", id, err)
	}

	r, err := encoding.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", id, err)
	}
	return r, nil
}

// AssetExists reports whether id resolves to a stored record.
func (s *Service) AssetExists(ctx context.Context, id string) (bool, error) {
	return s.store.Exists(ctx, id)
}

// UpdateAsset applies a schema-preserving merge: only fields already present
// on the stored asset are overwritten; keys found only in the patch are
// dropped. id and docType are immutable.
func (s *Service) UpdateAsset(ctx context.Context, id string, partial record.Record) (record.Record, error) {
	stored, err := s.ReadAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := stored.Clone()
	for k, v := range partial {
		if k == record.FieldID || k == record.FieldDocType {
			continue
		}
		if _, ok := merged[k]; ok {
			merged[k] = v
		}
	}

	b, err := encoding.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode asset %s: %w", id, err)
	}
	if err := s.store.Put(ctx, id, b); err != nil {
		return nil, fmt.Errorf("update asset %s: %w", id, err)
	}
	s.log.Info("asset updated", "id", id)
	return merged, nil
}

// GetAllAssets returns every asset record, unpaginated, projected to the
// fixed allowlist.
func (s *Service) GetAllAssets(ctx context.Context) ([]record.Record, error) {
	return s.SearchAssets(ctx, nil)
}

// SearchAssets conjoins docType=asset with caller-supplied equality criteria.
func (s *Service) SearchAssets(ctx context.Context, criteria map[string]string) ([]record.Record, error) {
	sel := buildSelector(criteria)
	it, err := s.store.Query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}

	records, err := state.Drain(it)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}
	return records, nil
}

// QueryAssetsWithPagination is the bookmark-chained variant of SearchAssets.
func (s *Service) QueryAssetsWithPagination(ctx context.Context, criteria map[string]string, pageSize int, bookmark string) (Page, error) {
	sel := buildSelector(criteria)
	it, meta, err := s.store.QueryPaginated(ctx, sel, pageSize, bookmark)
	if err != nil {
		return Page{}, fmt.Errorf("query assets page: %w", err)
	}

	records, err := state.Drain(it)
	if err != nil {
		return Page{}, fmt.Errorf("query assets page: %w", err)
	}
	return Page{
		Records:      records,
		FetchedCount: meta.FetchedCount,
		Bookmark:     meta.Bookmark,
	}, nil
}

// GetProfileByWalletID finds the asset holding the given wallet identifier.
func (s *Service) GetProfileByWalletID(ctx context.Context, walletID string) (record.Record, error) {
	matches, err := s.SearchAssets(ctx, map[string]string{FieldWalletID: walletID})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: wallet %s", ErrNotFound, walletID)
	}
	return matches[0], nil
}

// persist stamps the docType discriminant and a created_at timestamp (when
// absent), canonically encodes and writes the record.
func (s *Service) persist(ctx context.Context, r record.Record) (record.Record, error) {
	stored := r.Clone()
	stored[record.FieldDocType] = DocType
	if _, ok := stored[FieldCreatedAt]; !ok {
		stored[FieldCreatedAt] = clock.Timestamp(s.clock.Now())
	}
	if err := stored.Validate(); err != nil {
		return nil, err
	}

	b, err := encoding.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode asset %s: %w", stored.ID(), err)
	}
	if err := s.store.Put(ctx, stored.ID(), b); err != nil {
		return nil, fmt.Errorf("persist asset %s: %w", stored.ID(), err)
	}
	return stored, nil
}

func buildSelector(criteria map[string]string) *selector.Selector {
	sel := selector.New().Eq(record.FieldDocType, DocType)
	for field, value := range criteria {
		sel.Eq(field, value)
	}
	return sel.Fields(projection...)
}
