package grant

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"assetregistry/internal/clock"
	"assetregistry/internal/domain/asset"
	"assetregistry/internal/encoding"
	"assetregistry/internal/record"
	"assetregistry/internal/selector"
	"assetregistry/internal/state"
)

// DocType discriminates payment/grant records in the world state.
const DocType = "paymentDetails"

// AccessWindow is the fixed validity of a grant from its creation. Expiry is
// evaluated at read time; grants are never deleted.
const AccessWindow = 10 * time.Minute

// Grant record fields.
const (
	FieldPayerID   = "payeer_id"
	FieldResumeID  = "resume_id"
	FieldCreatedAt = "created_at"
	FieldExpiresAt = "expires_at"
)

// Servicer defines the access-grant operations of the registry contract.
type Servicer interface {
	CreatePaymentBlock(ctx context.Context, details record.Record) (record.Record, error)
	CheckAccess(ctx context.Context, payerID, resourceID string) (record.Record, bool, error)
}

// Service creates time-limited payment records and evaluates them against
// the clock when access to the linked resource is requested.
type Service struct {
	store  state.Store
	assets asset.Servicer
	clock  clock.Clock
	log    *slog.Logger
}

func NewService(store state.Store, assets asset.Servicer, clk clock.Clock, log *slog.Logger) Servicer {
	return &Service{
		store:  store,
		assets: assets,
		clock:  clk,
		log:    log.With("component", "grant_service"),
	}
}

// CreatePaymentBlock persists a grant linking a payer to a resource, valid
// for AccessWindow from now. An id is generated when the caller supplies
// none.
func (s *Service) CreatePaymentBlock(ctx context.Context, details record.Record) (record.Record, error) {
	payerID := details.GetString(FieldPayerID)
	resumeID := details.GetString(FieldResumeID)
	if payerID == "" || resumeID == "" {
		return nil, ErrMissingParty
	}

	now := s.clock.Now()
	stored := details.Clone()
	stored[record.FieldDocType] = DocType
	stored[FieldCreatedAt] = clock.Timestamp(now)
	stored[FieldExpiresAt] = clock.EpochSeconds(now.Add(AccessWindow))
	if stored.ID() == "" {
		stored[record.FieldID] = uuid.NewString()
	}

	b, err := encoding.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode grant %s: %w", stored.ID(), err)
	}
	if err := s.store.Put(ctx, stored.ID(), b); err != nil {
		return nil, fmt.Errorf("persist grant %s: %w", stored.ID(), err)
	}

	s.log.Info("payment block created",
		"id", stored.ID(),
		"payer_id", payerID,
		"resume_id", resumeID,
	)
	return stored, nil
}

// CheckAccess looks for a live grant linking payerID to resourceID. When one
// exists it returns the protected resource record and true; otherwise it
// returns false with no error: denial is a normal outcome, distinct from a
// lookup failure. When several live grants exist the one expiring last wins,
// so the answer does not depend on store iteration order.
func (s *Service) CheckAccess(ctx context.Context, payerID, resourceID string) (record.Record, bool, error) {
	sel := selector.New().
		Eq(record.FieldDocType, DocType).
		Eq(FieldPayerID, payerID).
		Eq(FieldResumeID, resourceID).
		Gt(FieldExpiresAt, clock.EpochSeconds(s.clock.Now()))

	it, err := s.store.Query(ctx, sel)
	if err != nil {
		return nil, false, fmt.Errorf("query grants: %w", err)
	}
	grants, err := state.Drain(it)
	if err != nil {
		return nil, false, fmt.Errorf("query grants: %w", err)
	}

	live := pickLatest(grants)
	if live == nil {
		s.log.Debug("access denied", "payer_id", payerID, "resume_id", resourceID)
		return nil, false, nil
	}

	resource, err := s.assets.ReadAsset(ctx, live.GetString(FieldResumeID))
	if err != nil {
		return nil, false, fmt.Errorf("read granted resource: %w", err)
	}
	return resource, true, nil
}

// pickLatest selects the grant with the greatest expiry deadline. Deadlines
// are epoch-second digit strings, so numeric and lexicographic order agree;
// parsing keeps the comparison honest anyway.
func pickLatest(grants []record.Record) record.Record {
	var best record.Record
	var bestExp int64
	for _, g := range grants {
		exp, err := strconv.ParseInt(g.GetString(FieldExpiresAt), 10, 64)
		if err != nil {
			continue
		}
		if best == nil || exp > bestExp {
			best = g
			bestExp = exp
		}
	}
	return best
}
