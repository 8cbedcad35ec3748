package asset

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"assetregistry/internal/domain/asset"
	"assetregistry/internal/record"
	"assetregistry/internal/state"
)

type Handler struct {
	service    asset.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service asset.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.initLedgerOp(), h.initLedger)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.searchOp(), h.search)
	huma.Register(api, h.queryOp(), h.query)
	huma.Register(api, h.readOp(), h.read)
	huma.Register(api, h.existsOp(), h.exists)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.walletOp(), h.wallet)
}

func (h *Handler) initLedger(ctx context.Context, input *initInput) (*initOutput, error) {
	if err := h.service.InitLedger(ctx, input.Body.Assets); err != nil {
		return nil, mapError(err)
	}
	return &initOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	stored, err := h.service.CreateAsset(ctx, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &recordOutput{Body: stored}, nil
}

func (h *Handler) read(ctx context.Context, input *readInput) (*recordOutput, error) {
	rec, err := h.service.ReadAsset(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &recordOutput{Body: rec}, nil
}

func (h *Handler) exists(ctx context.Context, input *existsInput) (*existsOutput, error) {
	exists, err := h.service.AssetExists(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	out := &existsOutput{}
	out.Body.Exists = exists
	return out, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*recordOutput, error) {
	merged, err := h.service.UpdateAsset(ctx, input.ID, input.Body)
	if err != nil {
		return nil, mapError(err)
	}
	return &recordOutput{Body: merged}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	records, err := h.service.GetAllAssets(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &listOutput{Body: listResponse{Records: records, Total: len(records)}}, nil
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*listOutput, error) {
	records, err := h.service.SearchAssets(ctx, input.Body.Criteria)
	if err != nil {
		return nil, mapError(err)
	}
	return &listOutput{Body: listResponse{Records: records, Total: len(records)}}, nil
}

func (h *Handler) query(ctx context.Context, input *queryInput) (*queryOutput, error) {
	page, err := h.service.QueryAssetsWithPagination(ctx, input.Body.Criteria, input.Body.PageSize, input.Body.Bookmark)
	if err != nil {
		return nil, mapError(err)
	}
	return &queryOutput{Body: page}, nil
}

func (h *Handler) wallet(ctx context.Context, input *walletInput) (*recordOutput, error) {
	rec, err := h.service.GetProfileByWalletID(ctx, input.WalletID)
	if err != nil {
		return nil, mapError(err)
	}
	return &recordOutput{Body: rec}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, asset.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, asset.ErrAlreadyExists):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, record.ErrMissingID), errors.Is(err, record.ErrMissingDocType):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, state.ErrInvalidBookmark), errors.Is(err, state.ErrInvalidPageSize):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return err
	}
}
