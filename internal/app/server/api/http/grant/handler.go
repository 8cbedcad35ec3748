package grant

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"assetregistry/internal/domain/asset"
	"assetregistry/internal/domain/grant"
)

type Handler struct {
	service    grant.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service grant.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.accessOp(), h.access)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	stored, err := h.service.CreatePaymentBlock(ctx, input.Body)
	if err != nil {
		if errors.Is(err, grant.ErrMissingParty) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, err
	}
	return &recordOutput{Body: stored}, nil
}

// access answers with granted=false rather than an error status when no live
// grant exists: denial is a normal outcome of the check.
func (h *Handler) access(ctx context.Context, input *accessInput) (*accessOutput, error) {
	resource, granted, err := h.service.CheckAccess(ctx, input.PayerID, input.ResourceID)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, err
	}
	return &accessOutput{Body: accessResponse{Granted: granted, Resource: resource}}, nil
}
