package asset

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) initLedgerOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-init-ledger",
		Method:      http.MethodPost,
		Path:        "/api/assets/init",
		Summary:     "Seed the ledger with a batch of assets",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-create",
		Method:      http.MethodPost,
		Path:        "/api/assets",
		Summary:     "Create an asset",
		Description: "Persists a new asset record. Fails with 409 when the id is already taken.",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-list",
		Method:      http.MethodGet,
		Path:        "/api/assets",
		Summary:     "List all assets",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-search",
		Method:      http.MethodPost,
		Path:        "/api/assets/search",
		Summary:     "Search assets by equality criteria",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) queryOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-query",
		Method:      http.MethodPost,
		Path:        "/api/assets/query",
		Summary:     "Query assets with pagination",
		Description: "Returns one bookmark-delimited page. Chain pages by passing the returned bookmark.",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) readOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-read",
		Method:      http.MethodGet,
		Path:        "/api/assets/{id}",
		Summary:     "Read an asset",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) existsOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-exists",
		Method:      http.MethodGet,
		Path:        "/api/assets/{id}/exists",
		Summary:     "Check whether an asset exists",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-update",
		Method:      http.MethodPut,
		Path:        "/api/assets/{id}",
		Summary:     "Update an asset",
		Description: "Schema-preserving merge: only fields already present on the stored asset are overwritten.",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) walletOp() huma.Operation {
	return huma.Operation{
		OperationID: "assets-by-wallet",
		Method:      http.MethodGet,
		Path:        "/api/assets/wallet/{walletId}",
		Summary:     "Find the profile holding a wallet",
		Tags:        []string{"assets"},
		Middlewares: h.middleware,
	}
}
