package grant

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "grants-create-payment",
		Method:      http.MethodPost,
		Path:        "/api/payments",
		Summary:     "Create a payment block",
		Description: "Records a payment granting the payer ten minutes of read access to the linked resource.",
		Tags:        []string{"grants"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) accessOp() huma.Operation {
	return huma.Operation{
		OperationID: "grants-check-access",
		Method:      http.MethodGet,
		Path:        "/api/access/{payerId}/{resourceId}",
		Summary:     "Check access to a protected resource",
		Tags:        []string{"grants"},
		Middlewares: h.middleware,
	}
}
