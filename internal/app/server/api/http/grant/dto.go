package grant

import (
	"assetregistry/internal/record"
)

type createInput struct {
	Body record.Record
}

type recordOutput struct {
	Body record.Record
}

type accessInput struct {
	PayerID    string `path:"payerId" doc:"Requester identifier"`
	ResourceID string `path:"resourceId" doc:"Protected resource identifier"`
}

type accessOutput struct {
	Body accessResponse
}

type accessResponse struct {
	Granted  bool          `json:"granted"`
	Resource record.Record `json:"resource,omitempty"`
}
