package asset

import (
	"assetregistry/internal/domain/asset"
	"assetregistry/internal/record"
)

type initInput struct {
	Body struct {
		Assets []record.Record `json:"assets" doc:"Assets to seed the ledger with"`
	}
}

type initOutput struct {
	Body statusResponse
}

type createInput struct {
	Body record.Record
}

type recordOutput struct {
	Body record.Record
}

type readInput struct {
	ID string `path:"id" doc:"Asset primary key"`
}

type existsInput struct {
	ID string `path:"id" doc:"Asset primary key"`
}

type existsOutput struct {
	Body struct {
		Exists bool `json:"exists"`
	}
}

type updateInput struct {
	ID   string `path:"id" doc:"Asset primary key"`
	Body record.Record
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Records []record.Record `json:"records"`
	Total   int             `json:"total"`
}

type searchInput struct {
	Body struct {
		Criteria map[string]string `json:"criteria" doc:"Equality criteria conjoined with docType=asset"`
	}
}

type queryInput struct {
	Body struct {
		Criteria map[string]string `json:"criteria,omitempty"`
		PageSize int               `json:"page_size" minimum:"1" doc:"Maximum records per page"`
		Bookmark string            `json:"bookmark,omitempty" doc:"Opaque cursor from the previous page"`
	}
}

type queryOutput struct {
	Body asset.Page
}

type walletInput struct {
	WalletID string `path:"walletId" doc:"Wallet identifier"`
}

type statusResponse struct {
	Status string `json:"status"`
}
