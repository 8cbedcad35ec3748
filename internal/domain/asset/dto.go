package asset

import (
	"assetregistry/internal/record"
)

// Page is one bookmark-delimited slice of query results.
type Page struct {
	Records      []record.Record `json:"records"`
	FetchedCount int             `json:"fetched_count"`
	Bookmark     string          `json:"bookmark"`
}
