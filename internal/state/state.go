// Package state abstracts the world-state key-value store the registry runs
// against. Backends share the same contract: point get/put by key plus
// selector-driven range queries returning single-pass iterators.
package state

import (
	"context"
	"errors"

	"assetregistry/internal/record"
	"assetregistry/internal/selector"
)

var (
	// ErrNotFound is returned when a key is absent or holds an empty value.
	ErrNotFound = errors.New("key not found in world state")
	// ErrStoreUnavailable wraps backend I/O failures. The whole operation
	// aborts; reads are safe to retry.
	ErrStoreUnavailable = errors.New("world state unavailable")
	// ErrInvalidBookmark is returned when a pagination cursor does not
	// resolve to a resumption point.
	ErrInvalidBookmark = errors.New("invalid pagination bookmark")
	// ErrInvalidPageSize is returned for non-positive page sizes.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Entry is one enumerated record: either a decoded Record or, when the stored
// bytes fail to parse, the raw text. A malformed entry never aborts the
// enclosing query.
type Entry struct {
	Key    string
	Record record.Record
	Raw    string
}

// Malformed reports whether this entry carries raw text instead of a decoded
// record.
func (e Entry) Malformed() bool {
	return e.Record == nil
}

// Metadata describes a fetched page: how many records it holds and the
// bookmark that resumes after it.
type Metadata struct {
	FetchedCount int    `json:"fetched_count"`
	Bookmark     string `json:"bookmark"`
}

// Store is the key-value world state.
//
// Query result order is store-defined and must not be relied on across
// calls. Iterators are privately owned by the issuing operation and must be
// closed on every exit path.
type Store interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Query(ctx context.Context, sel *selector.Selector) (Iterator, error)
	QueryPaginated(ctx context.Context, sel *selector.Selector, pageSize int, bookmark string) (Iterator, Metadata, error)
	Close() error
}

type kv struct {
	key   string
	value []byte
}

// matchPairs filters raw key-value pairs through the selector. Pairs whose
// bytes do not decode survive only a match-all selector: a predicate cannot
// be evaluated against raw text.
func matchPairs(pairs []kv, sel *selector.Selector) []kv {
	matched := make([]kv, 0, len(pairs))
	for _, p := range pairs {
		rec, err := record.Decode(p.value)
		if err != nil {
			if sel.Empty() {
				matched = append(matched, p)
			}
			continue
		}
		if sel.Match(rec) {
			matched = append(matched, p)
		}
	}
	return matched
}

// paginate bounds matched pairs to one page. The bookmark names the last key
// of the previous page; the page starts strictly after it.
func paginate(pairs []kv, pageSize int, bookmark string) ([]kv, Metadata, error) {
	if pageSize <= 0 {
		return nil, Metadata{}, ErrInvalidPageSize
	}
	after, err := decodeBookmark(bookmark)
	if err != nil {
		return nil, Metadata{}, err
	}

	start := 0
	if after != "" {
		for start < len(pairs) && pairs[start].key <= after {
			start++
		}
	}

	end := start + pageSize
	if end > len(pairs) {
		end = len(pairs)
	}
	page := pairs[start:end]

	meta := Metadata{FetchedCount: len(page)}
	if len(page) > 0 {
		meta.Bookmark = encodeBookmark(page[len(page)-1].key)
	}
	return page, meta, nil
}
