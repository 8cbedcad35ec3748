package state

import (
	"context"
	"sort"
	"sync"

	"assetregistry/internal/selector"
)

// Memory is a map-backed store for tests and the CLI's throwaway mode.
// Iteration order is ascending key order, which callers must treat as
// unspecified per the Store contract.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok || len(v) == 0 {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Query(_ context.Context, sel *selector.Selector) (Iterator, error) {
	return newPairIterator(matchPairs(m.snapshot(), sel), sel), nil
}

func (m *Memory) QueryPaginated(_ context.Context, sel *selector.Selector, pageSize int, bookmark string) (Iterator, Metadata, error) {
	matched := matchPairs(m.snapshot(), sel)
	page, meta, err := paginate(matched, pageSize, bookmark)
	if err != nil {
		return nil, Metadata{}, err
	}
	return newPairIterator(page, sel), meta, nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) snapshot() []kv {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]kv, 0, len(keys))
	for _, k := range keys {
		if len(m.data[k]) == 0 {
			continue
		}
		pairs = append(pairs, kv{key: k, value: m.data[k]})
	}
	return pairs
}
