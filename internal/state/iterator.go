package state

import (
	"errors"

	"assetregistry/internal/record"
	"assetregistry/internal/selector"
)

var (
	// ErrExhausted signals normal end of enumeration.
	ErrExhausted = errors.New("iterator exhausted")
	// ErrIteratorClosed signals reuse of a closed iterator, a programming
	// error fatal to the operation.
	ErrIteratorClosed = errors.New("iterator already closed")
)

// Iterator is a lazy, forward-only, single-pass sequence of entries.
// Enumeration is restartable only by issuing a new query.
type Iterator interface {
	// Next returns the next entry, ErrExhausted at the end, or
	// ErrIteratorClosed after Close.
	Next() (Entry, error)
	// Close releases the iterator. Exactly one Close is allowed.
	Close() error
}

// pairIterator walks raw key-value pairs, decoding each entry at step time so
// one malformed record surfaces as raw text instead of aborting the rest.
type pairIterator struct {
	pairs  []kv
	sel    *selector.Selector
	pos    int
	closed bool
}

func newPairIterator(pairs []kv, sel *selector.Selector) *pairIterator {
	return &pairIterator{pairs: pairs, sel: sel}
}

func (it *pairIterator) Next() (Entry, error) {
	if it.closed {
		return Entry{}, ErrIteratorClosed
	}
	if it.pos >= len(it.pairs) {
		return Entry{}, ErrExhausted
	}
	p := it.pairs[it.pos]
	it.pos++

	rec, err := record.Decode(p.value)
	if err != nil {
		return Entry{Key: p.key, Raw: string(p.value)}, nil
	}
	return Entry{Key: p.key, Record: it.sel.Project(rec)}, nil
}

func (it *pairIterator) Close() error {
	if it.closed {
		return ErrIteratorClosed
	}
	it.closed = true
	it.pairs = nil
	return nil
}

// Drain consumes an iterator to exhaustion and closes it, returning the
// decoded records and skipping malformed entries. Convenience for callers
// that want the whole result set.
func Drain(it Iterator) ([]record.Record, error) {
	defer it.Close()

	var out []record.Record
	for {
		e, err := it.Next()
		if errors.Is(err, ErrExhausted) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if e.Malformed() {
			continue
		}
		out = append(out, e.Record)
	}
}
