// Package selector models the declarative field-predicate queries the record
// store evaluates. The operator set is closed: anything outside it fails at
// construction time instead of being silently ignored downstream.
package selector

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"assetregistry/internal/record"
)

// Op is a comparison operator in Mango/CouchDB notation.
type Op string

const (
	OpEq  Op = "$eq"
	OpGt  Op = "$gt"
	OpGte Op = "$gte"
	OpLt  Op = "$lt"
	OpLte Op = "$lte"
)

// Predicate is one field comparison.
type Predicate struct {
	Op    Op
	Value any
}

// NewPredicate validates the operator against the supported set.
func NewPredicate(op Op, value any) (Predicate, error) {
	switch op {
	case OpEq, OpGt, OpGte, OpLt, OpLte:
		return Predicate{Op: op, Value: value}, nil
	default:
		return Predicate{}, fmt.Errorf("%w: %q", ErrUnsupportedOp, op)
	}
}

// Selector is a conjunction of per-field predicates with an optional
// projection list.
type Selector struct {
	preds  map[string]Predicate
	fields []string
}

func New() *Selector {
	return &Selector{preds: make(map[string]Predicate)}
}

// Eq adds an exact-match predicate.
func (s *Selector) Eq(field string, value any) *Selector {
	s.preds[field] = Predicate{Op: OpEq, Value: value}
	return s
}

// Gt adds a greater-than predicate.
func (s *Selector) Gt(field string, value any) *Selector {
	s.preds[field] = Predicate{Op: OpGt, Value: value}
	return s
}

// Where adds a predicate with an arbitrary operator, rejecting unsupported
// ones.
func (s *Selector) Where(field string, op Op, value any) (*Selector, error) {
	p, err := NewPredicate(op, value)
	if err != nil {
		return nil, err
	}
	s.preds[field] = p
	return s, nil
}

// Fields sets the projection list. The id and docType fields are always
// retained so projected records stay addressable.
func (s *Selector) Fields(names ...string) *Selector {
	s.fields = append([]string(nil), names...)
	return s
}

// Empty reports whether the selector matches every record unconditionally.
func (s *Selector) Empty() bool {
	return s == nil || len(s.preds) == 0
}

// Match evaluates the conjunction against a decoded record. A missing field
// never matches.
func (s *Selector) Match(r record.Record) bool {
	if s.Empty() {
		return true
	}
	for field, p := range s.preds {
		got, ok := r[field]
		if !ok {
			return false
		}
		if !evaluate(p, got) {
			return false
		}
	}
	return true
}

// Project returns a copy of the record reduced to the projection list, or the
// record itself when no projection is set.
func (s *Selector) Project(r record.Record) record.Record {
	if s == nil || len(s.fields) == 0 {
		return r
	}
	out := make(record.Record, len(s.fields)+2)
	for _, f := range s.fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	if v, ok := r[record.FieldID]; ok {
		out[record.FieldID] = v
	}
	if v, ok := r[record.FieldDocType]; ok {
		out[record.FieldDocType] = v
	}
	return out
}

// MarshalJSON renders the wire form consumed by rich-query stores:
// {"selector": {field: value | {"$gt": value}}, "fields": [...]}.
func (s *Selector) MarshalJSON() ([]byte, error) {
	sel := make(map[string]any, len(s.preds))
	for field, p := range s.preds {
		if p.Op == OpEq {
			sel[field] = p.Value
		} else {
			sel[field] = map[string]any{string(p.Op): p.Value}
		}
	}
	doc := map[string]any{"selector": sel}
	if len(s.fields) > 0 {
		fields := append([]string(nil), s.fields...)
		sort.Strings(fields)
		doc["fields"] = fields
	}
	return json.Marshal(doc)
}

func (s *Selector) String() string {
	b, err := s.MarshalJSON()
	if err != nil {
		return "<invalid selector>"
	}
	return string(b)
}

func evaluate(p Predicate, got any) bool {
	cmp, ok := compare(got, p.Value)
	if !ok {
		return false
	}
	switch p.Op {
	case OpEq:
		return cmp == 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	default:
		return false
	}
}

// compare orders two scalar values. Values that both parse as numbers are
// compared numerically, which makes epoch-seconds stored as digit strings
// compare correctly against numeric deadlines.
func compare(a, b any) (int, bool) {
	if af, aok := asNumber(a); aok {
		if bf, bok := asNumber(b); bok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		if av == bv {
			return 0, true
		}
		// Ordering booleans is meaningless; only equality is decidable.
		return 1, true
	default:
		return 0, false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
