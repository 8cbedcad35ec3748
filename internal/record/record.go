package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names every stored record carries.
const (
	FieldID      = "id"
	FieldDocType = "docType"
)

// Record is a schemaless property bag persisted in the world state. Values
// are strings, numbers (json.Number after decoding), booleans, nested
// mappings or arrays. Required fields are enforced at the service boundary,
// not here.
type Record map[string]any

// ID returns the primary key, or "" when missing or not a string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// DocType returns the schema discriminant, or "" when missing.
func (r Record) DocType() string {
	dt, _ := r[FieldDocType].(string)
	return dt
}

// GetString returns the named field as a string.
func (r Record) GetString(field string) string {
	v, _ := r[field].(string)
	return v
}

// Validate checks the fields every persisted record must carry.
func (r Record) Validate() error {
	if r.ID() == "" {
		return ErrMissingID
	}
	if r.DocType() == "" {
		return ErrMissingDocType
	}
	return nil
}

// Clone returns a deep copy. Stored records are reconstructed on every read,
// so mutations on a clone never leak across operations.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = cloneValue(e)
		}
		return m
	case Record:
		return map[string]any(val.Clone())
	case []any:
		s := make([]any, len(val))
		for i, e := range val {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return val
	}
}

// Decode parses stored bytes into a Record. Numbers are kept as json.Number
// so epoch-second values survive the round trip without float drift. Bytes
// that are valid JSON but not an object are rejected: a record is always a
// field mapping.
func Decode(b []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after record", ErrMalformed)
	}
	return Record(m), nil
}
