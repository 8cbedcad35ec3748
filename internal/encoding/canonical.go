// Package encoding produces the canonical byte form every replica must agree
// on. Two records with the same logical content encode to identical bytes no
// matter the key insertion order, so state equality can be checked byte-wise.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"assetregistry/internal/record"
)

// Marshal serializes a record deterministically: all mapping keys sorted
// lexicographically at every nesting level, compact output, array order
// preserved (order in arrays is semantically significant).
func Marshal(r record.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, map[string]any(r)); err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal is the inverse of Marshal.
func Unmarshal(b []byte) (record.Record, error) {
	return record.Decode(b)
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case record.Record:
		return encodeObject(buf, map[string]any(val))
	case map[string]any:
		return encodeObject(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case json.Number:
		if _, err := val.Float64(); err != nil {
			return fmt.Errorf("invalid number %q: %w", string(val), err)
		}
		buf.WriteString(string(val))
	default:
		// Strings, booleans and native numbers have a single compact JSON
		// rendering already.
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

func encodeObject(buf *bytes.Buffer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		if err := encodeValue(buf, m[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
