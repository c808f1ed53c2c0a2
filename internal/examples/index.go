package examples

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Index is an ordered list of records that encodes as a JSON object keyed by
// id, preserving the store's insertion order in the output.
type Index []Record

// MarshalJSON encodes the index as {"<id>": {...}, ...} in slice order.
func (idx Index) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rec := range idx {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rec.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an id-keyed object, keeping the order of its keys.
func (idx *Index) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*idx = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("examples index: expected object, got %v", tok)
	}

	out := Index{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("examples index: expected string key, got %v", tok)
		}
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("examples index: decode %q: %w", key, err)
		}
		if rec.ID == "" {
			rec.ID = key
		}
		out = append(out, rec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*idx = out
	return nil
}

// IDs returns the ids in order.
func (idx Index) IDs() []string {
	ids := make([]string, len(idx))
	for i, rec := range idx {
		ids[i] = rec.ID
	}
	return ids
}
