package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a single schema-less search result row. Field sets vary per
// record and are not known ahead of time, so it is modeled as a string-keyed
// mapping that preserves the field order of the JSON it was decoded from.
// Values are the JSON scalars: string, float64, bool, or nil.
type Record struct {
	keys   []string
	values map[string]any
}

func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set appends the field if new, otherwise overwrites in place.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns field names in wire order. The returned slice is shared;
// callers must not mutate it.
func (r *Record) Keys() []string {
	return r.keys
}

func (r *Record) Len() int {
	return len(r.keys)
}

// TableName returns the record's source table tag, or "" when untagged.
func (r *Record) TableName() string {
	if v, ok := r.values["table_name"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Identifier returns the record's id or _id field rendered as a string.
func (r *Record) Identifier() (string, bool) {
	for _, key := range []string{"id", "_id"} {
		v, ok := r.values[key]
		if !ok || v == nil {
			continue
		}
		return ScalarString(v), true
	}
	return "", false
}

// UnmarshalJSON decodes an object token by token so that iteration order
// matches the wire order, which the renderer relies on.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	r.keys = nil
	r.values = make(map[string]any)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		r.Set(key, normalizeScalar(raw))
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON writes fields back out in insertion order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// normalizeScalar maps json.Number onto float64 so callers see the same
// scalar set regardless of how a record was built. Non-scalar values
// (nested objects, arrays) are kept as-is and stringified at render time;
// the backend is trusted to send flat records.
func normalizeScalar(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// ScalarString is the canonical display form of a record value. Integral
// numbers print without a decimal point, matching their wire form.
func ScalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
