package model

import (
	"bytes"
	"encoding/json"
)

// Keys and defaults of a JSON-LD record.
const (
	ContextKey     = "@context"
	TypeKey        = "@type"
	DefaultContext = "https://schema.org"
)

// Schema is an open JSON-LD record whose keys keep their insertion order
// when serialized. Values may be any JSON-encodable value, including
// nested *Schema records.
//
// A Schema is not safe for concurrent mutation.
type Schema struct {
	keys   []string
	values map[string]any
}

// NewSchema returns a record with @context set to DefaultContext and
// @type set to typ. An empty typ leaves @type unset.
func NewSchema(typ string) *Schema {
	s := &Schema{}
	s.Set(ContextKey, DefaultContext)
	if typ != "" {
		s.Set(TypeKey, typ)
	}
	return s
}

// Set stores value under key and returns the record.
// Replacing an existing key keeps its original position.
func (s *Schema) Set(key string, value any) *Schema {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return s
}

// SetString stores value under key only when value is non-empty.
func (s *Schema) SetString(key, value string) *Schema {
	if value != "" {
		s.Set(key, value)
	}
	return s
}

// Get returns the value stored under key.
func (s *Schema) Get(key string) (any, bool) {
	if s == nil || s.values == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the value under key when it is a string.
func (s *Schema) GetString(key string) string {
	v, _ := s.Get(key)
	str, _ := v.(string)
	return str
}

// Delete removes key from the record.
func (s *Schema) Delete(key string) {
	if _, ok := s.Get(key); !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of keys.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Clone returns a deep copy. Nested records, slices and maps are copied;
// other values are shared.
func (s *Schema) Clone() *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]any, len(s.values)),
	}
	copy(out.keys, s.keys)
	for k, v := range s.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case *Schema:
		return tv.Clone()
	case []*Schema:
		out := make([]*Schema, len(tv))
		for i, s := range tv {
			out[i] = s.Clone()
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return cloneStrings(tv)
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON encodes the record as a JSON object in insertion order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
