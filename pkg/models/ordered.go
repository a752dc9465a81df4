package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// OrderedMap is a string map that remembers insertion order.
// A nil *OrderedMap behaves as an empty map for reads.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap creates an empty ordered map
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// OrderedMapOf builds a map from alternating key, value arguments
func OrderedMapOf(pairs ...string) *OrderedMap {
	m := NewOrderedMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (m *OrderedMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key
func (m *OrderedMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *OrderedMap) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys
func (m *OrderedMap) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Clone returns an independent copy
func (m *OrderedMap) Clone() *OrderedMap {
	c := NewOrderedMap()
	if m == nil {
		return c
	}
	c.keys = make([]string, len(m.keys))
	copy(c.keys, m.keys)
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Map returns the contents as a plain map
func (m *OrderedMap) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Equal reports whether both maps hold the same keys, values and order
func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if other.keys[i] != k || other.values[k] != m.values[k] {
			return false
		}
	}
	return true
}

// MarshalJSON writes the map as a JSON object in insertion order
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONString(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONString(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat JSON object, keeping key order.
// Scalar values are stored as their string form; nested values are rejected.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	parsed, err := ParseOrderedJSON(data)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// ParseOrderedJSON parses a flat JSON object into an OrderedMap
func ParseOrderedJSON(data []byte) (*OrderedMap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object of strings")
	}

	m := NewOrderedMap()
	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			m.Set(key.String(), value.String())
		case gjson.Null:
			m.Set(key.String(), "")
		default:
			parseErr = fmt.Errorf("value of %q is not a string", key.String())
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return m, nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// AppendJSONString appends s as a JSON string literal without HTML escaping
func AppendJSONString(buf *bytes.Buffer, s string) error {
	return writeJSONString(buf, s)
}
