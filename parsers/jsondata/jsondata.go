// Package jsondata wraps decoded JSON values so that callers can chain
// field lookups over loosely shaped documents. Every accessor tolerates
// data that is missing or of the wrong shape and answers with an absent
// value instead of failing; only the caller decides which fields are
// mandatory.
package jsondata

import (
	"encoding/json"
	"io"
)

// Value holds one decoded JSON value. The zero Value is absent, and so is
// a JSON null: lookups on either yield absent again.
type Value struct {
	v any
}

// Of wraps an already decoded value.
func Of(v any) Value {
	return Value{v: v}
}

// Decode unmarshals a JSON document and wraps it. The json error is
// returned untouched.
func Decode(b []byte) (Value, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Value{}, err
	}
	return Value{v: v}, nil
}

// DecodeReader decodes one JSON document from r and wraps it.
func DecodeReader(r io.Reader) (Value, error) {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return Value{}, err
	}
	return Value{v: v}, nil
}

// Exists reports whether the value is there at all.
func (v Value) Exists() bool {
	return v.v != nil
}

// Get returns the named field of an object value. It returns an absent
// Value when v is not an object or the field is not there.
func (v Value) Get(key string) Value {
	m, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	return Value{v: m[key]}
}

// String returns the string content of the value, or "" when the value is
// absent or not a string.
func (v Value) String() string {
	s, _ := v.v.(string)
	return s
}

// Int returns the numeric content of the value truncated to an int, or 0
// when the value is absent or not a number.
func (v Value) Int() int {
	switch n := v.v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// Array returns the elements of an array value, or nil when the value is
// absent or not an array.
func (v Value) Array() []Value {
	a, ok := v.v.([]any)
	if !ok {
		return nil
	}
	vv := make([]Value, len(a))
	for i := range a {
		vv[i] = Value{v: a[i]}
	}
	return vv
}

// Object returns the underlying map of an object value.
func (v Value) Object() (map[string]any, bool) {
	m, ok := v.v.(map[string]any)
	return m, ok
}

// Interface returns the underlying decoded value.
func (v Value) Interface() any {
	return v.v
}
