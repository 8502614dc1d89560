// Package fieldpath reads optional values out of loosely typed JSON
// documents using dotted key paths such as "user.email".
//
// Webhook senders disagree on schema, so every accessor takes an ordered
// list of candidate paths and returns the first one that resolves. Absence
// is reported explicitly through a boolean rather than a nil value.
package fieldpath

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Object is a decoded JSON object. Numbers are kept as json.Number so that
// identifiers survive without float rounding.
type Object map[string]any

// Parse decodes data into an Object. It never fails: malformed JSON, an
// empty body or a non-object top level value all yield an empty Object.
func Parse(data []byte) Object {
	obj, err := Decode(data)
	if err != nil {
		return Object{}
	}
	return obj
}

// Decode is the strict form of Parse, used when the caller wants to know
// why a body was rejected.
func Decode(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("fieldpath: trailing data after JSON value")
	}

	obj, ok := AsObject(v)
	if !ok {
		return nil, errors.New("fieldpath: top level value is not an object")
	}
	return obj, nil
}

// AsObject reports whether v is a JSON object.
func AsObject(v any) (Object, bool) {
	switch m := v.(type) {
	case Object:
		return m, true
	case map[string]any:
		return Object(m), true
	default:
		return nil, false
	}
}

// Lookup returns the value at the first path that resolves to a non-null
// value. A missing key or a non-object at any intermediate segment moves on
// to the next candidate.
func (o Object) Lookup(paths ...string) (any, bool) {
	for _, p := range paths {
		if v, ok := o.walk(p); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String returns the first candidate that resolves to a non-empty scalar,
// rendered as text. Strings are trimmed. Objects, arrays, false and numeric
// zero are skipped.
func (o Object) String(paths ...string) (string, bool) {
	for _, p := range paths {
		v, ok := o.walk(p)
		if !ok || isFalsy(v) {
			continue
		}
		if s, ok := Text(v); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

func isFalsy(v any) bool {
	switch t := v.(type) {
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case float64:
		return t == 0
	case int:
		return t == 0
	case int64:
		return t == 0
	default:
		return false
	}
}

// Slice returns the first candidate that resolves to a JSON array.
func (o Object) Slice(paths ...string) ([]any, bool) {
	for _, p := range paths {
		v, ok := o.walk(p)
		if !ok {
			continue
		}
		if arr, ok := v.([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

func (o Object) walk(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	var cur any = o
	for _, key := range strings.Split(path, ".") {
		m, ok := AsObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Text renders a scalar JSON value as a string. It returns false for null,
// objects and arrays.
func Text(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
