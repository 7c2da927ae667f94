// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Object is a single record: column names mapped to values.
type Object map[string]any

// Array is an ordered list of values, usually Objects.
type Array []any

// Kind classifies the value shapes that flow through a Datastore.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
	KindThing
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindThing:
		return "thing"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// kindOf reports the Kind of a result value. Remote results arrive through
// JSON, so the raw map and slice shapes count as objects and arrays, and
// float64 counts as a number alongside the embedded engine's int64.
func kindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNone
	case bool:
		return KindBool
	case int, int64, float64:
		return KindNumber
	case string:
		return KindString
	case Thing:
		return KindThing
	case Object, map[string]any:
		return KindObject
	case Array, []any:
		return KindArray
	default:
		return KindNone
	}
}

// AsObject converts a value to an Object.
func AsObject(v any) (Object, error) {
	switch t := v.(type) {
	case Object:
		return t, nil
	case map[string]any:
		return Object(t), nil
	default:
		return nil, &KindError{Want: KindObject, Got: kindOf(v)}
	}
}

// AsArray converts a value to an Array.
func AsArray(v any) (Array, error) {
	switch t := v.(type) {
	case Array:
		return t, nil
	case []any:
		return Array(t), nil
	default:
		return nil, &KindError{Want: KindArray, Got: kindOf(v)}
	}
}

// AsString converts a value to a string. Things convert to their
// "table:id" form.
func AsString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case Thing:
		return t.String(), nil
	default:
		return "", &KindError{Want: KindString, Got: kindOf(v)}
	}
}

// AsInt converts a numeric value to an int64. JSON transport delivers
// numbers as float64, so whole floats are accepted.
func AsInt(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		if t == float64(int64(t)) {
			return int64(t), nil
		}
	}
	return 0, &KindError{Want: KindNumber, Got: kindOf(v)}
}

// AsBool converts a value to a bool. The engine stores booleans as
// integers, so 0 and 1 are accepted in their int64 and float64 forms.
func AsBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case float64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	}
	return false, &KindError{Want: KindBool, Got: kindOf(v)}
}

// First returns the first element of an array value, or nil when the array
// is empty. Non-array values pass through unchanged.
func First(v any) any {
	arr, err := AsArray(v)
	if err != nil {
		return v
	}
	if len(arr) == 0 {
		return nil
	}
	return arr[0]
}

// Take removes the named field from the Object and returns it.
func (o Object) Take(key string) (any, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	delete(o, key)
	return v, true
}

// TakeString removes the named field and converts it to a string.
func (o Object) TakeString(key string) (string, error) {
	v, ok := o.Take(key)
	if !ok {
		return "", &MissingFieldError{Field: key}
	}
	return AsString(v)
}

// TakeInt removes the named field and converts it to an int64.
func (o Object) TakeInt(key string) (int64, error) {
	v, ok := o.Take(key)
	if !ok {
		return 0, &MissingFieldError{Field: key}
	}
	return AsInt(v)
}

// TakeBool removes the named field and converts it to a bool.
func (o Object) TakeBool(key string) (bool, error) {
	v, ok := o.Take(key)
	if !ok {
		return false, &MissingFieldError{Field: key}
	}
	return AsBool(v)
}

// Thing is a structured record identifier: a table name plus the record's
// unique id within that table.
type Thing struct {
	Table string
	ID    string
}

// ParseThing parses a "table:id" identifier.
func ParseThing(s string) (Thing, error) {
	table, id, ok := strings.Cut(s, ":")
	if !ok || table == "" || id == "" {
		return Thing{}, fmt.Errorf("%w: %q", ErrInvalidThing, s)
	}
	return Thing{Table: table, ID: id}, nil
}

// String returns the "table:id" form.
func (t Thing) String() string {
	return t.Table + ":" + t.ID
}

// MarshalJSON encodes the Thing as its "table:id" string so identifiers
// survive the wire protocol unchanged.
func (t Thing) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
