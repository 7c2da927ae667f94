// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    any
		want Kind
	}{
		{nil, KindNone},
		{true, KindBool},
		{int64(7), KindNumber},
		{3.5, KindNumber},
		{"hello", KindString},
		{Thing{Table: "todo", ID: "abc"}, KindThing},
		{Object{"a": 1}, KindObject},
		{map[string]any{"a": 1}, KindObject},
		{Array{1, 2}, KindArray},
		{[]any{1, 2}, KindArray},
	}
	for _, tt := range tests {
		if got := kindOf(tt.v); got != tt.want {
			t.Errorf("kindOf(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAsObject(t *testing.T) {
	obj, err := AsObject(map[string]any{"id": "todo:1"})
	if err != nil {
		t.Fatalf("AsObject(map): %v", err)
	}
	if obj["id"] != "todo:1" {
		t.Errorf("id = %v, want todo:1", obj["id"])
	}

	_, err = AsObject("not an object")
	var ke *KindError
	if !errors.As(err, &ke) {
		t.Fatalf("AsObject(string) error = %v, want *KindError", err)
	}
	if ke.Want != KindObject || ke.Got != KindString {
		t.Errorf("KindError = %v, want object/string", ke)
	}
}

func TestAsArray(t *testing.T) {
	arr, err := AsArray([]any{"a", "b"})
	if err != nil {
		t.Fatalf("AsArray(slice): %v", err)
	}
	if len(arr) != 2 {
		t.Errorf("len = %d, want 2", len(arr))
	}

	if _, err := AsArray(Object{}); err == nil {
		t.Error("AsArray(Object) should fail")
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		v    any
		want string
		ok   bool
	}{
		{"plain", "plain", true},
		{Thing{Table: "todo", ID: "abc"}, "todo:abc", true},
		{42, "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, err := AsString(tt.v)
		if (err == nil) != tt.ok {
			t.Errorf("AsString(%v) err = %v, want ok=%v", tt.v, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("AsString(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		v    any
		want int64
		ok   bool
	}{
		{int64(5), 5, true},
		{3, 3, true},
		{float64(9), 9, true}, // JSON transport delivers int columns as float64
		{2.5, 0, false},
		{"5", 0, false},
	}
	for _, tt := range tests {
		got, err := AsInt(tt.v)
		if (err == nil) != tt.ok {
			t.Errorf("AsInt(%v) err = %v, want ok=%v", tt.v, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("AsInt(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		v    any
		want bool
		ok   bool
	}{
		{true, true, true},
		{int64(1), true, true},
		{int64(0), false, true},
		{float64(1), true, true},
		{int64(2), false, false},
		{"true", false, false},
	}
	for _, tt := range tests {
		got, err := AsBool(tt.v)
		if (err == nil) != tt.ok {
			t.Errorf("AsBool(%v) err = %v, want ok=%v", tt.v, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("AsBool(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFirst(t *testing.T) {
	if got := First(Array{"a", "b"}); got != "a" {
		t.Errorf("First(array) = %v, want a", got)
	}
	if got := First(Array{}); got != nil {
		t.Errorf("First(empty) = %v, want nil", got)
	}
	// Non-arrays pass through unchanged.
	if got := First("scalar"); got != "scalar" {
		t.Errorf("First(scalar) = %v, want scalar", got)
	}
}

func TestObjectTake(t *testing.T) {
	obj := Object{"id": "todo:1", "n": int64(3), "done": true}

	id, err := obj.TakeString("id")
	if err != nil {
		t.Fatalf("TakeString(id): %v", err)
	}
	if id != "todo:1" {
		t.Errorf("id = %q, want todo:1", id)
	}
	if _, ok := obj["id"]; ok {
		t.Error("Take should remove the field")
	}

	n, err := obj.TakeInt("n")
	if err != nil || n != 3 {
		t.Errorf("TakeInt(n) = %d, %v, want 3, nil", n, err)
	}

	done, err := obj.TakeBool("done")
	if err != nil || !done {
		t.Errorf("TakeBool(done) = %v, %v, want true, nil", done, err)
	}

	var mf *MissingFieldError
	if _, err := obj.TakeString("gone"); !errors.As(err, &mf) {
		t.Errorf("TakeString(gone) error = %v, want *MissingFieldError", err)
	} else if mf.Field != "gone" {
		t.Errorf("MissingFieldError.Field = %q, want gone", mf.Field)
	}
}

func TestObjectTakeWrongKind(t *testing.T) {
	obj := Object{"n": "not a number"}
	var ke *KindError
	if _, err := obj.TakeInt("n"); !errors.As(err, &ke) {
		t.Errorf("TakeInt error = %v, want *KindError", err)
	}
}

func TestParseThing(t *testing.T) {
	tests := []struct {
		in    string
		table string
		id    string
		ok    bool
	}{
		{"todo:abc123", "todo", "abc123", true},
		{"todo:a:b", "todo", "a:b", true}, // only the first colon splits
		{"todo", "", "", false},
		{":abc", "", "", false},
		{"todo:", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		th, err := ParseThing(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseThing(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if !tt.ok {
			if !errors.Is(err, ErrInvalidThing) {
				t.Errorf("ParseThing(%q) error = %v, want ErrInvalidThing", tt.in, err)
			}
			continue
		}
		if th.Table != tt.table || th.ID != tt.id {
			t.Errorf("ParseThing(%q) = %+v, want {%s %s}", tt.in, th, tt.table, tt.id)
		}
	}
}

func TestThingJSON(t *testing.T) {
	data, err := json.Marshal(Thing{Table: "todo", ID: "abc"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"todo:abc"` {
		t.Errorf("marshal = %s, want \"todo:abc\"", data)
	}
}
