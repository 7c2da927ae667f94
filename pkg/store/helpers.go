// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package store

import (
	"github.com/erodriguez000/tinystore/pkg/datastore"
)

// MutableColumns lists the todo columns Merge may set. Statement text is
// only ever assembled from these names; values always bind as parameters.
var MutableColumns = map[string]bool{
	"title": true,
	"body":  true,
}

// firstResult unwraps the first statement's result from a response list.
func firstResult(res []datastore.Response) (any, error) {
	if len(res) == 0 {
		return nil, ErrNoResult
	}
	if res[0].Err != nil {
		return nil, res[0].Err
	}
	return res[0].Result, nil
}

// createdID pulls the generated identifier out of an insert's result.
func createdID(res []datastore.Response) (string, error) {
	first, err := firstResult(res)
	if err != nil {
		return "", err
	}
	val := datastore.First(first)
	if val == nil {
		return "", ErrNotCreated
	}
	obj, err := datastore.AsObject(val)
	if err != nil {
		return "", err
	}
	return obj.TakeString("id")
}

// updatedID confirms an update matched a record and returns its id.
// RETURNING yields no row when nothing matched.
func updatedID(res []datastore.Response) (string, error) {
	first, err := firstResult(res)
	if err != nil {
		return "", err
	}
	val := datastore.First(first)
	if val == nil {
		return "", ErrNotFound
	}
	obj, err := datastore.AsObject(val)
	if err != nil {
		return "", err
	}
	return obj.TakeString("id")
}
