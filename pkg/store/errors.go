// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package store

import "errors"

var (
	// ErrNoResult means the engine returned no statement results at all.
	ErrNoResult = errors.New("no result")

	// ErrNotCreated means a create statement returned no record.
	ErrNotCreated = errors.New("record not created")

	// ErrNotFound means no record exists for the given identifier.
	ErrNotFound = errors.New("record not found")
)
