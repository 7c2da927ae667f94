// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed datastore.
	ErrClosed = errors.New("datastore is closed")

	// ErrNoSession is returned when Execute is called without a usable session.
	ErrNoSession = errors.New("no session")

	// ErrInvalidThing is returned when a record identifier is not of the
	// form "table:id".
	ErrInvalidThing = errors.New("invalid record identifier")
)

// KindError reports a value that does not have the kind a conversion
// expected.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("value is %s, not %s", e.Got, e.Want)
}

// MissingFieldError reports a field absent from an Object.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("field %q not found", e.Field)
}
