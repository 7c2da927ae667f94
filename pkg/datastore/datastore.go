// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"fmt"
	"strings"
)

// Vars carries named parameter values for a statement string. Keys are
// parameter names without the $ sigil; statements reference them as $name.
type Vars map[string]any

// Response is the outcome of one statement. Statements that produce rows
// set Result to an Array of Object values; other statements set it to the
// affected row count as an int64. A failed statement sets Err instead.
type Response struct {
	Result any
	Err    error
}

// Datastore is the interface every engine implementation provides.
// Execute runs one or more semicolon-separated statements under the given
// session and returns one Response per statement, in order.
type Datastore interface {
	Execute(ctx context.Context, text string, sess *Session, vars Vars) ([]Response, error)

	// Close releases any resources held by the datastore.
	Close() error
}

// Open opens a datastore for a connection target string:
//
//	memory              volatile in-process engine
//	file://DIR          on-disk engine rooted at DIR
//	tcp://HOST:PORT     remote tinystore server over TCP
//	unix://PATH         remote tinystore server over a Unix socket
func Open(target string) (Datastore, error) {
	switch {
	case target == "memory":
		return NewEmbeddedDatastore(EmbeddedConfig{})
	case strings.HasPrefix(target, "file://"):
		dir := strings.TrimPrefix(target, "file://")
		if dir == "" {
			return nil, fmt.Errorf("target %q: missing directory", target)
		}
		return NewEmbeddedDatastore(EmbeddedConfig{DataDir: dir})
	case strings.HasPrefix(target, "tcp://"):
		addr := strings.TrimPrefix(target, "tcp://")
		if addr == "" {
			return nil, fmt.Errorf("target %q: missing address", target)
		}
		return NewRemoteDatastore("tcp", addr)
	case strings.HasPrefix(target, "unix://"):
		path := strings.TrimPrefix(target, "unix://")
		if path == "" {
			return nil, fmt.Errorf("target %q: missing socket path", target)
		}
		return NewRemoteDatastore("unix", path)
	default:
		return nil, fmt.Errorf("unknown datastore target %q", target)
	}
}
