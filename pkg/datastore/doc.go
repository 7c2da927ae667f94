// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package datastore provides the engine-facing layer of tinystore.
//
// This package defines the Datastore interface that lets application code
// execute SQL statement strings against different engines. The abstraction
// lets the same data-access code operate against an in-process embedded
// database or a remote tinystore server.
//
// # Available Datastores
//
// The package provides these implementations:
//
//   - EmbeddedDatastore: in-process SQLite engine, in memory or on disk
//   - RemoteDatastore: client for a tinystore Server over TCP or a Unix socket
//
// Open selects one from a connection target string:
//
//	ds, err := datastore.Open("memory")
//	ds, err := datastore.Open("file:///var/lib/tinystore")
//	ds, err := datastore.Open("tcp://127.0.0.1:8155")
//	ds, err := datastore.Open("unix:///tmp/tinystore.sock")
//
// # Sessions
//
// Every Execute call carries a Session naming the namespace and database
// the statements run against. Sessions are plain values, built once and
// shared:
//
//	ses := datastore.NewSession("test", "test")
//	res, err := ds.Execute(ctx, "SELECT * FROM todo WHERE id = $id", ses,
//	    datastore.Vars{"id": th})
//
// Statements executed under different sessions see different data.
//
// # Statements and Results
//
// Execute accepts one or more semicolon-separated statements and returns one
// Response per statement, in order. Statements that produce rows yield an
// Array of Object values; other statements yield the affected row count. A
// statement that fails records its error in its own Response and execution
// continues with the next statement.
//
// Named parameters use the $name form and are supplied through Vars. Values
// never need to be spliced into statement text.
//
// # Values
//
// Results are generic values: Object, Array, strings, int64 numbers. The
// conversion helpers (AsObject, AsArray, AsString, AsInt, AsBool, First)
// and the Object Take methods narrow them, returning a KindError when a
// value has the wrong shape and a MissingFieldError when a field is absent.
//
// Record identifiers are "table:id" strings handled by the Thing type.
//
// # Thread Safety
//
// All Datastore implementations are safe for concurrent use.
package datastore
