// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// EmbeddedDatastore implements Datastore using an in-process SQLite
// engine. Each namespace/database session pair maps to its own database,
// opened lazily on first use.
type EmbeddedDatastore struct {
	dataDir string
	mu      sync.RWMutex
	dbs     map[sessionKey]*sql.DB
	closed  bool
}

type sessionKey struct {
	namespace string
	database  string
}

// EmbeddedConfig configures the embedded datastore.
type EmbeddedConfig struct {
	// DataDir is the directory where database files live, one per
	// namespace/database pair. Empty keeps every database in memory.
	DataDir string
}

// NewEmbeddedDatastore creates a new embedded datastore.
func NewEmbeddedDatastore(config EmbeddedConfig) (*EmbeddedDatastore, error) {
	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &EmbeddedDatastore{
		dataDir: config.DataDir,
		dbs:     make(map[sessionKey]*sql.DB),
	}, nil
}

// Execute runs the statements in text under the given session.
func (e *EmbeddedDatastore) Execute(ctx context.Context, text string, sess *Session, vars Vars) ([]Response, error) {
	if !sess.valid() {
		return nil, ErrNoSession
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	db, err := e.sessionDB(sess)
	if err != nil {
		return nil, err
	}

	stmts := splitStatements(text)
	responses := make([]Response, 0, len(stmts))
	for _, stmt := range stmts {
		responses = append(responses, runStatement(ctx, db, stmt, vars))
	}
	return responses, nil
}

// Close closes every open database.
func (e *EmbeddedDatastore) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var firstErr error
	for key, db := range e.dbs {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s/%s: %w", key.namespace, key.database, err)
		}
	}
	e.dbs = nil
	return firstErr
}

// sessionDB returns the database for a session, opening it on first use.
func (e *EmbeddedDatastore) sessionDB(sess *Session) (*sql.DB, error) {
	key := sessionKey{sess.Namespace, sess.Database}

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, ErrClosed
	}
	db, ok := e.dbs[key]
	e.mu.RUnlock()
	if ok {
		return db, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if db, ok := e.dbs[key]; ok {
		return db, nil
	}

	db, err := e.openDB(sess)
	if err != nil {
		return nil, err
	}
	e.dbs[key] = db
	return db, nil
}

// openDB opens the SQLite database backing a session. An in-memory
// database is pinned to a single connection so every statement sees the
// same data; a file database gets WAL and a busy timeout.
func (e *EmbeddedDatastore) openDB(sess *Session) (*sql.DB, error) {
	if e.dataDir == "" {
		db, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			return nil, fmt.Errorf("open memory database: %w", err)
		}
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dir := filepath.Join(e.dataDir, sess.Namespace)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create namespace dir: %w", err)
	}
	path := filepath.Join(dir, sess.Database+".db")
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return db, nil
}

// runStatement executes one statement and shapes its Response. Engine
// errors land in the Response so later statements still run.
func runStatement(ctx context.Context, db *sql.DB, stmt string, vars Vars) Response {
	args, err := bindVars(stmt, vars)
	if err != nil {
		return Response{Err: err}
	}

	if returnsRows(stmt) {
		arr, err := queryRows(ctx, db, stmt, args)
		if err != nil {
			return Response{Err: err}
		}
		return Response{Result: arr}
	}

	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return Response{Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Response{Err: err}
	}
	return Response{Result: n}
}

// bindVars builds the named argument list for the parameters a statement
// references. Things bind as their "table:id" strings.
func bindVars(stmt string, vars Vars) ([]any, error) {
	names := paramNames(stmt)
	if len(names) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(names))
	for _, name := range names {
		v, ok := vars[name]
		if !ok {
			return nil, fmt.Errorf("parameter $%s is not bound", name)
		}
		if th, ok := v.(Thing); ok {
			v = th.String()
		}
		args = append(args, sql.Named(name, v))
	}
	return args, nil
}

// queryRows runs a row-producing statement and shapes the rows into an
// Array of Objects.
func queryRows(ctx context.Context, db *sql.DB, stmt string, args []any) (Array, error) {
	rows, err := db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	arr := Array{}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		obj := make(Object, len(cols))
		for i, col := range cols {
			obj[col] = columnValue(vals[i])
		}
		arr = append(arr, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return arr, nil
}

// columnValue normalizes a scanned column value. The driver hands text
// back as []byte, which is not what result consumers want.
func columnValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
