// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Package store is a small data-access layer over a datastore.Datastore:
// five fixed statement templates for creating, fetching, updating,
// deleting, and listing todo records, plus conversion of the results into
// plain values.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/erodriguez000/tinystore/pkg/datastore"
)

// Default session scope for the walkthrough.
const (
	DefaultNamespace = "test"
	DefaultDatabase  = "test"
)

// Statement templates. All variable data travels through named
// parameters; the templates themselves never change at runtime.
const (
	createStmt = `INSERT INTO todo (id, title, body) VALUES ('todo:' || lower(hex(randomblob(10))), 'Hello, world!', 'Hello, tinystore!') RETURNING id`

	createItemStmt = `INSERT INTO todo (id, title, body) VALUES ('todo:' || lower(hex(randomblob(10))), $title, $body) RETURNING id`

	getStmt = `SELECT * FROM todo WHERE id = $id`

	updateStmt = `UPDATE todo SET title = 'Updated!', body = 'An Updated message!' WHERE id = $id RETURNING id`

	deleteStmt = `DELETE FROM todo WHERE id = $id`

	listStmt = `SELECT * FROM todo`

	countStmt = `SELECT count(*) AS total FROM todo`
)

// Config holds configuration for opening a Store.
type Config struct {
	// Target selects the engine: "memory", "file://DIR", "tcp://HOST:PORT"
	// or "unix://PATH". Empty means "memory".
	Target string

	// Namespace and Database scope the session. Both default to "test".
	Namespace string
	Database  string

	// Logger receives operational logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is a small data-access object: an engine handle plus the session
// every statement executes under. It is safe for concurrent use.
type Store struct {
	ds     datastore.Datastore
	ses    *datastore.Session
	logger *slog.Logger
}

// Open opens the datastore for cfg.Target, builds the session, and makes
// sure the todo table exists.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Target == "" {
		cfg.Target = "memory"
	}

	ds, err := datastore.Open(cfg.Target)
	if err != nil {
		return nil, err
	}

	st := New(ds, sessionFor(cfg), cfg.Logger)
	if err := st.EnsureTable(ctx); err != nil {
		_ = ds.Close()
		return nil, err
	}

	st.logger.Debug("store opened",
		"target", cfg.Target,
		"namespace", st.ses.Namespace,
		"database", st.ses.Database)
	return st, nil
}

// New wraps an existing datastore and session. The todo table must
// already exist; Open takes care of that for the common case.
func New(ds datastore.Datastore, ses *datastore.Session, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{ds: ds, ses: ses, logger: logger}
}

func sessionFor(cfg Config) *datastore.Session {
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	db := cfg.Database
	if db == "" {
		db = DefaultDatabase
	}
	return datastore.NewSession(ns, db)
}

// Close releases the underlying datastore.
func (s *Store) Close() error {
	return s.ds.Close()
}

// Create inserts the walkthrough's fixed record and returns its generated
// identifier.
func (s *Store) Create(ctx context.Context) (string, error) {
	res, err := s.ds.Execute(ctx, createStmt, s.ses, nil)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}

	id, err := createdID(res)
	if err != nil {
		return "", fmt.Errorf("create: %w", err)
	}
	return id, nil
}

// CreateItem inserts a record with the given title and body and returns
// its generated identifier.
func (s *Store) CreateItem(ctx context.Context, title, body string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("create item: title is required")
	}

	vars := datastore.Vars{"title": title, "body": body}
	res, err := s.ds.Execute(ctx, createItemStmt, s.ses, vars)
	if err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}

	id, err := createdID(res)
	if err != nil {
		return "", fmt.Errorf("create item: %w", err)
	}
	return id, nil
}

// Get fetches one record by its "todo:..." identifier.
func (s *Store) Get(ctx context.Context, id string) (datastore.Object, error) {
	th, err := datastore.ParseThing(id)
	if err != nil {
		return nil, err
	}

	res, err := s.ds.Execute(ctx, getStmt, s.ses, datastore.Vars{"id": th})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}

	first, err := firstResult(res)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	val := datastore.First(first)
	if val == nil {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	obj, err := datastore.AsObject(val)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return obj, nil
}

// Update rewrites a record's title and body with the walkthrough's fixed
// values and returns the record identifier.
func (s *Store) Update(ctx context.Context, id string) (string, error) {
	th, err := datastore.ParseThing(id)
	if err != nil {
		return "", err
	}

	res, err := s.ds.Execute(ctx, updateStmt, s.ses, datastore.Vars{"id": th})
	if err != nil {
		return "", fmt.Errorf("update %s: %w", id, err)
	}

	got, err := updatedID(res)
	if err != nil {
		return "", fmt.Errorf("update %s: %w", id, err)
	}
	return got, nil
}

// Merge updates the given columns of a record and returns its identifier.
// Only columns listed in MutableColumns may be set.
func (s *Store) Merge(ctx context.Context, id string, fields map[string]any) (string, error) {
	th, err := datastore.ParseThing(id)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", fmt.Errorf("merge %s: no fields given", id)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		if !MutableColumns[col] {
			return "", fmt.Errorf("merge %s: column %q is not mergeable", id, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	vars := datastore.Vars{"id": th}
	for i, col := range cols {
		sets[i] = col + " = $" + col
		vars[col] = fields[col]
	}
	stmt := "UPDATE todo SET " + strings.Join(sets, ", ") + " WHERE id = $id RETURNING id"

	res, err := s.ds.Execute(ctx, stmt, s.ses, vars)
	if err != nil {
		return "", fmt.Errorf("merge %s: %w", id, err)
	}

	got, err := updatedID(res)
	if err != nil {
		return "", fmt.Errorf("merge %s: %w", id, err)
	}
	return got, nil
}

// Delete removes a record. The deleted payload is discarded; the
// identifier comes back as confirmation.
func (s *Store) Delete(ctx context.Context, id string) (string, error) {
	th, err := datastore.ParseThing(id)
	if err != nil {
		return "", err
	}

	res, err := s.ds.Execute(ctx, deleteStmt, s.ses, datastore.Vars{"id": th})
	if err != nil {
		return "", fmt.Errorf("delete %s: %w", id, err)
	}
	if _, err := firstResult(res); err != nil {
		return "", fmt.Errorf("delete %s: %w", id, err)
	}
	return id, nil
}

// List returns every record in the todo table.
func (s *Store) List(ctx context.Context) ([]datastore.Object, error) {
	res, err := s.ds.Execute(ctx, listStmt, s.ses, nil)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	first, err := firstResult(res)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	arr, err := datastore.AsArray(first)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	objs := make([]datastore.Object, 0, len(arr))
	for _, v := range arr {
		obj, err := datastore.AsObject(v)
		if err != nil {
			return nil, fmt.Errorf("list: %w", err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

// Count returns the number of records in the todo table.
func (s *Store) Count(ctx context.Context) (int64, error) {
	res, err := s.ds.Execute(ctx, countStmt, s.ses, nil)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}

	first, err := firstResult(res)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	obj, err := datastore.AsObject(datastore.First(first))
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	n, err := obj.TakeInt("total")
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// RawQuery executes a raw statement string under the store's session.
func (s *Store) RawQuery(ctx context.Context, text string, vars datastore.Vars) ([]datastore.Response, error) {
	return s.ds.Execute(ctx, text, s.ses, vars)
}
