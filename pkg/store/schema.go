// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"fmt"
)

// TableStatements returns the statements that create the todo table.
func TableStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS todo (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT ''
)`,
	}
}

// EnsureTable creates the todo table if it does not exist. It is
// idempotent and safe to call multiple times.
func (s *Store) EnsureTable(ctx context.Context) error {
	for _, stmt := range TableStatements() {
		res, err := s.ds.Execute(ctx, stmt, s.ses, nil)
		if err != nil {
			return fmt.Errorf("ensure table: %w", err)
		}
		for _, r := range res {
			if r.Err != nil {
				return fmt.Errorf("ensure table: %w", r.Err)
			}
		}
	}
	return nil
}
