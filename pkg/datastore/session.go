// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

// Session names the namespace and database that statements execute
// against. Sessions are immutable values; build one and share it across
// goroutines.
type Session struct {
	Namespace string
	Database  string
}

// NewSession returns a session scoped to the given namespace and database.
func NewSession(namespace, database string) *Session {
	return &Session{Namespace: namespace, Database: database}
}

// valid reports whether the session names both a namespace and a database.
func (s *Session) valid() bool {
	return s != nil && s.Namespace != "" && s.Database != ""
}
