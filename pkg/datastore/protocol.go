// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

// WireRequest is a request sent from a RemoteDatastore client to a Server.
// Frames are JSON, one per line.
type WireRequest struct {
	Method    string         `json:"method"`
	ID        string         `json:"id"`
	Text      string         `json:"text,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
	Database  string         `json:"database,omitempty"`
	Vars      map[string]any `json:"vars,omitempty"`
}

// WireResponse is a response sent from a Server to a RemoteDatastore client.
type WireResponse struct {
	OK      bool         `json:"ok"`
	ID      string       `json:"id"`
	Results []WireResult `json:"results,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// WireResult carries one statement's outcome across the wire. Result is
// never omitted: an empty result set must arrive as an empty array, not
// as an absent field.
type WireResult struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Wire protocol method constants.
const (
	MethodExecute = "execute"
	MethodPing    = "ping"
	MethodClose   = "close"
)

// DefaultListenAddr is where a tinystore server listens when no address
// is configured.
const DefaultListenAddr = "tcp://127.0.0.1:8155"
