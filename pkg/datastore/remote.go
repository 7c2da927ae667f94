// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
)

// RemoteDatastore implements Datastore by forwarding statements to a
// tinystore Server over TCP or a Unix socket. Multiple processes can
// share a single embedded engine this way.
type RemoteDatastore struct {
	network string
	addr    string
	conn    net.Conn
	reader  *bufio.Reader
	mu      sync.Mutex
	reqID   atomic.Int64
	closed  bool
}

// NewRemoteDatastore connects to the server at the given address.
// network is "tcp" or "unix".
func NewRemoteDatastore(network, addr string) (*RemoteDatastore, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, fmt.Errorf("connect to server at %s: %w", addr, err)
	}

	return &RemoteDatastore{
		network: network,
		addr:    addr,
		conn:    conn,
		reader:  bufio.NewReader(conn),
	}, nil
}

// Execute runs the statements in text on the server.
func (r *RemoteDatastore) Execute(ctx context.Context, text string, sess *Session, vars Vars) ([]Response, error) {
	if !sess.valid() {
		return nil, ErrNoSession
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	resp, err := r.send(WireRequest{
		Method:    MethodExecute,
		Text:      text,
		Namespace: sess.Namespace,
		Database:  sess.Database,
		Vars:      wireVars(vars),
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("execute failed: %s", resp.Error)
	}

	responses := make([]Response, len(resp.Results))
	for i, res := range resp.Results {
		if res.Error != "" {
			responses[i] = Response{Err: errors.New(res.Error)}
			continue
		}
		responses[i] = Response{Result: res.Result}
	}
	return responses, nil
}

// Ping checks that the server is alive and responding.
func (r *RemoteDatastore) Ping() error {
	resp, err := r.send(WireRequest{Method: MethodPing})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("ping failed: %s", resp.Error)
	}
	return nil
}

// Close tells the server the client is going away and disconnects.
func (r *RemoteDatastore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	// Best effort: the connection is being torn down either way.
	if data, err := json.Marshal(WireRequest{Method: MethodClose, ID: "close"}); err == nil {
		_, _ = fmt.Fprintf(r.conn, "%s\n", data)
	}
	return r.conn.Close()
}

// wireVars flattens vars for transport. Things become their "table:id"
// strings, matching how the embedded engine binds them.
func wireVars(vars Vars) map[string]any {
	if len(vars) == 0 {
		return nil
	}
	m := make(map[string]any, len(vars))
	for k, v := range vars {
		if th, ok := v.(Thing); ok {
			m[k] = th.String()
			continue
		}
		m[k] = v
	}
	return m
}

// send serializes a request, writes it to the server, and reads one
// response line. A mutex keeps one request in flight per connection.
func (r *RemoteDatastore) send(req WireRequest) (*WireResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}

	req.ID = fmt.Sprintf("%d", r.reqID.Add(1))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	if _, err := fmt.Fprintf(r.conn, "%s\n", data); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	line, err := r.reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp WireResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
