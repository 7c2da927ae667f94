// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Server serves an embedded datastore over TCP or a Unix socket, allowing
// multiple processes to share a single engine.
type Server struct {
	ds       *EmbeddedDatastore
	network  string
	addr     string
	logger   *slog.Logger
	listener net.Listener
	wg       sync.WaitGroup
	connMu   sync.Mutex
	conns    map[net.Conn]struct{}
}

// NewServer creates a server for the given datastore. network is "tcp"
// or "unix".
func NewServer(ds *EmbeddedDatastore, network, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		ds:      ds,
		network: network,
		addr:    addr,
		logger:  logger,
	}
}

// Listen binds the listener without accepting connections. Serve calls it
// when needed; tests call it first to learn the bound address.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}

	if s.network == "unix" {
		// Remove stale socket file
		if err := os.Remove(s.addr); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale socket: %w", err)
		}
	}

	ln, err := net.Listen(s.network, s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	if s.network == "unix" {
		// Restrict the socket to its owner.
		if err := os.Chmod(s.addr, 0600); err != nil {
			ln.Close()
			return fmt.Errorf("chmod socket: %w", err)
		}
	}

	s.listener = ln
	return nil
}

// Addr returns the bound listener address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until ctx is cancelled. On shutdown it closes
// all active client connections so handlers unblock promptly.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	ln := s.listener
	s.conns = make(map[net.Conn]struct{})

	defer func() {
		ln.Close()
		if s.network == "unix" {
			os.Remove(s.addr)
		}
	}()

	// Close the listener and all active connections on cancellation.
	go func() {
		<-ctx.Done()
		ln.Close()
		s.connMu.Lock()
		for conn := range s.conns {
			conn.Close()
		}
		s.connMu.Unlock()
	}()

	s.logger.Info("server listening", "network", s.network, "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				done := make(chan struct{})
				go func() { s.wg.Wait(); close(done) }()
				select {
				case <-done:
				case <-time.After(5 * time.Second):
					s.logger.Warn("shutdown timeout, forcing exit")
				}
				return nil
			default:
				return fmt.Errorf("accept: %w", err)
			}
		}

		s.connMu.Lock()
		s.conns[conn] = struct{}{}
		s.connMu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
			s.connMu.Lock()
			delete(s.conns, conn)
			s.connMu.Unlock()
		}()
	}
}

// handleConn reads requests from a client connection and writes responses.
// The context propagates cancellation to datastore operations.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	logger := s.logger.With("conn", uuid.New().String())
	logger.Debug("client connected", "remote", conn.RemoteAddr().String())

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req WireRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.writeResponse(conn, logger, WireResponse{OK: false, Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}

		resp := s.dispatch(ctx, req)
		s.writeResponse(conn, logger, resp)

		if req.Method == MethodClose {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Warn("scanner error", "error", err)
	}
	logger.Debug("client disconnected")
}

// dispatch handles one request. It uses the server's context so datastore
// operations are cancelled on shutdown.
func (s *Server) dispatch(ctx context.Context, req WireRequest) WireResponse {
	switch req.Method {
	case MethodPing:
		return WireResponse{OK: true, ID: req.ID}

	case MethodExecute:
		sess := NewSession(req.Namespace, req.Database)
		responses, err := s.ds.Execute(ctx, req.Text, sess, Vars(req.Vars))
		if err != nil {
			return WireResponse{OK: false, ID: req.ID, Error: err.Error()}
		}
		results := make([]WireResult, len(responses))
		for i, res := range responses {
			if res.Err != nil {
				results[i] = WireResult{Error: res.Err.Error()}
				continue
			}
			results[i] = WireResult{Result: res.Result}
		}
		return WireResponse{OK: true, ID: req.ID, Results: results}

	case MethodClose:
		return WireResponse{OK: true, ID: req.ID}

	default:
		return WireResponse{OK: false, ID: req.ID, Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// writeResponse marshals and writes a response to the connection.
func (s *Server) writeResponse(conn net.Conn, logger *slog.Logger, resp WireResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("marshal response", "error", err)
		return
	}
	if _, err := fmt.Fprintf(conn, "%s\n", data); err != nil {
		logger.Warn("write response", "error", err)
	}
}
