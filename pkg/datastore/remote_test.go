// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package datastore

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// shortSockPath returns a short Unix socket path under /tmp to stay within
// macOS's 104-char sun_path limit. The long paths from t.TempDir() can
// exceed this limit for tests with long names.
func shortSockPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("/tmp", "tinystore-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return filepath.Join(dir, "s.sock")
}

// TestRemoteImplementsDatastore verifies RemoteDatastore satisfies Datastore.
func TestRemoteImplementsDatastore(t *testing.T) {
	var _ Datastore = (*RemoteDatastore)(nil)
}

// waitForSocket polls until the Unix socket is connectable.
func waitForSocket(t *testing.T, path string) {
	t.Helper()
	for i := 0; i < 50; i++ {
		conn, err := net.Dial("unix", path)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("socket %s never appeared", path)
}

// startTestServer creates an in-memory embedded datastore with a todo
// table, serves it on a Unix socket, and returns a cancel function.
func startTestServer(t *testing.T, sockPath string) (*EmbeddedDatastore, context.CancelFunc) {
	t.Helper()

	ds, err := NewEmbeddedDatastore(EmbeddedConfig{})
	if err != nil {
		t.Fatalf("create datastore: %v", err)
	}
	sess := NewSession("test", "test")
	if _, err := ds.Execute(context.Background(),
		"CREATE TABLE todo (id TEXT PRIMARY KEY, title TEXT, body TEXT)", sess, nil); err != nil {
		t.Fatalf("create table: %v", err)
	}

	srv := NewServer(ds, "unix", sockPath, nil)
	ctx, cancel := context.WithCancel(context.Background())

	serveDone := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx)
		close(serveDone)
	}()
	waitForSocket(t, sockPath)

	t.Cleanup(func() {
		cancel()
		<-serveDone // Wait for Serve to finish before closing the datastore
		_ = ds.Close()
	})

	return ds, cancel
}

func TestRemoteRoundTrip(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	if err := remote.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	sess := NewSession("test", "test")
	ctx := context.Background()

	res, err := remote.Execute(ctx,
		"INSERT INTO todo (id, title) VALUES ($id, $title)",
		sess, Vars{"id": Thing{Table: "todo", ID: "r1"}, "title": "remote"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if res[0].Err != nil {
		t.Fatalf("insert: %v", res[0].Err)
	}

	res, err = remote.Execute(ctx, "SELECT * FROM todo WHERE id = $id", sess, Vars{"id": "todo:r1"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	obj, err := AsObject(First(res[0].Result))
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if obj["title"] != "remote" {
		t.Errorf("title = %v, want remote", obj["title"])
	}
}

func TestRemoteNumbersArriveAsFloat64(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	sess := NewSession("test", "test")
	res, err := remote.Execute(context.Background(), "SELECT count(*) AS n FROM todo", sess, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	obj, err := AsObject(First(res[0].Result))
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	// JSON transport turns the engine's int64 into float64; TakeInt
	// must still read it.
	if _, ok := obj["n"].(float64); !ok {
		t.Errorf("n is %T, want float64", obj["n"])
	}
	if n, err := obj.TakeInt("n"); err != nil || n != 0 {
		t.Errorf("TakeInt(n) = %d, %v, want 0, nil", n, err)
	}
}

func TestRemoteStatementError(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	sess := NewSession("test", "test")
	res, err := remote.Execute(context.Background(), "SELECT * FROM nonexistent", sess, nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res[0].Err == nil {
		t.Error("statement error should carry through the wire")
	}
}

func TestRemoteEmptyResultStaysArray(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	sess := NewSession("test", "test")
	res, err := remote.Execute(context.Background(), "SELECT * FROM todo", sess, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	arr, err := AsArray(res[0].Result)
	if err != nil {
		t.Fatalf("empty result should still be an array: %v", err)
	}
	if len(arr) != 0 {
		t.Errorf("got %d rows, want 0", len(arr))
	}
}

func TestRemoteNoSession(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	if _, err := remote.Execute(context.Background(), "SELECT 1", nil, nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("nil session error = %v, want ErrNoSession", err)
	}
}

func TestRemoteConcurrentClients(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	sess := NewSession("test", "test")
	var wg sync.WaitGroup
	errCh := make(chan error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			remote, err := NewRemoteDatastore("unix", sockPath)
			if err != nil {
				errCh <- err
				return
			}
			defer remote.Close()
			for j := 0; j < 5; j++ {
				if _, err := remote.Execute(context.Background(),
					"INSERT INTO todo (id) VALUES ($id)",
					sess, Vars{"id": Thing{Table: "todo", ID: string(rune('a'+n)) + "-" + string(rune('0'+j))}}); err != nil {
					errCh <- err
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent client: %v", err)
	}

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()
	res, err := remote.Execute(context.Background(), "SELECT count(*) AS n FROM todo", sess, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	obj, _ := AsObject(First(res[0].Result))
	if n, _ := obj.TakeInt("n"); n != 40 {
		t.Errorf("count = %d, want 40", n)
	}
}

func TestRemoteClosed(t *testing.T) {
	sockPath := shortSockPath(t)
	startTestServer(t, sockPath)

	remote, err := NewRemoteDatastore("unix", sockPath)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := remote.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	// Closing twice is a no-op.
	if err := remote.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if err := remote.Ping(); !errors.Is(err, ErrClosed) {
		t.Errorf("ping after close error = %v, want ErrClosed", err)
	}
}

func TestServerOverTCP(t *testing.T) {
	ds, err := NewEmbeddedDatastore(EmbeddedConfig{})
	if err != nil {
		t.Fatalf("create datastore: %v", err)
	}

	srv := NewServer(ds, "tcp", "127.0.0.1:0", nil)
	if err := srv.Listen(); err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan struct{})
	go func() {
		_ = srv.Serve(ctx)
		close(serveDone)
	}()
	t.Cleanup(func() {
		cancel()
		<-serveDone
		_ = ds.Close()
	})

	remote, err := NewRemoteDatastore("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer remote.Close()

	if err := remote.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	sess := NewSession("test", "test")
	res, err := remote.Execute(context.Background(), "SELECT 1 AS one", sess, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	obj, _ := AsObject(First(res[0].Result))
	if n, err := obj.TakeInt("one"); err != nil || n != 1 {
		t.Errorf("one = %d, %v, want 1, nil", n, err)
	}
}
