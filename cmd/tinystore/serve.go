// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/erodriguez000/tinystore/pkg/datastore"
)

// runServe runs the wire server in the foreground, backing it with an
// embedded datastore, until SIGINT or SIGTERM.
func runServe(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", datastore.DefaultListenAddr, "Listen address (tcp://HOST:PORT or unix://PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tinystore serve [options]

Description:
  Serve the embedded datastore over TCP or a Unix socket so other
  processes can reach it with a tcp:// or unix:// target. Runs in the
  foreground; stop with Ctrl-C.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tinystore serve
  tinystore serve --listen tcp://0.0.0.0:8155
  tinystore serve --listen unix:///tmp/tinystore.sock
  tinystore --target file:///var/lib/tinystore serve

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	network, addr, err := splitListenAddr(*listen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfig)
	}

	cfg := resolveConfig(configPath, globals)

	// The server wraps the embedded engine directly; serving a remote
	// target would just add a hop.
	var embeddedCfg datastore.EmbeddedConfig
	switch {
	case cfg.Target == "" || cfg.Target == "memory":
	case strings.HasPrefix(cfg.Target, "file://"):
		embeddedCfg.DataDir = strings.TrimPrefix(cfg.Target, "file://")
	default:
		fmt.Fprintf(os.Stderr, "Error: serve needs a memory or file:// target, not %q\n", cfg.Target)
		os.Exit(ExitConfig)
	}

	ds, err := datastore.NewEmbeddedDatastore(embeddedCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open datastore: %v\n", err)
		os.Exit(ExitDatabase)
	}

	srv := datastore.NewServer(ds, network, addr, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "\ntinystore server received %s, shutting down...\n", sig)
		cancel()
	}()

	if !globals.Quiet {
		fmt.Fprintf(os.Stderr, "tinystore server starting (PID %d)\n", os.Getpid())
		fmt.Fprintf(os.Stderr, "  Listen: %s\n", *listen)
	}

	if err := srv.Serve(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: serve failed: %v\n", err)
		os.Exit(ExitGeneral)
	}

	_ = ds.Close()
	if !globals.Quiet {
		fmt.Fprintf(os.Stderr, "tinystore server stopped.\n")
	}
}

// splitListenAddr parses a tcp:// or unix:// listen address into a
// network/address pair for net.Listen.
func splitListenAddr(listen string) (network, addr string, err error) {
	switch {
	case strings.HasPrefix(listen, "tcp://"):
		addr = strings.TrimPrefix(listen, "tcp://")
		if addr == "" {
			return "", "", fmt.Errorf("listen address %q: missing host:port", listen)
		}
		return "tcp", addr, nil
	case strings.HasPrefix(listen, "unix://"):
		addr = strings.TrimPrefix(listen, "unix://")
		if addr == "" {
			return "", "", fmt.Errorf("listen address %q: missing socket path", listen)
		}
		return "unix", addr, nil
	default:
		return "", "", fmt.Errorf("listen address %q: want tcp://HOST:PORT or unix://PATH", listen)
	}
}
