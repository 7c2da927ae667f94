// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/erodriguez000/tinystore/pkg/store"
)

// StatusResult represents the datastore status for JSON output.
type StatusResult struct {
	Target    string    `json:"target"`
	Namespace string    `json:"namespace"`
	Database  string    `json:"database"`
	Connected bool      `json:"connected"`
	Records   int64     `json:"records"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// runStatus reports the configured target, session scope, and record count.
func runStatus(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tinystore status [options]

Description:
  Open the configured datastore and report the connection target, the
  session scope, and the number of records in the todo table.

Options (inherited):
  --json    Output as JSON

Examples:
  tinystore status            Show human-readable status
  tinystore status --json     Output as JSON

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := resolveConfig(configPath, globals)

	result := &StatusResult{
		Target:    cfg.Target,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		Timestamp: time.Now(),
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		Target:    cfg.Target,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
	})
	if err != nil {
		result.Error = err.Error()
		printStatus(result, globals.JSON)
		os.Exit(ExitDatabase)
	}
	defer func() { _ = st.Close() }()
	result.Connected = true

	count, err := st.Count(ctx)
	if err != nil {
		result.Error = err.Error()
		printStatus(result, globals.JSON)
		os.Exit(ExitQuery)
	}
	result.Records = count

	printStatus(result, globals.JSON)
}

func printStatus(result *StatusResult, asJSON bool) {
	if asJSON {
		printJSON(result)
		return
	}

	fmt.Println("tinystore status")
	fmt.Println()
	fmt.Printf("  Target:    %s\n", result.Target)
	fmt.Printf("  Session:   %s/%s\n", result.Namespace, result.Database)
	if result.Error != "" {
		fmt.Printf("  Error:     %s\n", result.Error)
		return
	}
	fmt.Printf("  Records:   %d\n", result.Records)
}
