// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/erodriguez000/tinystore/pkg/datastore"
	"github.com/erodriguez000/tinystore/pkg/store"
)

// runQuery executes a raw statement string for debugging.
func runQuery(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tinystore query <sql> [options]

Description:
  Execute a raw statement against the configured datastore and print
  the rows it returns. This is a debugging tool for inspecting the
  underlying data.

Options (inherited):
  --json    Output as JSON

Examples:
  tinystore query "SELECT * FROM todo"
  tinystore query "SELECT count(*) AS total FROM todo"

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		fmt.Fprintf(os.Stderr, "Error: query argument required\n")
		fmt.Fprintf(os.Stderr, "Usage: tinystore query \"<sql>\"\n")
		os.Exit(ExitQuery)
	}

	text := strings.Join(remaining, " ")

	cfg := resolveConfig(configPath, globals)

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		Target:    cfg.Target,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open store: %v\n", err)
		os.Exit(ExitDatabase)
	}
	defer func() { _ = st.Close() }()

	responses, err := st.RawQuery(ctx, text, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Query error: %v\n", err)
		os.Exit(ExitQuery)
	}

	if globals.JSON {
		printJSON(responses)
		return
	}

	for i, res := range responses {
		if len(responses) > 1 {
			fmt.Printf("-- statement %d\n", i+1)
		}
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Statement error: %v\n", res.Err)
			os.Exit(ExitQuery)
		}
		printResult(res.Result)
	}
}

// printResult renders one statement's result: rows as a tab-separated
// table, anything else as a plain value.
func printResult(result any) {
	arr, err := datastore.AsArray(result)
	if err != nil {
		fmt.Printf("%v\n", result)
		return
	}

	fmt.Printf("Found %d results\n\n", len(arr))
	if len(arr) == 0 {
		fmt.Println("No results.")
		return
	}

	// Column order comes from the first row, sorted for stable output.
	first, err := datastore.AsObject(arr[0])
	if err != nil {
		for _, v := range arr {
			fmt.Printf("%v\n", v)
		}
		return
	}
	cols := make([]string, 0, len(first))
	for col := range first {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	fmt.Println(strings.Join(cols, "\t"))
	fmt.Println(strings.Repeat("-", 60))

	for _, v := range arr {
		obj, err := datastore.AsObject(v)
		if err != nil {
			fmt.Printf("%v\n", v)
			continue
		}
		vals := make([]string, len(cols))
		for i, col := range cols {
			vals[i] = formatValue(obj[col])
		}
		fmt.Println(strings.Join(vals, "\t"))
	}
}
