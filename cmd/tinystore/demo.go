// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/erodriguez000/tinystore/pkg/store"
)

// runDemo walks through the five store operations end to end: create a
// record, fetch it, update another, delete a third, then list what is left.
func runDemo(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tinystore demo [options]

Description:
  Run the create/get/update/delete/list walkthrough against the
  configured datastore and print each step's result.

Options (inherited):
  --target TARGET   Datastore target (default from config, else memory)
  -q, --quiet       Suppress step banners

Examples:
  tinystore demo
  tinystore --target file:///tmp/tinystore demo

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

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

	if err := demo(ctx, st, globals.Quiet); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitQuery)
	}
}

// demo performs the walkthrough steps against an open store.
func demo(ctx context.Context, st *store.Store, quiet bool) error {
	step := func(name string) {
		if !quiet {
			fmt.Printf("--- %s\n", name)
		}
	}

	// Create a record and read it back.
	step("create")
	id, err := st.Create(ctx)
	if err != nil {
		return err
	}
	fmt.Println(id)

	step("get")
	obj, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Println(formatObject(obj))

	// Update a second record in place.
	step("update")
	uid, err := st.Create(ctx)
	if err != nil {
		return err
	}
	got, err := st.Update(ctx, uid)
	if err != nil {
		return err
	}
	fmt.Println(got)

	// Delete a third.
	step("delete")
	did, err := st.Create(ctx)
	if err != nil {
		return err
	}
	gone, err := st.Delete(ctx, did)
	if err != nil {
		return err
	}
	fmt.Println(gone)

	// List everything that remains.
	step("list")
	objs, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range objs {
		fmt.Println(formatObject(o))
	}
	return nil
}
