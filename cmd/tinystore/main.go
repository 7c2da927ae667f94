// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

// Command tinystore is a small walkthrough of calling an embedded
// database from Go: create, fetch, update, delete, and list records in a
// todo table through literal statement strings with named parameters.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitGeneral  = 1
	ExitConfig   = 2
	ExitDatabase = 3
	ExitQuery    = 4
)

// GlobalFlags are options shared by every subcommand. They go before the
// command name: tinystore --json status.
type GlobalFlags struct {
	Target string
	JSON   bool
	Quiet  bool
}

func main() {
	flag.Usage = usage
	flag.CommandLine.SetInterspersed(false)

	configPath := flag.String("config", "", "Path to configuration file")
	target := flag.String("target", "", "Datastore target (memory, file://DIR, tcp://HOST:PORT, unix://PATH)")
	jsonOut := flag.Bool("json", false, "Output as JSON")
	quiet := flag.BoolP("quiet", "q", false, "Suppress non-essential output")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tinystore %s\n", version)
		return
	}

	globals := GlobalFlags{Target: *target, JSON: *jsonOut, Quiet: *quiet}

	if flag.NArg() == 0 {
		usage()
		os.Exit(ExitGeneral)
	}

	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	switch cmd {
	case "demo":
		runDemo(args, *configPath, globals)
	case "init":
		runInit(args, globals)
	case "query":
		runQuery(args, *configPath, globals)
	case "serve":
		runServe(args, *configPath, globals)
	case "status":
		runStatus(args, *configPath, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(ExitGeneral)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tinystore [global options] <command> [options]

A small walkthrough of embedded-database access: records live in a todo
table reached through literal statements with named parameters.

Commands:
  demo      Run the create/get/update/delete/list walkthrough
  init      Create a tinystore.yaml configuration file
  query     Execute a raw statement
  serve     Serve the datastore over TCP or a Unix socket
  status    Show datastore status

Global options (before the command):
      --config PATH     Path to configuration file (default ./tinystore.yaml)
      --target TARGET   Datastore target (memory, file://DIR, tcp://HOST:PORT, unix://PATH)
      --json            Output as JSON
  -q, --quiet           Suppress non-essential output
      --version         Print version and exit

Run 'tinystore <command> --help' for command-specific options.
`)
}
