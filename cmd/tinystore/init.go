// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// runInit creates a new tinystore.yaml configuration file.
func runInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tinystore init [options]

Description:
  Create a new tinystore.yaml configuration file in the current
  directory with sensible defaults.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  tinystore init            Create configuration with defaults
  tinystore init --force    Overwrite existing configuration

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(ExitGeneral)
	}

	configPath := ConfigPath(cwd)

	if _, err := os.Stat(configPath); err == nil && !*force {
		fmt.Fprintf(os.Stderr, "Error: %s already exists\n", configPath)
		fmt.Fprintf(os.Stderr, "Use --force to overwrite\n")
		os.Exit(ExitConfig)
	}

	cfg := DefaultConfig()
	if globals.Target != "" {
		cfg.Target = globals.Target
	}
	if err := SaveConfig(cfg, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfig)
	}

	if !globals.Quiet {
		fmt.Printf("Created %s\n", configPath)
	}
}
