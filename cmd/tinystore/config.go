// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the configuration file the CLI looks for in the
// working directory when --config is not given.
const ConfigFileName = "tinystore.yaml"

// Config is the CLI configuration loaded from tinystore.yaml.
type Config struct {
	// Target selects the datastore: memory, file://DIR, tcp://HOST:PORT
	// or unix://PATH.
	Target string `yaml:"target"`

	// Namespace and Database scope the session every statement runs under.
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
}

// DefaultConfig returns the configuration the demo uses out of the box:
// a volatile in-memory engine under the test/test session.
func DefaultConfig() *Config {
	return &Config{
		Target:    "memory",
		Namespace: "test",
		Database:  "test",
	}
}

// ConfigPath returns the configuration file path inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// LoadConfig reads the configuration file at path, or ./tinystore.yaml
// when path is empty. Environment overrides apply after the file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		path = ConfigPath(cwd)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// SaveConfig writes the configuration to path as YAML.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables override file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TINYSTORE_TARGET"); v != "" {
		c.Target = v
	}
	if v := os.Getenv("TINYSTORE_NAMESPACE"); v != "" {
		c.Namespace = v
	}
	if v := os.Getenv("TINYSTORE_DATABASE"); v != "" {
		c.Database = v
	}
}

// resolveConfig loads the configuration, falling back to defaults when no
// file exists, and applies the --target global flag on top.
func resolveConfig(configPath string, globals GlobalFlags) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg = DefaultConfig()
		cfg.applyEnvOverrides()
	}
	if globals.Target != "" {
		cfg.Target = globals.Target
	}
	return cfg
}
