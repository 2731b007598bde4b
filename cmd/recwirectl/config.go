// Copyright (c) 2025 recwire authors
// SPDX-License-Identifier: Apache-2.0
// This file is part of the recwire library.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kolbe/recwire/store"
)

// config is recwirectl's on-disk YAML configuration: which store backend to
// open and where.
type config struct {
	Backend string `yaml:"backend"` // "memory", "mmap", or "mmap+compressed"
	Path    string `yaml:"path"`    // log file path, required for mmap backends
}

func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("recwirectl: read config %q: %w", path, err)
	}
	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("recwirectl: parse config %q: %w", path, err)
	}
	if cfg.Backend == "" {
		cfg.Backend = "memory"
	}
	return cfg, nil
}

// openStore builds the store.Store named by cfg.Backend. The returned
// closer is nil for backends that own no file handle.
func openStore(cfg config) (store.Store, func() error, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemory(), nil, nil
	case "mmap":
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("recwirectl: backend %q requires a path", cfg.Backend)
		}
		s, err := store.OpenMMap(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "mmap+compressed":
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("recwirectl: backend %q requires a path", cfg.Backend)
		}
		s, err := store.OpenMMap(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store.NewCompressed(s), s.Close, nil
	default:
		return nil, nil, fmt.Errorf("recwirectl: unknown backend %q", cfg.Backend)
	}
}
