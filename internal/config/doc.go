// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for framebench.
//
// Supports TOML, JSON and YAML configuration files, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - BenchmarkSettings: Item count, iterations, benchmark type, suite
//   - TimingConfig: Iteration windows in milliseconds
//   - ClockConfig: Virtual or wall clock frame source and refresh rate
//   - WorkloadConfig: Deck database and list geometry
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (FRAMEBENCH_*)
//   - ~/.framebench/config.toml
//   - ~/.framebench/config.json
//   - ~/.framebench/config.yaml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bc, err := cfg.BenchmarkConfig()
package config
