// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the framebench command line.
//
// # Commands
//
//   - run: seed the deck list, run the benchmark, print the report
//   - suites: list the standard suites
//   - config init|show|get|set|keys: manage ~/.framebench/config.toml
//   - version: print build information
//
// # Exit Codes
//
//   - 0: success
//   - 1: the run failed, was cancelled, or the report could not be written
//   - 2: bad flags or arguments
//   - 3: invalid configuration
package cli
