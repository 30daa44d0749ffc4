// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memory samples process memory footprint for the frame benchmark.
//
// Probes are tried in order: resident set size, proportional set size, then
// the Go heap. Linux probes read procfs; other platforms fall through to the
// heap probe.
package memory
