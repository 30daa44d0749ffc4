// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides crash-safe file writing for framebench.
//
// Reports and configuration files are written through a temp file that is
// synced and renamed over the target, so an interrupted run never leaves a
// truncated report behind.
//
// # Usage
//
//	err := util.AtomicWriteFile(path, []byte(report), 0644)
package util
