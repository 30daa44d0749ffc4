// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report turns benchmark results into the final text report.
//
// Generate is a pure function: the same configuration and results always
// yield the same bytes. The timestamp line is taken from the last result,
// never from the wall clock, so reports can be snapshot tested.
//
// # Usage
//
//	text := report.Generate(cfg, results)
//	agg := report.Compute(cfg, results) // structured form for UIs
package report
