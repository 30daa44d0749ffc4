// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package stats provides the pure statistics used by the frame benchmark.
//
// Every function is stateless and safe for concurrent use. Empty inputs yield
// zero rather than an error so report code never has to special-case an
// iteration that produced no frames.
//
// # Key Functions
//
//   - Mean, StdDev (population), Percentile (nearest rank), FractionOver
//   - CoefficientOfVariation: stddev/mean as a percentage
//   - IsDropped, IsJanky, DroppedPercent, JankyPercent: frame classification
//   - GradeFor: A-D grade of mean frame time against the budget
//   - ComputeFPS: unclamped and panel-clamped frame rate
package stats
