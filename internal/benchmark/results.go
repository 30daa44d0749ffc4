// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"fmt"
	"time"

	"github.com/jeranaias/framebench/internal/stats"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// IterationResult is the immutable outcome of one iteration.
type IterationResult struct {
	RunID              string    `json:"run_id"`
	Iteration          int       `json:"iteration"`
	Type               Type      `json:"type"`
	TimeToFirstFrameMs float64   `json:"time_to_first_frame_ms"`
	FrameSamples       []float64 `json:"frame_samples"`
	MemoryDeltaMB      float64   `json:"memory_delta_mb"`
	MemoryProfiled     bool      `json:"memory_profiled"`
	MemoryBasis        string    `json:"memory_basis,omitempty"`
	ItemCount          int       `json:"item_count"`
	ScrollDurationMs   float64   `json:"scroll_duration_ms"`
	ScrollDistancePx   float64   `json:"scroll_distance_px"`
	TargetFrameTimeMs  float64   `json:"target_frame_time_ms"`
	RefreshRateHz      float64   `json:"refresh_rate_hz"`
	Timestamp          time.Time `json:"timestamp"`
	ScrollError        string    `json:"scroll_error,omitempty"` // set when the scroll degraded
}

// =============================================================================
// DERIVED METRICS
// =============================================================================

// FrameCount returns the number of frame samples.
func (r IterationResult) FrameCount() int { return len(r.FrameSamples) }

// AverageFrameTimeMs returns the mean frame duration.
func (r IterationResult) AverageFrameTimeMs() float64 {
	return stats.Mean(r.FrameSamples)
}

// P95FrameTimeMs returns the 95th percentile frame duration.
func (r IterationResult) P95FrameTimeMs() float64 {
	return stats.Percentile(r.FrameSamples, 0.95)
}

// ActualFPS returns the frame rate clamped to the panel refresh rate.
func (r IterationResult) ActualFPS() float64 {
	return stats.ComputeFPS(len(r.FrameSamples), r.ScrollDurationMs,
		r.AverageFrameTimeMs(), r.RefreshRateHz).Clamped
}

// DroppedFramePercent returns the share of frames over budget.
func (r IterationResult) DroppedFramePercent() float64 {
	return stats.DroppedPercent(r.FrameSamples, r.TargetFrameTimeMs)
}

// JankyFramePercent returns the share of frames over 1.5x budget.
func (r IterationResult) JankyFramePercent() float64 {
	return stats.JankyPercent(r.FrameSamples, r.TargetFrameTimeMs)
}

// Grade returns the performance grade of the mean frame time.
func (r IterationResult) Grade() stats.Grade {
	return stats.GradeFor(r.AverageFrameTimeMs(), r.TargetFrameTimeMs)
}

// Summary returns a one-line description for progress output.
func (r IterationResult) Summary() string {
	return fmt.Sprintf("iteration %d: %d frames, avg %s, p95 %s, TTFF %s, grade %s",
		r.Iteration,
		r.FrameCount(),
		FormatMs(r.AverageFrameTimeMs()),
		FormatMs(r.P95FrameTimeMs()),
		FormatMs(r.TimeToFirstFrameMs),
		r.Grade(),
	)
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// FormatMs formats a millisecond value for display.
func FormatMs(ms float64) string {
	if ms == 0 {
		return "N/A"
	}
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms)
	}
	return fmt.Sprintf("%.2fs", ms/1000)
}

// TotalFrames sums frame counts across results.
func TotalFrames(results []IterationResult) int {
	total := 0
	for _, r := range results {
		total += len(r.FrameSamples)
	}
	return total
}
