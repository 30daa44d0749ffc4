// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/framebench/internal/benchmark"
)

// =============================================================================
// REPORT RENDERING
// =============================================================================

const rule = "========================================"

// Generate renders the report for a finished run. The output is ASCII and
// depends only on its arguments.
func Generate(cfg benchmark.Config, results []benchmark.IterationResult) string {
	return Render(Compute(cfg, results))
}

// Render formats an aggregate as the fixed-field text report.
func Render(a Aggregate) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("FRAMEBENCH BENCHMARK REPORT")
	line(rule)
	line("Timestamp: %s", formatTimestamp(a.Timestamp))
	if a.RunID != "" {
		line("Run ID: %s", a.RunID)
	}
	line("Configuration: %d items, %d iterations", a.ItemCount, a.Iterations)
	line("Benchmark Type: %s", a.Type.DisplayName())
	line("Target Frame Time: %.2fms (%s FPS)", a.BudgetMs, formatFloat(a.RefreshRateHz, 0))
	line("")

	line("FRAME PERFORMANCE (pooled across all frames):")
	line("- Avg Frame Time: %.2f ms", a.AvgFrameMs)
	line("- P95 Frame Time: %.2f ms", a.P95FrameMs)
	line("- Actual FPS (clamped): %.2f", a.FPS.Clamped)
	line("- Actual FPS (unclamped): %.2f", a.FPS.Unclamped)
	line("- Theoretical FPS (panel): %s", formatFloat(a.RefreshRateHz, 0))
	line("- Dropped Frames: %.3f%%", a.DroppedPct)
	line("- Janky Frames: %.3f%%", a.JankyPct)
	line("- Performance Grade: %s", a.Grade.Label())
	line("")

	line("INITIAL RENDER (per-iteration):")
	line("- Time to First Frame: %.2f +/- %.2f ms", a.TTFFMeanMs, a.TTFFStdDevMs)
	line("")

	if a.MemoryProfiled {
		line("MEMORY IMPACT (per-iteration, %s):", a.MemoryBasis)
		line("- Memory Delta: %.2f +/- %.2f MB", a.MemoryMeanMB, a.MemoryStdDevMB)
		line("- Memory per Item: %.2f KB/item (1000 B/KB)", a.MemoryPerItemKB)
	} else {
		line("MEMORY IMPACT (per-iteration):")
		line("- Memory Delta: Not available")
		line("- Memory per Item: N/A")
	}
	line("")

	line("RELIABILITY:")
	line("- Coefficient of Variation (Frame Time): %.3f%%", a.FrameTimeCoV)
	line("- Total Frames Analyzed: %d", a.TotalFrames)
	line("- Scroll Distance: %.0f px", a.ScrollDistancePx)
	line("- Avg Scroll Duration: %.0f ms", a.AvgScrollDurationMs)
	line("- Panel Refresh: %s Hz", formatFloat(a.RefreshRateHz, 0))
	line("")

	line("INTERPRETATION:")
	line("%s", a.Verdict())
	line("%s", a.TypeNote())
	line(rule)

	return b.String()
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}
