// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/frameclock"
	"github.com/jeranaias/framebench/internal/stats"
)

var stamp = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleConfig() benchmark.Config {
	cfg := benchmark.DefaultConfig()
	cfg.ItemCount = 100
	cfg.Iterations = 2
	return cfg
}

func sampleResults() []benchmark.IterationResult {
	base := benchmark.IterationResult{
		RunID:             "run-1",
		Type:              benchmark.TypeStaticRender,
		ItemCount:         100,
		TargetFrameTimeMs: 1000.0 / 60,
		RefreshRateHz:     60,
		MemoryProfiled:    true,
		MemoryBasis:       "RSS",
	}

	r1 := base
	r1.Iteration = 1
	r1.FrameSamples = []float64{10, 20, 30}
	r1.TimeToFirstFrameMs = 30
	r1.MemoryDeltaMB = 1
	r1.Timestamp = stamp.Add(-time.Minute)

	r2 := base
	r2.Iteration = 2
	r2.FrameSamples = []float64{10, 10, 10, 10, 10}
	r2.TimeToFirstFrameMs = 40
	r2.MemoryDeltaMB = 3
	r2.Timestamp = stamp

	return []benchmark.IterationResult{r1, r2}
}

const wantReport = `FRAMEBENCH BENCHMARK REPORT
========================================
Timestamp: 2025-03-14T09:26:53Z
Run ID: run-1
Configuration: 100 items, 2 iterations
Benchmark Type: StaticRender
Target Frame Time: 16.67ms (60 FPS)

FRAME PERFORMANCE (pooled across all frames):
- Avg Frame Time: 13.75 ms
- P95 Frame Time: 30.00 ms
- Actual FPS (clamped): 60.00
- Actual FPS (unclamped): 72.73
- Theoretical FPS (panel): 60
- Dropped Frames: 25.000%
- Janky Frames: 12.500%
- Performance Grade: A (Excellent)

INITIAL RENDER (per-iteration):
- Time to First Frame: 35.00 +/- 5.00 ms

MEMORY IMPACT (per-iteration, RSS):
- Memory Delta: 2.00 +/- 1.00 MB
- Memory per Item: 20.00 KB/item (1000 B/KB)

RELIABILITY:
- Coefficient of Variation (Frame Time): 33.333%
- Total Frames Analyzed: 8
- Scroll Distance: 0 px
- Avg Scroll Duration: 0 ms
- Panel Refresh: 60 Hz

INTERPRETATION:
Excellent performance - meeting 60 FPS target
Static rendering performance over a fixed settle window.
========================================
`

func TestGenerate_Snapshot(t *testing.T) {
	got := Generate(sampleConfig(), sampleResults())
	assert.Equal(t, wantReport, got)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg, results := sampleConfig(), sampleResults()

	first := Generate(cfg, results)
	second := Generate(cfg, results)
	assert.Equal(t, first, second)

	for i := 0; i < len(first); i++ {
		if first[i] > 127 {
			t.Fatalf("non-ASCII byte %#x at offset %d", first[i], i)
		}
	}

	// Inputs are untouched.
	assert.Equal(t, []float64{10, 20, 30}, results[0].FrameSamples)
}

func TestGenerate_MemoryUnsupported(t *testing.T) {
	results := sampleResults()
	for i := range results {
		results[i].MemoryProfiled = false
		results[i].MemoryBasis = ""
		results[i].MemoryDeltaMB = 0
	}
	cfg := sampleConfig()
	cfg.Type = benchmark.TypeMemoryUsage

	got := Generate(cfg, results)
	assert.Contains(t, got, "- Memory Delta: Not available\n")
	assert.Contains(t, got, "- Memory per Item: N/A\n")
	assert.Contains(t, got, "Memory profiling unavailable on this platform.")
	assert.NotContains(t, got, "0.00 +/- 0.00 MB")
}

func TestGenerate_Empty(t *testing.T) {
	got := Generate(sampleConfig(), nil)
	assert.Contains(t, got, "Timestamp: N/A\n")
	assert.Contains(t, got, "- Total Frames Analyzed: 0\n")
	assert.Contains(t, got, "- Actual FPS (clamped): 0.00\n")
}

func TestCompute_Grades(t *testing.T) {
	tests := []struct {
		frame   float64
		grade   stats.Grade
		verdict string
	}{
		{16, stats.GradeA, "Excellent"},
		{22, stats.GradeB, "Good"},
		{30, stats.GradeC, "Fair"},
		{40, stats.GradeD, "Poor"},
	}

	for _, tt := range tests {
		t.Run(string(tt.grade), func(t *testing.T) {
			r := sampleResults()[:1]
			r[0].FrameSamples = []float64{tt.frame, tt.frame}
			a := Compute(sampleConfig(), r)
			assert.Equal(t, tt.grade, a.Grade)
			assert.Contains(t, a.Verdict(), tt.verdict)
		})
	}
}

func TestCompute_ScrollFPS(t *testing.T) {
	cfg := sampleConfig()
	cfg.Type = benchmark.TypeScrollPerformance

	r := sampleResults()
	r[0].FrameSamples = make([]float64, 96)
	r[1].FrameSamples = make([]float64, 96)
	for i := range r[0].FrameSamples {
		r[0].FrameSamples[i] = 1000.0 / 60
		r[1].FrameSamples[i] = 1000.0 / 60
	}
	r[0].ScrollDurationMs, r[0].ScrollDistancePx = 1600, 800
	r[1].ScrollDurationMs, r[1].ScrollDistancePx = 1600, 800

	a := Compute(cfg, r)
	assert.InDelta(t, 60.0, a.FPS.Unclamped, 1e-9)
	assert.LessOrEqual(t, a.FPS.Clamped, 60.0)
	assert.Equal(t, 800.0, a.ScrollDistancePx)
	assert.Equal(t, 1600.0, a.AvgScrollDurationMs)

	text := Render(a)
	assert.Contains(t, text, "- Scroll Distance: 800 px\n")
	assert.Contains(t, text, "- Avg Scroll Duration: 1600 ms\n")
	assert.Contains(t, text, "Benchmark Type: ScrollPerformance\n")
}

// TestOrchestratorReport runs three iterations on a virtual clock and checks
// the report accounts for every frame collected.
func TestOrchestratorReport(t *testing.T) {
	clock, err := frameclock.NewVirtualClock(60)
	require.NoError(t, err)

	cfg := benchmark.DefaultConfig()
	cfg.Iterations = 3

	var reports []string
	completes := 0
	orch := benchmark.NewOrchestrator(cfg, clock, nopList{}, benchmark.Options{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Report:     Generate,
		Sink:       func(s string) error { reports = append(reports, s); return nil },
		OnComplete: func([]benchmark.IterationResult) { completes++ },
		Now:        func() time.Time { return stamp },
	})

	out, err := orch.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Results, 3)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, completes)

	want := fmt.Sprintf("- Total Frames Analyzed: %d\n", benchmark.TotalFrames(out.Results))
	assert.Contains(t, reports[0], want)
	assert.True(t, strings.HasPrefix(reports[0], "FRAMEBENCH BENCHMARK REPORT\n"))
	assert.Contains(t, reports[0], "- Dropped Frames: 0.000%\n")
}

type nopList struct{}

func (nopList) ResetToInitialState() error      { return nil }
func (nopList) ScrollableExtentPx() float64     { return 0 }
func (nopList) ApplyScrollOffset(float64) error { return nil }
