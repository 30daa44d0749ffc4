// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"time"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/stats"
)

// =============================================================================
// AGGREGATE
// =============================================================================

// Aggregate is the reduced form of a run. Frame statistics are pooled over
// every sample of every iteration; TTFF, memory and CoV are computed per
// iteration and then summarized across iterations.
type Aggregate struct {
	RunID      string
	Timestamp  time.Time
	Type       benchmark.Type
	ItemCount  int
	Iterations int

	RefreshRateHz float64
	BudgetMs      float64

	// Pooled.
	TotalFrames   int
	AvgFrameMs    float64
	P95FrameMs    float64
	FPS           stats.FPS
	DroppedPct    float64
	JankyPct      float64
	Grade         stats.Grade
	TotalScrollMs float64

	// Per iteration, then aggregated.
	TTFFMeanMs      float64
	TTFFStdDevMs    float64
	MemoryProfiled  bool
	MemoryBasis     string
	MemoryMeanMB    float64
	MemoryStdDevMB  float64
	MemoryPerItemKB float64
	FrameTimeCoV    float64

	ScrollDistancePx    float64
	AvgScrollDurationMs float64
}

// Compute reduces results. It does not modify its inputs.
func Compute(cfg benchmark.Config, results []benchmark.IterationResult) Aggregate {
	refresh := cfg.RefreshRateHz
	if refresh <= 0 {
		refresh = benchmark.DefaultRefreshRateHz
	}
	budget := stats.BudgetMs(refresh)

	a := Aggregate{
		Type:          cfg.Type,
		ItemCount:     cfg.ItemCount,
		Iterations:    len(results),
		RefreshRateHz: refresh,
		BudgetMs:      budget,
	}
	if len(results) > 0 {
		last := results[len(results)-1]
		a.RunID = last.RunID
		a.Timestamp = last.Timestamp
	}

	var (
		pooled    []float64
		ttff      = make([]float64, 0, len(results))
		mem       = make([]float64, 0, len(results))
		averages  = make([]float64, 0, len(results))
		distances = make([]float64, 0, len(results))
		durations = make([]float64, 0, len(results))
	)
	for _, r := range results {
		pooled = append(pooled, r.FrameSamples...)
		ttff = append(ttff, r.TimeToFirstFrameMs)
		averages = append(averages, r.AverageFrameTimeMs())
		distances = append(distances, r.ScrollDistancePx)
		durations = append(durations, r.ScrollDurationMs)
		a.TotalScrollMs += r.ScrollDurationMs
		if r.MemoryProfiled {
			a.MemoryProfiled = true
			if a.MemoryBasis == "" {
				a.MemoryBasis = r.MemoryBasis
			}
			mem = append(mem, r.MemoryDeltaMB)
		}
	}

	a.TotalFrames = len(pooled)
	a.AvgFrameMs = stats.Mean(pooled)
	a.P95FrameMs = stats.Percentile(pooled, 0.95)
	a.FPS = stats.ComputeFPS(a.TotalFrames, a.TotalScrollMs, a.AvgFrameMs, refresh)
	a.DroppedPct = stats.DroppedPercent(pooled, budget)
	a.JankyPct = stats.JankyPercent(pooled, budget)
	a.Grade = stats.GradeFor(a.AvgFrameMs, budget)

	a.TTFFMeanMs = stats.Mean(ttff)
	a.TTFFStdDevMs = stats.StdDev(ttff)
	if a.MemoryProfiled {
		a.MemoryMeanMB = stats.Mean(mem)
		a.MemoryStdDevMB = stats.StdDev(mem)
		if cfg.ItemCount > 0 {
			a.MemoryPerItemKB = a.MemoryMeanMB * 1000 / float64(cfg.ItemCount)
		}
	}
	a.FrameTimeCoV = stats.CoefficientOfVariation(averages)

	a.ScrollDistancePx = stats.Mean(distances)
	a.AvgScrollDurationMs = stats.Mean(durations)
	return a
}

// =============================================================================
// INTERPRETATION
// =============================================================================

// Verdict returns the one-line reading of the grade.
func (a Aggregate) Verdict() string {
	switch a.Grade {
	case stats.GradeA:
		return "Excellent performance - meeting " + formatFloat(a.RefreshRateHz, 0) + " FPS target"
	case stats.GradeB:
		return "Good performance - occasional frame drops below target"
	case stats.GradeC:
		return "Fair performance - noticeable frame drops"
	default:
		return "Poor performance - significant frame drops detected"
	}
}

// TypeNote explains what the benchmark type measured.
func (a Aggregate) TypeNote() string {
	switch a.Type {
	case benchmark.TypeScrollPerformance:
		return "Scroll performance at constant velocity. Only frames rendered during the downward scroll are measured."
	case benchmark.TypeMemoryUsage:
		if !a.MemoryProfiled {
			return "Memory profiling unavailable on this platform."
		}
		return "Memory delta is growth over the pre-run baseline, measured as " + a.MemoryBasis + "."
	default:
		return "Static rendering performance over a fixed settle window."
	}
}
