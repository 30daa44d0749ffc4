// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeranaias/framebench/internal/frameclock"
	"github.com/jeranaias/framebench/internal/memory"
)

// =============================================================================
// ITERATION RUNNER
// =============================================================================

// IterationRunner performs a single measured iteration.
//
// Note: IterationRunner is not thread-safe and should not be used concurrently
// from multiple goroutines.
type IterationRunner struct {
	cfg       Config
	loop      frameclock.Loop
	workload  Workload
	collector *Collector
	driver    *ScrollDriver
	memory    *memory.Sampler
	logger    *slog.Logger
	now       func() time.Time
	runID     string
}

// NewIterationRunner wires a runner. mem may be nil when memory is not
// profiled.
func NewIterationRunner(cfg Config, loop frameclock.Loop, w Workload, mem *memory.Sampler, logger *slog.Logger) *IterationRunner {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &IterationRunner{
		cfg:       cfg,
		loop:      loop,
		workload:  w,
		collector: NewCollector(loop),
		driver:    NewScrollDriver(loop, cfg.ScrollSpeedPxPerSec),
		memory:    mem,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes iteration number i (1-based). It always produces a result:
// workload failures, panics included, degrade the iteration rather than
// abort it.
func (r *IterationRunner) Run(ctx context.Context, i int) IterationResult {
	// 1. Reset and let layout settle for one refresh.
	if err := resetWorkload(r.workload); err != nil {
		r.logger.Warn("workload reset failed", "iteration", i, "error", err)
	}
	if _, err := frameclock.WaitTicks(ctx, r.loop, 1); err != nil {
		r.logger.Warn("layout settle interrupted", "iteration", i, "error", err)
	}

	// 2-3. Arm the collector, then start the first-frame probe alongside the
	// settle or pre-roll window.
	r.collector.Start()
	ff := startFirstFrame(r.loop)

	result := IterationResult{
		RunID:             r.runID,
		Iteration:         i,
		Type:              r.cfg.Type,
		ItemCount:         r.cfg.ItemCount,
		TargetFrameTimeMs: r.cfg.TargetFrameTimeMs(),
		RefreshRateHz:     r.cfg.RefreshRateHz,
	}

	// 4. Workload.
	switch r.cfg.Type {
	case TypeScrollPerformance:
		r.runScroll(ctx, i, &result)
	default:
		r.sleep(ctx, r.cfg.Timing.StaticSettle)
		result.FrameSamples = r.collector.Stop()
	}

	ttff, err := ff.wait(ctx, r.loop)
	if err != nil {
		r.logger.Warn("time to first frame unresolved", "iteration", i, "error", err)
	}
	result.TimeToFirstFrameMs = ttff

	// 5. Memory, strictly after the collector has stopped.
	if r.memory != nil && r.memory.Supported() {
		result.MemoryDeltaMB = r.memory.Delta()
		result.MemoryProfiled = true
		result.MemoryBasis = r.memory.Basis()
	}

	// 6. Emit.
	result.Timestamp = r.now()
	return result
}

// runScroll discards the pre-roll, measures the down leg only, then returns
// to the top unmeasured.
func (r *IterationRunner) runScroll(ctx context.Context, i int, result *IterationResult) {
	r.sleep(ctx, r.cfg.Timing.PreRoll)
	r.collector.Stop()

	extent, err := scrollExtent(r.workload)
	switch {
	case err != nil:
		r.logger.Warn("scroll failed, iteration degraded", "iteration", i, "error", err)
		result.ScrollError = err.Error()
		result.FrameSamples = []float64{}
	case extent > 0:
		r.collector.Start()
		outcome, err := r.driver.Drive(ctx, r.workload, extent)
		samples := r.collector.Stop()
		if err != nil {
			r.logger.Warn("scroll failed, iteration degraded",
				"iteration", i,
				"target_px", extent,
				"error", err,
			)
			result.ScrollError = err.Error()
			samples = []float64{}
			outcome = ScrollOutcome{}
		}
		result.FrameSamples = samples
		result.ScrollDurationMs = outcome.DurationMs
		result.ScrollDistancePx = outcome.DistancePx
	default:
		r.logger.Info("content fits viewport, nothing to scroll", "iteration", i, "extent_px", extent)
		result.FrameSamples = []float64{}
	}

	if err := applyOffset(r.workload, 0); err != nil {
		r.logger.Warn("return to top failed", "iteration", i, "error", err)
	}
	r.sleep(ctx, r.cfg.Timing.ScrollSettle)
	r.collector.Stop()
}

func (r *IterationRunner) sleep(ctx context.Context, d time.Duration) {
	if err := r.loop.Sleep(ctx, d); err != nil {
		r.logger.Debug("wait interrupted", "duration", d, "error", err)
	}
}

// =============================================================================
// TIME TO FIRST FRAME
// =============================================================================

// firstFrameTicks is how many refreshes confirm the first frame is on screen.
const firstFrameTicks = 2

type firstFrame struct {
	start    time.Duration
	ticks    int
	at       time.Duration
	resolved bool
	handle   frameclock.Handle
}

func startFirstFrame(loop frameclock.Loop) *firstFrame {
	ff := &firstFrame{start: loop.Now()}
	ff.handle = loop.Subscribe(func(now time.Duration) {
		ff.ticks++
		if ff.ticks == firstFrameTicks {
			ff.at = now
			ff.resolved = true
			loop.Unsubscribe(ff.handle)
		}
	})
	return ff
}

// wait blocks until the probe resolves and returns the latency in ms.
func (ff *firstFrame) wait(ctx context.Context, loop frameclock.Loop) (float64, error) {
	if err := loop.Until(ctx, func() bool { return ff.resolved }); err != nil {
		loop.Unsubscribe(ff.handle)
		return 0, fmt.Errorf("wait for first frame: %w", err)
	}
	ms := frameclock.Ms(ff.at - ff.start)
	if ms < 0 {
		ms = 0
	}
	return ms, nil
}
