// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package benchmark provides the frame timing benchmark engine for framebench.
//
// This package measures list rendering performance: time to first frame,
// per-frame duration, dropped and janky frame ratios, memory growth and
// scroll throughput, repeated over several iterations.
//
// # Key Types
//
//   - Orchestrator: runs the iterations and emits the report once
//   - IterationRunner: a single reset, measure, emit cycle
//   - Collector: frame interval sampler armed between Start and Stop
//   - ScrollDriver: constant-velocity scripted scroll
//   - Workload: the list under test, supplied by the caller
//   - IterationResult: immutable per-iteration measurements
//
// # Usage
//
//	clock, _ := frameclock.NewVirtualClock(60)
//	orch := benchmark.NewOrchestrator(cfg, clock, list, benchmark.Options{
//	    Memory: memory.NewSampler(logger, memory.DefaultProbes()...),
//	    Report: report.Generate,
//	    Sink:   sink,
//	})
//	outcome, err := orch.Run(ctx)
//
// # Benchmark Types
//
//   - StaticRender: frames during a fixed settle window
//   - ScrollPerformance: frames during the down leg of a scripted scroll
//   - MemoryUsage: as StaticRender, reported with emphasis on memory delta
package benchmark
