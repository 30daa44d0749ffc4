// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry exports benchmark measurements for framebench.
//
// # Key Types
//
//   - PromSink: Prometheus histograms and counters fed from iteration results
//   - LogExecDuration: wall-clock timing of setup steps, logged in one line
//   - SpanLogger: OpenTelemetry span processor that logs finished spans
//
// # Usage
//
// Feed results from the orchestrator's progress hook:
//
//	sink := telemetry.NewPromSink()
//	opts.OnIteration = func(i, n int, r benchmark.IterationResult) {
//	    sink.ObserveIteration(r)
//	}
//	...
//	_ = sink.WriteTextfile("/var/lib/node_exporter/framebench.prom")
//
// # Privacy
//
// Metrics are local-only. Nothing is pushed anywhere unless Serve is called.
package telemetry
