// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/stats"
)

// =============================================================================
// PROMETHEUS SINK
// =============================================================================

const (
	metricsNamespace = "framebench"
	frameSubsystem   = "frame"
	runSubsystem     = "run"
)

// PromSink exports benchmark results as Prometheus metrics.
type PromSink struct {
	registry *prometheus.Registry

	frameDuration  *prometheus.HistogramVec
	droppedFrames  *prometheus.CounterVec
	jankyFrames    *prometheus.CounterVec
	iterations     *prometheus.CounterVec
	ttff           *prometheus.HistogramVec
	memoryDelta    *prometheus.GaugeVec
	scrollDuration *prometheus.HistogramVec
	runs           *prometheus.CounterVec
}

// NewPromSink creates a sink with its own registry.
func NewPromSink() *PromSink {
	s := &PromSink{
		registry: prometheus.NewRegistry(),

		frameDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: frameSubsystem,
				Name:      "duration_seconds",
				Help:      "Interval between consecutive rendered frames",
				Buckets:   []float64{0.004, 0.007, 0.0084, 0.011, 0.0167, 0.025, 0.0334, 0.05, 0.1, 0.25},
			},
			[]string{"type"},
		),
		droppedFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: frameSubsystem,
				Name:      "dropped_total",
				Help:      "Frames that exceeded the frame budget",
			},
			[]string{"type"},
		),
		jankyFrames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: frameSubsystem,
				Name:      "janky_total",
				Help:      "Frames that exceeded 1.5x the frame budget",
			},
			[]string{"type"},
		),
		iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: runSubsystem,
				Name:      "iterations_total",
				Help:      "Completed iterations by outcome",
			},
			[]string{"type", "outcome"},
		),
		ttff: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: runSubsystem,
				Name:      "time_to_first_frame_seconds",
				Help:      "Latency from workload start until two frames rendered",
				Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"type"},
		),
		memoryDelta: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: runSubsystem,
				Name:      "memory_delta_bytes",
				Help:      "Memory growth over baseline in the latest iteration",
			},
			[]string{"type", "basis"},
		),
		scrollDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: runSubsystem,
				Name:      "scroll_duration_seconds",
				Help:      "Duration of the measured scroll leg",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"type"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: runSubsystem,
				Name:      "total",
				Help:      "Benchmark runs by final state",
			},
			[]string{"state"},
		),
	}

	s.registry.MustRegister(
		s.frameDuration,
		s.droppedFrames,
		s.jankyFrames,
		s.iterations,
		s.ttff,
		s.memoryDelta,
		s.scrollDuration,
		s.runs,
	)
	return s
}

// Registry exposes the registry for gathering and tests.
func (s *PromSink) Registry() *prometheus.Registry { return s.registry }

// ObserveIteration records one iteration's measurements.
func (s *PromSink) ObserveIteration(r benchmark.IterationResult) {
	typ := string(r.Type)

	hist := s.frameDuration.WithLabelValues(typ)
	for _, ms := range r.FrameSamples {
		hist.Observe(ms / 1000)
		if stats.IsDropped(ms, r.TargetFrameTimeMs) {
			s.droppedFrames.WithLabelValues(typ).Inc()
		}
		if stats.IsJanky(ms, r.TargetFrameTimeMs) {
			s.jankyFrames.WithLabelValues(typ).Inc()
		}
	}

	outcome := "ok"
	if r.ScrollError != "" {
		outcome = "degraded"
	}
	s.iterations.WithLabelValues(typ, outcome).Inc()
	s.ttff.WithLabelValues(typ).Observe(r.TimeToFirstFrameMs / 1000)

	if r.MemoryProfiled {
		s.memoryDelta.WithLabelValues(typ, r.MemoryBasis).Set(r.MemoryDeltaMB * 1_000_000)
	}
	if r.Type == benchmark.TypeScrollPerformance {
		s.scrollDuration.WithLabelValues(typ).Observe(r.ScrollDurationMs / 1000)
	}
}

// ObserveRun records the final state of a run.
func (s *PromSink) ObserveRun(state benchmark.State) {
	s.runs.WithLabelValues(state.String()).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// for node_exporter's textfile collector.
func (s *PromSink) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// Serve exposes /metrics on addr until ctx is done.
func (s *PromSink) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
