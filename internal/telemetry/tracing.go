// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"log/slog"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// =============================================================================
// SPAN LOGGING
// =============================================================================

// SpanLogger is a span processor that logs every finished span with its
// duration and attributes. It gives --trace runs span timings without an
// external collector.
type SpanLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSpanLogger logs ended spans at level.
func NewSpanLogger(logger *slog.Logger, level slog.Level) *SpanLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpanLogger{logger: logger, level: level}
}

// OnStart implements sdktrace.SpanProcessor.
func (p *SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd implements sdktrace.SpanProcessor.
func (p *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	dur := s.EndTime().Sub(s.StartTime())
	attrs := []any{
		"span", s.Name(),
		"duration_ms", dur.Milliseconds(),
		"trace_id", s.SpanContext().TraceID().String(),
	}
	for _, kv := range s.Attributes() {
		attrs = append(attrs, string(kv.Key), kv.Value.Emit())
	}
	if s.Status().Description != "" {
		attrs = append(attrs, "status", s.Status().Description)
	}
	p.logger.Log(context.Background(), p.level, "span finished", attrs...)
}

// Shutdown implements sdktrace.SpanProcessor.
func (p *SpanLogger) Shutdown(context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (p *SpanLogger) ForceFlush(context.Context) error { return nil }

// NewTracerProvider returns a provider that reports spans to logger. The
// caller owns Shutdown.
func NewTracerProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewSpanLogger(logger, slog.LevelInfo)),
	)
}

// ShutdownTracer flushes and stops tp, bounded by timeout.
func ShutdownTracer(tp *sdktrace.TracerProvider, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return tp.Shutdown(ctx)
}
