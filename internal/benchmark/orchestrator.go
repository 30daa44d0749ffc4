// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jeranaias/framebench/internal/frameclock"
	"github.com/jeranaias/framebench/internal/memory"
)

// =============================================================================
// STATE
// =============================================================================

// State is the orchestrator lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateComplete
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// ReportFunc renders the final report. It must be a pure function of its
// arguments.
type ReportFunc func(cfg Config, results []IterationResult) string

// ReportSink receives the rendered report, e.g. a logger or a file.
type ReportSink func(report string) error

// Options configures an Orchestrator. Every field is optional.
type Options struct {
	Logger *slog.Logger
	Tracer trace.Tracer

	// Memory samples footprint. Nil disables memory profiling.
	Memory *memory.Sampler

	Report ReportFunc
	Sink   ReportSink

	// OnIteration is called after each iteration with a 1-based index.
	OnIteration func(i, total int, result IterationResult)

	// OnComplete is called once, after the report, with all results.
	OnComplete func(results []IterationResult)

	// Now stamps results. Defaults to time.Now.
	Now func() time.Time

	// RunID tags every result. A random UUID is generated when empty.
	RunID string
}

// Outcome is what a run produced.
type Outcome struct {
	RunID   string
	State   State
	Results []IterationResult
	Report  string
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// Orchestrator runs the configured number of iterations on one timeline and
// renders the report once at the end.
type Orchestrator struct {
	cfg    Config
	loop   frameclock.Loop
	runner *IterationRunner
	opts   Options
	logger *slog.Logger
	tracer trace.Tracer

	mu      sync.Mutex
	state   State
	current int
	cancel  context.CancelFunc
	stopped bool
}

// NewOrchestrator creates an orchestrator. The configuration is validated at
// Run time so an invalid one results in a logged no-op.
func NewOrchestrator(cfg Config, loop frameclock.Loop, w Workload, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("framebench.benchmark")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	cfg = cfg.withDefaults()
	runner := NewIterationRunner(cfg, loop, w, opts.Memory, opts.Logger)
	runner.now = opts.Now
	runner.runID = opts.RunID

	return &Orchestrator{
		cfg:    cfg,
		loop:   loop,
		runner: runner,
		opts:   opts,
		logger: opts.Logger.With("run_id", opts.RunID),
		tracer: opts.Tracer,
	}
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config { return o.cfg }

// RunID returns the identifier stamped on results.
func (o *Orchestrator) RunID() string { return o.opts.RunID }

// State returns the lifecycle state and the current 1-based iteration.
func (o *Orchestrator) State() (State, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.current
}

// Cancel requests cancellation. It takes effect at the next iteration
// boundary; an iteration in flight finishes first. Safe from any goroutine.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) setState(s State, i int) {
	o.mu.Lock()
	o.state = s
	o.current = i
	o.mu.Unlock()
}

// Run executes the benchmark. Cancellation and invalid configuration are not
// errors: they return an Outcome without a report. The returned error is
// only set when the report sink fails.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	o.mu.Lock()
	if o.state != StateNotStarted {
		o.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	if o.stopped {
		cancel()
	}
	o.mu.Unlock()
	defer cancel()

	out := &Outcome{RunID: o.opts.RunID, State: StateNotStarted}

	if err := o.cfg.Validate(); err != nil {
		o.logger.Warn("benchmark not started", "error", err)
		return out, nil
	}

	runCtx, span := o.tracer.Start(runCtx, "benchmark.Run",
		trace.WithAttributes(
			attribute.String("benchmark.run_id", o.opts.RunID),
			attribute.String("benchmark.type", string(o.cfg.Type)),
			attribute.Int("benchmark.items", o.cfg.ItemCount),
			attribute.Int("benchmark.iterations", o.cfg.Iterations),
			attribute.Float64("benchmark.refresh_hz", o.cfg.RefreshRateHz),
		),
	)
	defer span.End()

	o.logger.Info("benchmark started",
		"type", o.cfg.Type,
		"items", o.cfg.ItemCount,
		"iterations", o.cfg.Iterations,
		"refresh_hz", o.cfg.RefreshRateHz,
	)

	o.recordBaseline(runCtx)

	total := o.cfg.Iterations
	results := make([]IterationResult, 0, total)

	for i := 1; i <= total; i++ {
		if runCtx.Err() != nil {
			return o.cancelled(out, results, span), nil
		}
		o.setState(StateRunning, i)

		result := o.runIteration(runCtx, i)
		results = append(results, result)

		if o.opts.OnIteration != nil {
			o.opts.OnIteration(i, total, result)
		}

		if i < total && o.cfg.Timing.InterIteration > 0 {
			if err := o.loop.Sleep(runCtx, o.cfg.Timing.InterIteration); err != nil {
				o.logger.Debug("inter-iteration delay interrupted", "error", err)
			}
		}
	}

	if runCtx.Err() != nil {
		return o.cancelled(out, results, span), nil
	}

	o.setState(StateComplete, total)
	out.State = StateComplete
	out.Results = results
	span.SetAttributes(attribute.Int("benchmark.total_frames", TotalFrames(results)))

	var sinkErr error
	if o.opts.Report != nil {
		out.Report = o.opts.Report(o.cfg, results)
		if o.opts.Sink != nil {
			if err := o.opts.Sink(out.Report); err != nil {
				o.logger.Warn("report sink failed", "error", err)
				sinkErr = fmt.Errorf("emit report: %w", err)
			}
		}
	}

	o.logger.Info("benchmark complete", "results", len(results), "total_frames", TotalFrames(results))

	if o.opts.OnComplete != nil {
		o.opts.OnComplete(results)
	}
	return out, sinkErr
}

// runIteration runs one iteration to completion even if the run is cancelled
// while it is in flight.
func (o *Orchestrator) runIteration(ctx context.Context, i int) IterationResult {
	ctx, span := o.tracer.Start(ctx, "benchmark.Iteration",
		trace.WithAttributes(attribute.Int("benchmark.iteration", i)),
	)
	defer span.End()

	o.logger.Info(fmt.Sprintf("Running iteration %d of %d", i, o.cfg.Iterations))

	result := o.runner.Run(context.WithoutCancel(ctx), i)

	span.SetAttributes(
		attribute.Int("benchmark.frames", result.FrameCount()),
		attribute.Float64("benchmark.avg_frame_ms", result.AverageFrameTimeMs()),
		attribute.Float64("benchmark.ttff_ms", result.TimeToFirstFrameMs),
		attribute.Bool("benchmark.degraded", result.ScrollError != ""),
	)
	o.logger.Info("iteration complete",
		"iteration", i,
		"frames", result.FrameCount(),
		"avg_frame_ms", result.AverageFrameTimeMs(),
		"ttff_ms", result.TimeToFirstFrameMs,
	)
	return result
}

func (o *Orchestrator) recordBaseline(ctx context.Context) {
	if o.opts.Memory == nil || !o.opts.Memory.Supported() {
		o.logger.Info("memory profiling not available")
		return
	}
	if d := o.cfg.Timing.BaselineDelay; d > 0 {
		if err := o.loop.Sleep(ctx, d); err != nil {
			return
		}
	}
	if err := o.opts.Memory.RecordBaseline(); err != nil {
		o.logger.Warn("memory baseline failed", "error", err)
	}
}

func (o *Orchestrator) cancelled(out *Outcome, results []IterationResult, span trace.Span) *Outcome {
	_, i := o.State()
	o.setState(StateCancelled, i)
	o.logger.Info("benchmark cancelled", "completed", len(results))
	span.SetAttributes(attribute.Bool("benchmark.cancelled", true))

	out.State = StateCancelled
	out.Results = results
	return out
}
