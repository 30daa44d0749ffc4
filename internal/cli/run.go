// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/config"
	"github.com/jeranaias/framebench/internal/frameclock"
	"github.com/jeranaias/framebench/internal/memory"
	"github.com/jeranaias/framebench/internal/report"
	"github.com/jeranaias/framebench/internal/telemetry"
	"github.com/jeranaias/framebench/internal/ui"
	"github.com/jeranaias/framebench/internal/util"
	"github.com/jeranaias/framebench/internal/workload"
)

// =============================================================================
// RUN COMMAND
// =============================================================================

// runFlags override the loaded configuration when set on the command line.
type runFlags struct {
	items       int
	iterations  int
	benchType   string
	suite       string
	clock       string
	refreshHz   float64
	db          string
	reportFile  string
	metricsFile string
	metricsAddr string
	style       string
	noProgress  bool
	watch       bool
	trace       bool
}

func newRunCommand(a *app) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark and print the report",
		Args:  cobra.NoArgs,
		Example: `  framebench run --type scroll --items 1000
  framebench run --suite memory --report-file report.txt
  framebench run --clock ticker --hz 120 --metrics-addr :9108`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			if f.watch {
				return a.watch(cmd.Context(), cmd, &f, path)
			}
			_, err = a.runOnce(cmd.Context(), cfg, f.trace)
			return err
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.items, "items", "n", 0, "number of list items")
	fl.IntVarP(&f.iterations, "iterations", "i", 0, "number of iterations")
	fl.StringVarP(&f.benchType, "type", "t", "", "benchmark type: static, scroll, memory")
	fl.StringVarP(&f.suite, "suite", "s", "", "standard suite name (overrides items, iterations and type)")
	fl.StringVar(&f.clock, "clock", "", "frame clock: virtual or ticker")
	fl.Float64Var(&f.refreshHz, "hz", 0, "panel refresh rate")
	fl.StringVar(&f.db, "db", "", "deck database path (:memory: for in-memory)")
	fl.StringVarP(&f.reportFile, "report-file", "o", "", "also write the report to this file")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the run")
	fl.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	fl.StringVar(&f.style, "style", "", "report style: auto, plain, styled")
	fl.BoolVar(&f.noProgress, "no-progress", false, "disable the progress display")
	fl.BoolVarP(&f.watch, "watch", "w", false, "rerun whenever the config file changes")
	fl.BoolVar(&f.trace, "trace", false, "log run and iteration spans")

	return cmd
}

// apply copies explicitly set flags into cfg and validates the result.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("items") {
		cfg.Benchmark.Items = f.items
	}
	if fl.Changed("iterations") {
		cfg.Benchmark.Iterations = f.iterations
	}
	if fl.Changed("type") {
		cfg.Benchmark.Type = f.benchType
	}
	if fl.Changed("suite") {
		cfg.Benchmark.Suite = f.suite
	}
	if fl.Changed("clock") {
		cfg.Clock.Mode = f.clock
	}
	if fl.Changed("hz") {
		cfg.Clock.RefreshHz = f.refreshHz
	}
	if fl.Changed("db") {
		cfg.Workload.DBPath = f.db
	}
	if fl.Changed("report-file") {
		cfg.Output.ReportFile = f.reportFile
	}
	if fl.Changed("metrics-file") {
		cfg.Metrics.TextfilePath = f.metricsFile
	}
	if fl.Changed("metrics-addr") {
		cfg.Metrics.ListenAddr = f.metricsAddr
	}
	if fl.Changed("style") {
		cfg.Output.Style = f.style
	}
	if f.noProgress {
		cfg.Output.Progress = false
	}
	return cfg.Validate()
}

// runOnce performs one complete benchmark run for cfg.
func (a *app) runOnce(ctx context.Context, cfg *config.Config, trace bool) (*benchmark.Outcome, error) {
	bc, err := cfg.BenchmarkConfig()
	if err != nil {
		return nil, err
	}
	if err := bc.Validate(); err != nil {
		return nil, err
	}

	styled := ui.UseStyled(cfg.Output.Style, asFile(a.stdout))
	progress := styled && cfg.Output.Progress
	logger := a.logger
	if progress && !logger.Enabled(ctx, slog.LevelDebug) {
		// Info lines would tear the progress display.
		logger, _ = newLogger(a.stderr, "warn", a.flags.jsonLogs)
	}

	loop, closeLoop, err := newLoop(cfg.Clock.Mode, bc.RefreshRateHz)
	if err != nil {
		return nil, &CommandError{Command: "run", Reason: "could not start frame clock", Err: err}
	}
	defer closeLoop()

	store, err := workload.OpenStore(cfg.Workload.DBPath, logger)
	if err != nil {
		return nil, &CommandError{Command: "run", Reason: "could not open deck database", Err: err}
	}
	defer store.Close()
	if err := store.Seed(ctx, bc.ItemCount); err != nil {
		return nil, &CommandError{Command: "run", Reason: "could not seed decks", Err: err}
	}
	list, err := workload.NewDeckList(ctx, store, bc.ItemCount, loop, cfg.ListOptions(), logger)
	if err != nil {
		return nil, &CommandError{Command: "run", Reason: "could not build deck list", Err: err}
	}

	metrics := telemetry.NewPromSink()
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		srvCtx, stopSrv := context.WithCancel(ctx)
		defer stopSrv()
		go func() {
			if err := metrics.Serve(srvCtx, addr, logger); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	// Set before the orchestrator starts when the progress display is used.
	var send func(tea.Msg)

	opts := benchmark.Options{
		Logger: logger,
		Memory: memory.NewSampler(logger, memory.DefaultProbes()...),
		Report: report.Generate,
		Sink:   a.reportSink(cfg, styled, logger),
		OnIteration: func(i, total int, r benchmark.IterationResult) {
			metrics.ObserveIteration(r)
			if send != nil {
				send(ui.IterationMsg{Index: i, Total: total, Result: r})
			}
		},
	}
	if trace {
		tp := telemetry.NewTracerProvider(logger)
		defer telemetry.ShutdownTracer(tp, 2*time.Second)
		opts.Tracer = tp.Tracer("framebench.benchmark")
	}

	orch := benchmark.NewOrchestrator(bc, loop, list, opts)

	var out *benchmark.Outcome
	if progress {
		title := fmt.Sprintf("%s: %d items", bc.Type.DisplayName(), bc.ItemCount)
		p := tea.NewProgram(ui.NewProgressModel(title, bc.Iterations, orch.Cancel), tea.WithOutput(a.stdout))
		send = p.Send
		out, err = runWithProgram(ctx, p, orch, logger)
	} else {
		out, err = orch.Run(ctx)
	}
	if out == nil {
		return nil, err
	}

	metrics.ObserveRun(out.State)
	if path := cfg.Metrics.TextfilePath; path != "" {
		if werr := metrics.WriteTextfile(path); werr != nil {
			logger.Warn("Failed to save metrics", "path", path, "error", werr)
			if err == nil {
				err = werr
			}
		}
	}
	if err != nil {
		return out, &CommandError{Command: "run", Reason: "report not delivered", Err: err}
	}

	switch out.State {
	case benchmark.StateComplete:
		if styled {
			width := ui.TerminalWidth(asFile(a.stdout), 80)
			fmt.Fprint(a.stdout, ui.NewReportView(width).Render(report.Compute(orch.Config(), out.Results)))
		}
		return out, nil
	case benchmark.StateCancelled:
		fmt.Fprintf(a.stderr, "Benchmark cancelled after %d of %d iterations\n", len(out.Results), bc.Iterations)
		return out, &CommandError{Command: "run", Reason: "cancelled", Err: ctx.Err()}
	default:
		return out, &CommandError{Command: "run", Reason: "benchmark did not start"}
	}
}

// runWithProgram runs the orchestrator on its own goroutine while p owns
// the terminal.
func runWithProgram(ctx context.Context, p *tea.Program, orch *benchmark.Orchestrator, logger *slog.Logger) (*benchmark.Outcome, error) {
	var (
		out    *benchmark.Outcome
		runErr error
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		out, runErr = orch.Run(ctx)
		p.Send(ui.DoneMsg{Outcome: out, Err: runErr})
	}()

	if _, err := p.Run(); err != nil {
		logger.Warn("progress display failed", "error", err)
		orch.Cancel()
	}
	<-done
	return out, runErr
}

// reportSink prints the plain report unless the styled view will follow,
// and writes the report file when configured.
func (a *app) reportSink(cfg *config.Config, styled bool, logger *slog.Logger) benchmark.ReportSink {
	return func(text string) error {
		if !styled {
			if _, err := io.WriteString(a.stdout, text); err != nil {
				return err
			}
		}
		if path := cfg.Output.ReportFile; path != "" {
			if err := util.AtomicWriteFile(path, []byte(text), 0644); err != nil {
				return err
			}
			logger.Info("report written", "path", path)
		}
		return nil
	}
}

// newLoop builds the frame clock for mode.
func newLoop(mode string, hz float64) (frameclock.Loop, func(), error) {
	if mode == config.ClockTicker {
		c, err := frameclock.NewTickerClock(hz)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	}
	c, err := frameclock.NewVirtualClock(hz)
	if err != nil {
		return nil, nil, err
	}
	return c, func() {}, nil
}

func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// =============================================================================
// WATCH MODE
// =============================================================================

const watchDebounce = 200 * time.Millisecond

// watch reruns the benchmark whenever the config file changes until ctx is
// done. Command-line flags keep overriding the file.
func (a *app) watch(ctx context.Context, cmd *cobra.Command, f *runFlags, path string) error {
	if path == "" {
		return &UsageError{
			Reason:  "--watch needs a config file",
			Example: "framebench run --watch --config bench.toml",
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return &CommandError{Command: "run", Reason: "could not watch config", Err: err}
	}
	defer w.Close()
	// Watch the directory; editors replace files by rename.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return &CommandError{Command: "run", Reason: "could not watch config", Err: err}
	}

	cfg, err := config.LoadFromPath(abs)
	if err != nil {
		return err
	}
	if err := f.apply(cmd, cfg); err != nil {
		return err
	}

	for {
		if _, err := a.runOnce(ctx, cfg, f.trace); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Warn("run failed", "error", err)
		}

		for {
			a.logger.Info("watching for config changes", "path", abs)
			if !waitForChange(ctx, w, abs, a.logger) {
				return nil
			}
			next, err := config.LoadFromPath(abs)
			if err == nil {
				err = f.apply(cmd, next)
			}
			if err != nil {
				a.logger.Warn("config reload failed", "path", abs, "error", err)
				continue
			}
			cfg = next
			break
		}
	}
}

// waitForChange blocks until path is written or replaced and then quiet for
// watchDebounce. It returns false when ctx ends or the watcher closes.
func waitForChange(ctx context.Context, w *fsnotify.Watcher, path string, logger *slog.Logger) bool {
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return false

		case ev, ok := <-w.Events:
			if !ok {
				return false
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				settle = time.After(watchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return false
			}
			logger.Warn("config watch error", "error", err)

		case <-settle:
			return true
		}
	}
}
