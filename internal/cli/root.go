// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeranaias/framebench/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	jsonLogs   bool
}

// app carries what subcommands need. Tests build one with buffers.
type app struct {
	flags  globalFlags
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// loadConfig reads --config when set, the default locations otherwise.
func (a *app) loadConfig() (*config.Config, string, error) {
	if a.flags.configPath != "" {
		cfg, err := config.LoadFromPath(a.flags.configPath)
		return cfg, a.flags.configPath, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	path := ""
	if paths, perr := config.ConfigPaths(); perr == nil {
		for _, p := range paths {
			if _, serr := os.Stat(p); serr == nil {
				path = p
				break
			}
		}
	}
	return cfg, path, nil
}

// NewRootCommand builds the framebench command tree writing to stdout and
// stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "framebench",
		Short: "Measure frame pacing of a virtualized list",
		Long: `framebench drives a deck list through static render, scroll and
memory benchmarks on a frame clock, then prints a fixed-format report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(a.stderr, a.flags.logLevel, a.flags.jsonLogs)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error(), Example: cmd.UseLine()}
	})

	root.PersistentFlags().StringVarP(&a.flags.configPath, "config", "c", "", "config file (default ~/.framebench/config.toml)")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonLogs, "json-logs", false, "emit logs as JSON")

	root.AddCommand(
		newRunCommand(a),
		newSuitesCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)
	return root
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "framebench %s\n", Version)
			fmt.Fprintf(a.stdout, "  Commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Built:  %s\n", BuildDate)
			fmt.Fprintf(a.stdout, "  Go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}

// Execute runs the command line and returns the process exit code.
// SIGINT and SIGTERM cancel a running benchmark at the next iteration
// boundary.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
