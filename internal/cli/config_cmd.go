// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jeranaias/framebench/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create, inspect and edit the configuration file",
	}
	cmd.AddCommand(
		newConfigInitCommand(a),
		newConfigShowCommand(a),
		newConfigGetCommand(a),
		newConfigSetCommand(a),
		newConfigKeysCommand(a),
	)
	return cmd
}

func newConfigInitCommand(a *app) *cobra.Command {
	var (
		format string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.flags.configPath
			if path == "" {
				dir, err := config.ConfigDir()
				if err != nil {
					return err
				}
				switch format {
				case "toml", "json", "yaml":
				default:
					return &UsageError{
						Reason:  fmt.Sprintf("unknown format %q", format),
						Example: "framebench config init --format yaml",
					}
				}
				path = filepath.Join(dir, "config."+format)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return &CommandError{
					Command: "config init",
					Reason:  fmt.Sprintf("%s already exists (use --force to overwrite)", path),
				}
			}
			if err := config.SaveToPath(config.Default(), path); err != nil {
				return &CommandError{Command: "config init", Reason: "could not write config", Err: err}
			}
			fmt.Fprintf(a.stdout, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "file format: toml, json, yaml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				path = "(defaults)"
			}
			fmt.Fprintf(a.stdout, "# source: %s\n", path)
			fmt.Fprintln(a.stdout, cfg.String())
			return nil
		},
	}
}

func newConfigGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one configuration value",
		Example: "  framebench config get clock.refresh_hz",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return &UsageError{Reason: err.Error(), Example: "framebench config keys"}
			}
			fmt.Fprintf(a.stdout, "%v\n", v)
			return nil
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Change one configuration value and save the file",
		Example: "  framebench config set benchmark.items 500",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := a.loadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				if path, err = config.ConfigPathTOML(); err != nil {
					return err
				}
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return &UsageError{Reason: err.Error(), Example: "framebench config keys"}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveToPath(cfg, path); err != nil {
				return &CommandError{Command: "config set", Reason: "could not save config", Err: err}
			}
			fmt.Fprintf(a.stdout, "%s = %s (%s)\n", args[0], args[1], path)
			return nil
		},
	}
}

func newConfigKeysCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List configuration keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range config.GetAllKeys() {
				fmt.Fprintln(a.stdout, k)
			}
			return nil
		},
	}
}
