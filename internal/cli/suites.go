// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jeranaias/framebench/internal/benchmark"
)

func newSuitesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suites",
		Short: "List the standard benchmark suites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, renderSuites(benchmark.GetStandardSuites()))
			return nil
		},
	}
}

func renderSuites(suites []benchmark.Suite) string {
	rows := make([][]string, 0, len(suites))
	for _, s := range suites {
		rows = append(rows, []string{
			s.Name,
			string(s.Type),
			strconv.Itoa(s.ItemCount),
			strconv.Itoa(s.Iterations),
			s.Description,
		})
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SUITE", "TYPE", "ITEMS", "ITERATIONS", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return t.Render()
}
