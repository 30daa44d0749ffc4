// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/framebench/internal/report"
)

// =============================================================================
// REPORT VIEW
// =============================================================================

// ReportView renders an aggregate for a terminal. The plain text report
// from report.Render stays the canonical artifact; this is the same data
// with color and boxes.
type ReportView struct {
	width int
}

// NewReportView creates a report view for a terminal width. Widths below 40
// are raised to 40.
func NewReportView(width int) *ReportView {
	v := &ReportView{}
	v.SetWidth(width)
	return v
}

// SetWidth updates the view width.
func (v *ReportView) SetWidth(width int) {
	if width < 40 {
		width = 40
	}
	v.width = width
}

// Render renders the whole report.
func (v *ReportView) Render(a report.Aggregate) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Framebench: " + a.Type.DisplayName()))
	b.WriteString("\n")
	ts := "N/A"
	if !a.Timestamp.IsZero() {
		ts = a.Timestamp.UTC().Format(time.RFC3339)
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s  %d items x %d iterations  %s", ts, a.ItemCount, a.Iterations, a.RunID)))
	b.WriteString("\n\n")

	b.WriteString(v.section("Frame Performance", [][2]string{
		{"Avg Frame Time", fmt.Sprintf("%.2f ms (budget %.2f ms)", a.AvgFrameMs, a.BudgetMs)},
		{"P95 Frame Time", fmt.Sprintf("%.2f ms", a.P95FrameMs)},
		{"FPS", fmt.Sprintf("%.2f (unclamped %.2f)", a.FPS.Clamped, a.FPS.Unclamped)},
		{"Dropped / Janky", fmt.Sprintf("%.3f%% / %.3f%%", a.DroppedPct, a.JankyPct)},
		{"Total Frames", fmt.Sprintf("%d", a.TotalFrames)},
	}))
	b.WriteString("\n")

	mem := "Not available"
	perItem := "N/A"
	if a.MemoryProfiled {
		mem = fmt.Sprintf("%.2f +/- %.2f MB (%s)", a.MemoryMeanMB, a.MemoryStdDevMB, a.MemoryBasis)
		perItem = fmt.Sprintf("%.2f KB/item", a.MemoryPerItemKB)
	}
	b.WriteString(v.section("Render and Memory", [][2]string{
		{"Time to First Frame", fmt.Sprintf("%.2f +/- %.2f ms", a.TTFFMeanMs, a.TTFFStdDevMs)},
		{"Memory Delta", mem},
		{"Memory per Item", perItem},
		{"Frame Time CoV", fmt.Sprintf("%.3f%%", a.FrameTimeCoV)},
	}))
	b.WriteString("\n")

	if a.ScrollDistancePx > 0 {
		b.WriteString(v.section("Scroll", [][2]string{
			{"Distance", fmt.Sprintf("%.0f px", a.ScrollDistancePx)},
			{"Avg Duration", fmt.Sprintf("%.0f ms", a.AvgScrollDurationMs)},
		}))
		b.WriteString("\n")
	}

	grade := lipgloss.NewStyle().Bold(true).Foreground(GradeColor(a.Grade)).Render("Grade " + a.Grade.Label())
	b.WriteString(grade)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(v.width).Render(a.Verdict() + " " + a.TypeNote()))
	b.WriteString("\n")

	return b.String()
}

func (v *ReportView) section(title string, rows [][2]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(row[0] + ":"))
		b.WriteString(valueStyle.Render(row[1]))
	}
	return boxStyle.Width(v.width - 2).Render(b.String())
}
