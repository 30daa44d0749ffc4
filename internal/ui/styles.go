// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/framebench/internal/stats"
)

// =============================================================================
// COLORS
// =============================================================================

// Purple - titles and section headers
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Emerald - values within budget
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - values over budget but not janky
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - poor grades and errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Overlay - borders
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// TextMuted - hints
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Purple)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Purple)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(26)

	valueStyle = lipgloss.NewStyle().
			Foreground(Emerald)

	mutedStyle = lipgloss.NewStyle().
			Foreground(TextMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Overlay).
			Padding(0, 2)
)

// GradeColor maps a grade to its display color.
func GradeColor(g stats.Grade) lipgloss.TerminalColor {
	switch g {
	case stats.GradeA:
		return Emerald
	case stats.GradeB, stats.GradeC:
		return Amber
	default:
		return Rose
	}
}
