// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import "math"

// =============================================================================
// FRAME CLASSIFICATION
// =============================================================================

// JankFactor is the budget multiplier above which a frame counts as janky.
const JankFactor = 1.5

// BudgetMs returns the frame budget in milliseconds for a refresh rate.
func BudgetMs(refreshRateHz float64) float64 {
	if refreshRateHz <= 0 {
		return 0
	}
	return 1000.0 / refreshRateHz
}

// IsDropped reports whether a frame exceeded the budget.
func IsDropped(durationMs, budgetMs float64) bool {
	return durationMs > budgetMs
}

// IsJanky reports whether a frame exceeded 1.5x the budget.
func IsJanky(durationMs, budgetMs float64) bool {
	return durationMs > budgetMs*JankFactor
}

// DroppedPercent returns the percentage of frames over budget.
func DroppedPercent(frames []float64, budgetMs float64) float64 {
	return FractionOver(frames, budgetMs) * 100
}

// JankyPercent returns the percentage of frames over 1.5x budget.
func JankyPercent(frames []float64, budgetMs float64) float64 {
	return FractionOver(frames, budgetMs*JankFactor) * 100
}

// =============================================================================
// GRADES
// =============================================================================

// Grade is a letter grade for mean frame time against the budget.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// GradeFor grades a mean frame time m against budget b.
func GradeFor(m, b float64) Grade {
	switch {
	case m <= b:
		return GradeA
	case m <= b*1.5:
		return GradeB
	case m <= b*2:
		return GradeC
	default:
		return GradeD
	}
}

// Label returns the grade with its description, e.g. "A (Excellent)".
func (g Grade) Label() string {
	switch g {
	case GradeA:
		return "A (Excellent)"
	case GradeB:
		return "B (Good)"
	case GradeC:
		return "C (Fair)"
	case GradeD:
		return "D (Poor)"
	default:
		return string(g)
	}
}

// =============================================================================
// THROUGHPUT
// =============================================================================

// FPS holds frame rate figures before and after clamping to the panel.
type FPS struct {
	Unclamped float64
	Clamped   float64
}

// ComputeFPS derives frame rate from totalFrames rendered over totalScrollMs.
// Without scroll timing it falls back to 1000/meanFrameMs. The clamped value
// never exceeds refreshRateHz.
func ComputeFPS(totalFrames int, totalScrollMs, meanFrameMs, refreshRateHz float64) FPS {
	var fps float64
	switch {
	case totalScrollMs > 0:
		fps = float64(totalFrames) / (totalScrollMs / 1000.0)
	case meanFrameMs > 0:
		fps = 1000.0 / meanFrameMs
	}
	return FPS{
		Unclamped: fps,
		Clamped:   math.Min(fps, refreshRateHz),
	}
}
