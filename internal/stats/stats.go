// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stats

import (
	"math"
	"sort"
)

// =============================================================================
// DESCRIPTIVE STATISTICS
// =============================================================================

// Mean returns the arithmetic mean of xs, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Sum(xs) / float64(len(xs))
}

// Sum returns the sum of xs.
func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

// StdDev returns the population standard deviation of xs.
// Fewer than two samples yield 0.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	var sq float64
	for _, x := range xs {
		d := x - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}

// Percentile returns the nearest-rank percentile of xs for p in [0, 1].
// The result is always an element of xs; 0 for empty input.
func Percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	idx := int(math.Ceil(float64(len(sorted))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// FractionOver returns the proportion of xs strictly greater than threshold.
func FractionOver(xs []float64, threshold float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	over := 0
	for _, x := range xs {
		if x > threshold {
			over++
		}
	}
	return float64(over) / float64(len(xs))
}

// CoefficientOfVariation returns stddev/mean as a percentage.
// The mean is floored at 1e-6 so an all-zero input reports 0 instead of NaN.
func CoefficientOfVariation(xs []float64) float64 {
	return StdDev(xs) / math.Max(1e-6, Mean(xs)) * 100
}
