// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/framebench/internal/stats"
)

// =============================================================================
// BENCHMARK TYPE
// =============================================================================

// Type selects what an iteration measures.
type Type string

const (
	TypeStaticRender      Type = "static"
	TypeScrollPerformance Type = "scroll"
	TypeMemoryUsage       Type = "memory"
)

// Types lists the supported benchmark types in display order.
var Types = []Type{TypeStaticRender, TypeScrollPerformance, TypeMemoryUsage}

// ErrUnknownType is returned by ParseType for unrecognized names.
var ErrUnknownType = errors.New("unknown benchmark type")

// ParseType accepts the short name ("scroll") or the display name
// ("ScrollPerformance"), case-insensitively.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static", "staticrender", "static_render":
		return TypeStaticRender, nil
	case "scroll", "scrollperformance", "scroll_performance":
		return TypeScrollPerformance, nil
	case "memory", "memoryusage", "memory_usage":
		return TypeMemoryUsage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// DisplayName returns the name used in reports.
func (t Type) DisplayName() string {
	switch t {
	case TypeStaticRender:
		return "StaticRender"
	case TypeScrollPerformance:
		return "ScrollPerformance"
	case TypeMemoryUsage:
		return "MemoryUsage"
	default:
		return string(t)
	}
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// Timing holds the fixed windows of an iteration.
type Timing struct {
	// StaticSettle is how long static and memory iterations render undisturbed.
	StaticSettle time.Duration `json:"static_settle"`

	// PreRoll is waited before a scroll starts. Frames in it are discarded.
	PreRoll time.Duration `json:"pre_roll"`

	// ScrollSettle follows the unmeasured return to the top.
	ScrollSettle time.Duration `json:"scroll_settle"`

	// InterIteration separates consecutive iterations.
	InterIteration time.Duration `json:"inter_iteration"`

	// BaselineDelay is waited before the memory baseline is taken.
	BaselineDelay time.Duration `json:"baseline_delay"`
}

// DefaultTiming returns the standard iteration windows.
func DefaultTiming() Timing {
	return Timing{
		StaticSettle:   1000 * time.Millisecond,
		PreRoll:        300 * time.Millisecond,
		ScrollSettle:   200 * time.Millisecond,
		InterIteration: 500 * time.Millisecond,
		BaselineDelay:  100 * time.Millisecond,
	}
}

// DefaultScrollSpeed is the scripted scroll velocity in px/s.
const DefaultScrollSpeed = 500.0

// DefaultRefreshRateHz is assumed when the host reports no panel rate.
const DefaultRefreshRateHz = 60.0

// Config is supplied once per run and owned by the orchestrator.
type Config struct {
	ItemCount           int     `json:"item_count"`
	Iterations          int     `json:"iterations"`
	Type                Type    `json:"type"`
	RefreshRateHz       float64 `json:"refresh_rate_hz"`
	ScrollSpeedPxPerSec float64 `json:"scroll_speed_px_per_sec"`
	Timing              Timing  `json:"timing"`
}

// DefaultConfig returns a 100 item, 5 iteration static render run at 60 Hz.
func DefaultConfig() Config {
	return Config{
		ItemCount:           100,
		Iterations:          5,
		Type:                TypeStaticRender,
		RefreshRateHz:       DefaultRefreshRateHz,
		ScrollSpeedPxPerSec: DefaultScrollSpeed,
		Timing:              DefaultTiming(),
	}
}

// ErrInvalidConfig marks a configuration the orchestrator refuses to run.
var ErrInvalidConfig = errors.New("invalid benchmark configuration")

// Validate reports whether the run can proceed.
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.ItemCount <= 0 {
		return fmt.Errorf("%w: item count must be positive, got %d", ErrInvalidConfig, c.ItemCount)
	}
	if c.RefreshRateHz <= 0 {
		return fmt.Errorf("%w: refresh rate must be positive, got %v", ErrInvalidConfig, c.RefreshRateHz)
	}
	return nil
}

// TargetFrameTimeMs is the frame budget derived from the refresh rate.
func (c Config) TargetFrameTimeMs() float64 {
	return stats.BudgetMs(c.RefreshRateHz)
}

// withDefaults fills unset optional fields. An all-zero Timing means no
// windows were given and takes DefaultTiming; otherwise a zero window is
// kept and only negative ones are replaced.
func (c Config) withDefaults() Config {
	def := DefaultTiming()
	if c.Type == "" {
		c.Type = TypeStaticRender
	}
	if c.RefreshRateHz <= 0 {
		c.RefreshRateHz = DefaultRefreshRateHz
	}
	if c.ScrollSpeedPxPerSec <= 0 {
		c.ScrollSpeedPxPerSec = DefaultScrollSpeed
	}
	if c.Timing == (Timing{}) {
		c.Timing = def
		return c
	}
	if c.Timing.StaticSettle < 0 {
		c.Timing.StaticSettle = def.StaticSettle
	}
	if c.Timing.PreRoll < 0 {
		c.Timing.PreRoll = def.PreRoll
	}
	if c.Timing.ScrollSettle < 0 {
		c.Timing.ScrollSettle = def.ScrollSettle
	}
	if c.Timing.InterIteration < 0 {
		c.Timing.InterIteration = 0
	}
	if c.Timing.BaselineDelay < 0 {
		c.Timing.BaselineDelay = 0
	}
	return c
}
