// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jeranaias/framebench/internal/frameclock"
)

// =============================================================================
// WORKLOAD
// =============================================================================

// Workload is the list being measured. The engine never renders anything
// itself; it only asks the workload to reset and to move.
type Workload interface {
	// ResetToInitialState returns the list to offset 0 with fresh layout.
	ResetToInitialState() error

	// ScrollableExtentPx is content height minus viewport height.
	ScrollableExtentPx() float64

	// ApplyScrollOffset moves the viewport to px.
	ApplyScrollOffset(px float64) error
}

// =============================================================================
// SCROLL DRIVER
// =============================================================================

// scrollEpsilonPx is how close to the target counts as arrived.
const scrollEpsilonPx = 0.5

// ScrollOutcome describes a completed drive.
type ScrollOutcome struct {
	DurationMs float64
	DistancePx float64
}

// ScrollDriver moves a workload at constant velocity, one step per tick.
type ScrollDriver struct {
	loop  frameclock.Loop
	speed float64
}

// NewScrollDriver creates a driver at speedPxPerSec.
func NewScrollDriver(loop frameclock.Loop, speedPxPerSec float64) *ScrollDriver {
	return &ScrollDriver{loop: loop, speed: speedPxPerSec}
}

// Drive scrolls from offset 0 to targetPx and blocks until it arrives. A
// non-positive target completes immediately with a zero outcome. An apply
// error or panic aborts the drive and is returned.
func (d *ScrollDriver) Drive(ctx context.Context, w Workload, targetPx float64) (ScrollOutcome, error) {
	if targetPx <= 0 || d.speed <= 0 {
		return ScrollOutcome{}, nil
	}

	const startOffset = 0.0
	start := d.loop.Now()

	var (
		done    bool
		failure error
		outcome ScrollOutcome
	)

	h := d.loop.Subscribe(func(now time.Duration) {
		if done {
			return
		}
		elapsed := now - start
		next := math.Min(startOffset+d.speed*elapsed.Seconds(), targetPx)
		arrived := next >= targetPx-scrollEpsilonPx
		if arrived {
			next = targetPx
		}

		if err := applyOffset(w, next); err != nil {
			failure = err
			done = true
			return
		}

		if arrived {
			outcome = ScrollOutcome{
				DurationMs: frameclock.Ms(elapsed),
				DistancePx: next - startOffset,
			}
			done = true
		}
	})
	defer d.loop.Unsubscribe(h)

	if err := d.loop.Until(ctx, func() bool { return done }); err != nil {
		return ScrollOutcome{}, err
	}
	if failure != nil {
		return ScrollOutcome{}, failure
	}
	return outcome, nil
}

// applyOffset converts a workload panic into an error.
func applyOffset(w Workload, px float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScrollPanic, r)
		}
	}()
	if err := w.ApplyScrollOffset(px); err != nil {
		return fmt.Errorf("apply scroll offset %.1f: %w", px, err)
	}
	return nil
}

// resetWorkload converts a panic in ResetToInitialState into an error.
func resetWorkload(w Workload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: reset: %v", ErrWorkloadPanic, r)
		}
	}()
	return w.ResetToInitialState()
}

// scrollExtent reads the scrollable extent, converting a panic into an error.
func scrollExtent(w Workload) (extent float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			extent = 0
			err = fmt.Errorf("%w: read extent: %v", ErrWorkloadPanic, r)
		}
	}()
	return w.ScrollableExtentPx(), nil
}
