// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package frameclock

import (
	"context"
	"time"
)

// =============================================================================
// VIRTUAL CLOCK
// =============================================================================

// VirtualClock is a deterministic Loop on simulated time. Tick k falls at
// exactly k/refreshRateHz seconds from the origin, so long runs do not drift.
// Sleep and Until return as soon as the simulated window is consumed.
//
// Note: VirtualClock is not thread-safe and should only be driven from the
// goroutine that runs the benchmark.
type VirtualClock struct {
	registry

	hz        float64
	now       time.Duration
	nextTick  int64
	busyUntil time.Duration
	missed    int
}

// NewVirtualClock creates a virtual clock at the given refresh rate.
func NewVirtualClock(refreshRateHz float64) (*VirtualClock, error) {
	if refreshRateHz <= 0 {
		return nil, ErrInvalidRate
	}
	return &VirtualClock{hz: refreshRateHz, nextTick: 1}, nil
}

// Now returns the simulated time.
func (c *VirtualClock) Now() time.Duration { return c.now }

// RefreshRateHz returns the simulated panel rate.
func (c *VirtualClock) RefreshRateHz() float64 { return c.hz }

// Missed returns how many refreshes were skipped because of Stall.
func (c *VirtualClock) Missed() int { return c.missed }

// Stall extends the busy window to now+d.
func (c *VirtualClock) Stall(d time.Duration) {
	if d <= 0 {
		return
	}
	if until := c.now + d; until > c.busyUntil {
		c.busyUntil = until
	}
}

func (c *VirtualClock) tickAt(k int64) time.Duration {
	return time.Duration(float64(k) * float64(time.Second) / c.hz)
}

// step moves to the next refresh and dispatches it unless the display
// thread is still busy.
func (c *VirtualClock) step() {
	ts := c.tickAt(c.nextTick)
	c.nextTick++
	c.now = ts
	if ts < c.busyUntil {
		c.missed++
		return
	}
	c.dispatch(ts)
}

// Sleep dispatches every tick with a timestamp up to and including now+d,
// then leaves the clock at now+d.
func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := c.now + d
	for c.tickAt(c.nextTick) <= target {
		c.step()
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if target > c.now {
		c.now = target
	}
	return nil
}

// Until steps tick by tick until done reports true.
func (c *VirtualClock) Until(ctx context.Context, done func() bool) error {
	for !done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.step()
	}
	return nil
}
