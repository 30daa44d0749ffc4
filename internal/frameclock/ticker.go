// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package frameclock

import (
	"context"
	"time"
)

// =============================================================================
// TICKER CLOCK
// =============================================================================

// TickerClock is a Loop on wall-clock time, driven by a time.Ticker at the
// refresh interval. It is the headless fixed-interval timer used when no
// display link is available. Call Close when done.
type TickerClock struct {
	registry

	hz     float64
	origin time.Time
	ticker *time.Ticker
}

// NewTickerClock starts a ticker at the given refresh rate.
func NewTickerClock(refreshRateHz float64) (*TickerClock, error) {
	if refreshRateHz <= 0 {
		return nil, ErrInvalidRate
	}
	return &TickerClock{
		hz:     refreshRateHz,
		origin: time.Now(),
		ticker: time.NewTicker(Interval(refreshRateHz)),
	}, nil
}

// Now returns the monotonic time since the clock was created.
func (c *TickerClock) Now() time.Duration { return time.Since(c.origin) }

// RefreshRateHz returns the ticker rate.
func (c *TickerClock) RefreshRateHz() float64 { return c.hz }

// Stall blocks the calling goroutine for d. Ticks that pile up meanwhile are
// dropped by time.Ticker, which is how a busy display thread misses vsync.
func (c *TickerClock) Stall(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// Sleep dispatches ticks until d has elapsed.
func (c *TickerClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case <-c.ticker.C:
			c.dispatch(c.Now())
		}
	}
}

// Until dispatches ticks until done reports true.
func (c *TickerClock) Until(ctx context.Context, done func() bool) error {
	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ticker.C:
			c.dispatch(c.Now())
		}
	}
	return nil
}

// Close stops the underlying ticker.
func (c *TickerClock) Close() error {
	c.ticker.Stop()
	return nil
}
