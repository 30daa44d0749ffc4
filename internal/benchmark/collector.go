// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"time"

	"github.com/jeranaias/framebench/internal/frameclock"
)

// =============================================================================
// FRAME TIMING COLLECTOR
// =============================================================================

// Collector records the interval between consecutive ticks while armed.
// The first tick after Start only establishes the reference timestamp.
//
// Note: Collector is not thread-safe. It is driven from the loop goroutine.
type Collector struct {
	clock   frameclock.FrameClock
	handle  frameclock.Handle
	armed   bool
	samples []float64
	prev    time.Duration
	hasPrev bool
}

// NewCollector creates an idle collector on clock.
func NewCollector(clock frameclock.FrameClock) *Collector {
	return &Collector{clock: clock}
}

// Start clears samples and arms the collector. An existing subscription is
// released first, so rapid re-arming never leaks subscribers.
func (c *Collector) Start() {
	c.release()
	c.samples = make([]float64, 0, 128)
	c.hasPrev = false
	c.handle = c.clock.Subscribe(c.onTick)
	c.armed = true
}

// Stop disarms the collector and hands back the samples. Stopping an idle
// collector returns an empty slice.
func (c *Collector) Stop() []float64 {
	c.release()
	out := c.samples
	if out == nil {
		out = []float64{}
	}
	c.samples = nil
	return out
}

// Armed reports whether the collector is subscribed.
func (c *Collector) Armed() bool { return c.armed }

func (c *Collector) release() {
	if c.armed {
		c.clock.Unsubscribe(c.handle)
		c.armed = false
	}
}

func (c *Collector) onTick(now time.Duration) {
	if c.hasPrev {
		delta := frameclock.Ms(now - c.prev)
		if delta < 0 {
			delta = 0
		}
		c.samples = append(c.samples, delta)
	}
	c.prev = now
	c.hasPrev = true
}
