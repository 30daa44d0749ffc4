// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package frameclock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// =============================================================================
// INTERFACES
// =============================================================================

// TickFunc receives the monotonic timestamp of a display refresh, measured
// from the clock's origin.
type TickFunc func(now time.Duration)

// Handle identifies a subscription. The zero Handle is never issued.
type Handle uint64

// FrameClock delivers one tick per display refresh to its subscribers.
type FrameClock interface {
	// Subscribe registers fn for every subsequent tick.
	Subscribe(fn TickFunc) Handle

	// Unsubscribe stops delivery to h before the next tick. Unknown or
	// already removed handles are ignored.
	Unsubscribe(h Handle)
}

// Loop is a FrameClock that owns the benchmark timeline. Ticks are delivered
// on the goroutine that is blocked in Sleep or Until and nowhere else, so
// subscribers never run concurrently with the code that drives them.
type Loop interface {
	FrameClock

	// Now returns the current timestamp on the clock's timeline.
	Now() time.Duration

	// Sleep advances the timeline by d, dispatching every tick that falls
	// inside the window.
	Sleep(ctx context.Context, d time.Duration) error

	// Until dispatches ticks until done reports true. done is checked before
	// the first tick and after each one.
	Until(ctx context.Context, done func() bool) error

	// Stall marks the display thread busy for d. Refreshes that fall inside
	// the busy window are missed.
	Stall(d time.Duration)

	// RefreshRateHz returns the nominal refresh rate.
	RefreshRateHz() float64
}

// ErrInvalidRate is returned for a refresh rate that is not positive.
var ErrInvalidRate = errors.New("refresh rate must be positive")

// Interval returns the tick period for a refresh rate.
func Interval(refreshRateHz float64) time.Duration {
	if refreshRateHz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / refreshRateHz)
}

// =============================================================================
// SUBSCRIBER REGISTRY
// =============================================================================

type subscription struct {
	handle Handle
	fn     TickFunc
}

// registry keeps subscribers in subscription order. Dispatch iterates a
// snapshot and rechecks membership before every call, so a subscriber removed
// by an earlier callback in the same dispatch is skipped.
type registry struct {
	mu     sync.Mutex
	next   Handle
	order  []subscription
	active map[Handle]struct{}
}

func (r *registry) Subscribe(fn TickFunc) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		r.active = make(map[Handle]struct{})
	}
	r.next++
	h := r.next
	r.order = append(r.order, subscription{handle: h, fn: fn})
	r.active[h] = struct{}{}
	return h
}

func (r *registry) Unsubscribe(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.active[h]; !ok {
		return
	}
	delete(r.active, h)
	for i, s := range r.order {
		if s.handle == h {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry) isActive(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[h]
	return ok
}

// Len returns the number of live subscriptions.
func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *registry) dispatch(now time.Duration) {
	r.mu.Lock()
	snapshot := make([]subscription, len(r.order))
	copy(snapshot, r.order)
	r.mu.Unlock()

	for _, s := range snapshot {
		if r.isActive(s.handle) {
			s.fn(now)
		}
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// WaitTicks blocks until n ticks have been delivered after the call and
// returns the timestamp of the n-th one.
func WaitTicks(ctx context.Context, loop Loop, n int) (time.Duration, error) {
	if n <= 0 {
		return loop.Now(), nil
	}

	var count int
	var last time.Duration
	h := loop.Subscribe(func(now time.Duration) {
		count++
		if count == n {
			last = now
		}
	})
	defer loop.Unsubscribe(h)

	if err := loop.Until(ctx, func() bool { return count >= n }); err != nil {
		return 0, err
	}
	return last, nil
}

// Ms converts a timeline duration to fractional milliseconds, truncated to
// the microsecond. A vsync interval of 16666667ns reads as 16.666, not over
// the 60 Hz budget.
func Ms(d time.Duration) float64 {
	return float64(d/time.Microsecond) / 1000
}
