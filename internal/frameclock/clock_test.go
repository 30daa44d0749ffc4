// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package frameclock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVirtual(t *testing.T, hz float64) *VirtualClock {
	t.Helper()
	c, err := NewVirtualClock(hz)
	require.NoError(t, err)
	return c
}

func TestNewVirtualClock_InvalidRate(t *testing.T) {
	_, err := NewVirtualClock(0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewTickerClock(-1)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestVirtualClock_SleepDeliversTicks(t *testing.T) {
	c := newVirtual(t, 60)
	ctx := context.Background()

	var stamps []time.Duration
	c.Subscribe(func(now time.Duration) { stamps = append(stamps, now) })

	require.NoError(t, c.Sleep(ctx, time.Second))

	// Tick 60 lands exactly on 1s and is included.
	assert.Len(t, stamps, 60)
	assert.Equal(t, time.Second, c.Now())
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i] - stamps[i-1]
		assert.InDelta(t, float64(Interval(60)), float64(gap), 1, "gap %d", i)
	}
}

func TestVirtualClock_NoDrift(t *testing.T) {
	c := newVirtual(t, 60)
	ctx := context.Background()

	var count int
	c.Subscribe(func(time.Duration) { count++ })

	for i := 0; i < 600; i++ {
		require.NoError(t, c.Sleep(ctx, 100*time.Millisecond))
	}
	assert.Equal(t, 3600, count)
}

func TestVirtualClock_Until(t *testing.T) {
	c := newVirtual(t, 120)
	ctx := context.Background()

	var n int
	c.Subscribe(func(time.Duration) { n++ })
	require.NoError(t, c.Until(ctx, func() bool { return n >= 3 }))

	assert.Equal(t, 3, n)
	assert.Equal(t, c.tickAt(3), c.Now())

	// Already satisfied: no tick is consumed.
	before := c.Now()
	require.NoError(t, c.Until(ctx, func() bool { return true }))
	assert.Equal(t, before, c.Now())
}

func TestVirtualClock_StallMissesRefreshes(t *testing.T) {
	c := newVirtual(t, 60)
	ctx := context.Background()

	var stamps []time.Duration
	stalled := false
	c.Subscribe(func(now time.Duration) {
		stamps = append(stamps, now)
		if !stalled {
			stalled = true
			c.Stall(20 * time.Millisecond)
		}
	})

	require.NoError(t, c.Sleep(ctx, 100*time.Millisecond))

	require.GreaterOrEqual(t, len(stamps), 2)
	gap := stamps[1] - stamps[0]
	assert.InDelta(t, float64(2*Interval(60)), float64(gap), 2)
	assert.Equal(t, 1, c.Missed())
}

func TestVirtualClock_CancelledContext(t *testing.T) {
	c := newVirtual(t, 60)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Sleep(ctx, time.Second), context.Canceled)
	assert.ErrorIs(t, c.Until(ctx, func() bool { return false }), context.Canceled)
	assert.Equal(t, time.Duration(0), c.Now())
}

func TestRegistry_UnsubscribeDuringDispatch(t *testing.T) {
	c := newVirtual(t, 60)
	ctx := context.Background()

	var order []string
	var second Handle
	c.Subscribe(func(time.Duration) {
		order = append(order, "first")
		c.Unsubscribe(second)
	})
	second = c.Subscribe(func(time.Duration) {
		order = append(order, "second")
	})
	c.Subscribe(func(time.Duration) {
		order = append(order, "third")
	})

	_, err := WaitTicks(ctx, c, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "third", "first", "third"}, order)
}

func TestRegistry_UnsubscribeIdempotent(t *testing.T) {
	c := newVirtual(t, 60)

	h := c.Subscribe(func(time.Duration) {})
	assert.Equal(t, 1, c.Len())

	c.Unsubscribe(h)
	c.Unsubscribe(h)
	c.Unsubscribe(Handle(999))
	assert.Equal(t, 0, c.Len())
}

func TestWaitTicks(t *testing.T) {
	c := newVirtual(t, 60)
	ctx := context.Background()

	ts, err := WaitTicks(ctx, c, 2)
	require.NoError(t, err)
	assert.Equal(t, c.tickAt(2), ts)
	assert.Equal(t, 0, c.Len(), "WaitTicks must release its subscription")

	ts, err = WaitTicks(ctx, c, 0)
	require.NoError(t, err)
	assert.Equal(t, c.Now(), ts)
}

func TestTickerClock_Sleep(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping wall-clock test in short mode")
	}

	c, err := NewTickerClock(100)
	require.NoError(t, err)
	defer c.Close()

	var n int
	c.Subscribe(func(time.Duration) { n++ })
	require.NoError(t, c.Sleep(context.Background(), 200*time.Millisecond))

	// Roughly 20 ticks; scheduler jitter makes the exact count unreliable.
	assert.Greater(t, n, 5)
	assert.Less(t, n, 30)
}

func TestMs(t *testing.T) {
	assert.InDelta(t, 16.5, Ms(16500*time.Microsecond), 1e-9)
	assert.InDelta(t, 16.666, Ms(16666667*time.Nanosecond), 1e-9)
	assert.LessOrEqual(t, Ms(Interval(60)+1), 1000.0/60)
}
