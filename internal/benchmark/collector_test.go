// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_FirstTickProducesNoSample(t *testing.T) {
	clock := newClock(t)
	c := NewCollector(clock)

	c.Start()
	require.NoError(t, clock.Sleep(context.Background(), time.Second))
	samples := c.Stop()

	// 60 ticks observed, the first only sets the reference.
	assert.Len(t, samples, 59)
	for i, s := range samples {
		assert.InDelta(t, 16.667, s, 0.01, "sample %d", i)
	}
}

func TestCollector_StopWhileIdle(t *testing.T) {
	c := NewCollector(newClock(t))

	samples := c.Stop()
	assert.NotNil(t, samples)
	assert.Empty(t, samples)
	assert.False(t, c.Armed())
}

func TestCollector_RearmDoesNotLeak(t *testing.T) {
	clock := newClock(t)
	c := NewCollector(clock)

	c.Start()
	c.Start()
	c.Start()
	assert.Equal(t, 1, clock.Len())
	assert.True(t, c.Armed())

	c.Stop()
	c.Stop()
	assert.Equal(t, 0, clock.Len())
}

func TestCollector_RestartClearsState(t *testing.T) {
	clock := newClock(t)
	ctx := context.Background()
	c := NewCollector(clock)

	c.Start()
	require.NoError(t, clock.Sleep(ctx, 100*time.Millisecond))
	c.Start()
	require.NoError(t, clock.Sleep(ctx, 200*time.Millisecond))
	samples := c.Stop()

	// A stale reference from the first arming would add a long first sample.
	assert.Len(t, samples, 11)
	for _, s := range samples {
		assert.Less(t, s, 17.0)
	}

	assert.Empty(t, c.Stop(), "samples are handed over only once")
}

func TestCollector_StallShowsAsLongFrame(t *testing.T) {
	clock := newClock(t)
	c := NewCollector(clock)

	stalled := false
	clock.Subscribe(func(time.Duration) {
		if !stalled {
			stalled = true
			clock.Stall(40 * time.Millisecond)
		}
	})

	c.Start()
	require.NoError(t, clock.Sleep(context.Background(), 200*time.Millisecond))
	samples := c.Stop()

	require.NotEmpty(t, samples)
	assert.InDelta(t, 50.0, samples[0], 0.01)
}
