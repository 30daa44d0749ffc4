// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollDriver_ReachesTarget(t *testing.T) {
	clock := newClock(t)
	list := &fakeList{extent: 800}
	d := NewScrollDriver(clock, 500)

	out, err := d.Drive(context.Background(), list, 800)
	require.NoError(t, err)

	// 800 px at 500 px/s is 1.6 s; allow a couple of refreshes either way.
	assert.InDelta(t, 1600.0, out.DurationMs, 2*16.7)
	assert.Equal(t, 800.0, out.DistancePx)
	assert.Equal(t, 800.0, list.lastOffset())
	assert.Equal(t, 0, clock.Len(), "driver must unsubscribe when done")
}

func TestScrollDriver_Monotonic(t *testing.T) {
	clock := newClock(t)
	list := &fakeList{}
	d := NewScrollDriver(clock, 1200)

	_, err := d.Drive(context.Background(), list, 3000)
	require.NoError(t, err)

	require.NotEmpty(t, list.offsets)
	for i := 1; i < len(list.offsets); i++ {
		assert.GreaterOrEqual(t, list.offsets[i], list.offsets[i-1])
		assert.LessOrEqual(t, list.offsets[i], 3000.0)
	}
}

func TestScrollDriver_NonPositiveTarget(t *testing.T) {
	for _, target := range []float64{0, -120} {
		clock := newClock(t)
		list := &fakeList{}
		d := NewScrollDriver(clock, 500)

		out, err := d.Drive(context.Background(), list, target)
		require.NoError(t, err)
		assert.Equal(t, ScrollOutcome{}, out)
		assert.Empty(t, list.offsets)
		assert.Equal(t, int64(0), int64(clock.Now()), "no time should pass")
	}
}

func TestScrollDriver_ApplyError(t *testing.T) {
	clock := newClock(t)
	list := &fakeList{failAfter: 10}
	d := NewScrollDriver(clock, 500)

	out, err := d.Drive(context.Background(), list, 800)
	assert.ErrorIs(t, err, errApply)
	assert.Equal(t, ScrollOutcome{}, out)
	assert.Len(t, list.offsets, 10)
	assert.Equal(t, 0, clock.Len())
}

func TestScrollDriver_ApplyPanic(t *testing.T) {
	clock := newClock(t)
	list := &fakeList{failAfter: 3, panicky: true}
	d := NewScrollDriver(clock, 500)

	_, err := d.Drive(context.Background(), list, 800)
	assert.ErrorIs(t, err, ErrScrollPanic)
	assert.Contains(t, err.Error(), "list exploded")
}

func TestScrollDriver_Cancelled(t *testing.T) {
	clock := newClock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScrollDriver(clock, 500).Drive(ctx, &fakeList{}, 800)
	assert.ErrorIs(t, err, context.Canceled)
}
