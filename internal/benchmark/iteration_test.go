// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/framebench/internal/memory"
)

func runOne(t *testing.T, cfg Config, list *fakeList, mem *memory.Sampler) IterationResult {
	t.Helper()
	clock := newClock(t)
	if list.clock == nil && list.stall > 0 {
		list.clock = clock
	}
	r := NewIterationRunner(cfg, clock, list, mem, quietLogger())
	r.now = fixedNow
	res := r.Run(context.Background(), 1)
	assert.Equal(t, 0, clock.Len(), "iteration must leave no subscribers behind")
	return res
}

func TestIteration_StaticSampleCount(t *testing.T) {
	cfg := DefaultConfig()
	list := &fakeList{extent: 7200}

	res := runOne(t, cfg, list, nil)

	assert.InDelta(t, 60, res.FrameCount(), 1)
	assert.InDelta(t, 0.0, res.DroppedFramePercent(), 1e-9)
	assert.InDelta(t, 33.33, res.TimeToFirstFrameMs, 0.05)
	assert.Equal(t, 1, list.resets)
	assert.Empty(t, list.offsets, "static run must not scroll")
	assert.Equal(t, 0.0, res.ScrollDurationMs)
	assert.Equal(t, fixedNow(), res.Timestamp)
	assert.Equal(t, TypeStaticRender, res.Type)
	assert.InDelta(t, 16.667, res.TargetFrameTimeMs, 0.001)
	assert.Equal(t, 60.0, res.RefreshRateHz)
}

func TestIteration_ShortSettleStillResolvesTTFF(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.StaticSettle = 5 * time.Millisecond

	res := runOne(t, cfg, &fakeList{}, nil)

	assert.Empty(t, res.FrameSamples)
	assert.InDelta(t, 33.33, res.TimeToFirstFrameMs, 0.05)
}

func TestIteration_Scroll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = TypeScrollPerformance
	list := &fakeList{extent: 800}

	res := runOne(t, cfg, list, nil)

	assert.Equal(t, 800.0, res.ScrollDistancePx)
	assert.InDelta(t, 1600.0, res.ScrollDurationMs, 2*16.7)
	// Only the down leg is sampled: roughly duration / budget frames.
	assert.InDelta(t, 96, res.FrameCount(), 2)
	assert.Equal(t, 0.0, list.lastOffset(), "returns to top after the scroll")
	assert.Empty(t, res.ScrollError)
	assert.InDelta(t, 60.0, res.ActualFPS(), 1.5)
}

func TestIteration_ScrollNothingToScroll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = TypeScrollPerformance

	res := runOne(t, cfg, &fakeList{extent: 0}, nil)

	assert.NotNil(t, res.FrameSamples)
	assert.Empty(t, res.FrameSamples)
	assert.Equal(t, 0.0, res.ScrollDistancePx)
	assert.Equal(t, 0.0, res.ScrollDurationMs)
	assert.Greater(t, res.TimeToFirstFrameMs, 0.0)
}

func TestIteration_ScrollFailureDegrades(t *testing.T) {
	tests := []struct {
		name    string
		panicky bool
	}{
		{"error", false},
		{"panic", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Type = TypeScrollPerformance
			list := &fakeList{extent: 800, failAfter: 20, panicky: tt.panicky}

			res := runOne(t, cfg, list, nil)

			assert.Empty(t, res.FrameSamples)
			assert.Equal(t, 0.0, res.ScrollDistancePx)
			assert.Equal(t, 0.0, res.ScrollDurationMs)
			assert.NotEmpty(t, res.ScrollError)
			assert.Greater(t, res.TimeToFirstFrameMs, 0.0)
		})
	}
}

func TestIteration_WorkloadPanicsAreContained(t *testing.T) {
	t.Run("extent", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Type = TypeScrollPerformance
		list := &fakeList{extent: 800, panicOnExtent: true}

		res := runOne(t, cfg, list, nil)

		assert.NotNil(t, res.FrameSamples)
		assert.Empty(t, res.FrameSamples)
		assert.Equal(t, 0.0, res.ScrollDistancePx)
		assert.Equal(t, 0.0, res.ScrollDurationMs)
		assert.Contains(t, res.ScrollError, "layout not ready")
		assert.Greater(t, res.TimeToFirstFrameMs, 0.0)
		assert.Equal(t, 0.0, list.lastOffset(), "still returns to top")
	})

	t.Run("reset", func(t *testing.T) {
		cfg := DefaultConfig()
		list := &fakeList{extent: 800, panicOnReset: true}

		res := runOne(t, cfg, list, nil)

		assert.Equal(t, 1, list.resets)
		assert.InDelta(t, 60, res.FrameCount(), 1)
		assert.Empty(t, res.ScrollError)
	})
}

func TestResetWorkload_RecoversPanic(t *testing.T) {
	err := resetWorkload(&fakeList{panicOnReset: true})
	assert.ErrorIs(t, err, ErrWorkloadPanic)

	extent, err := scrollExtent(&fakeList{extent: 400, panicOnExtent: true})
	assert.ErrorIs(t, err, ErrWorkloadPanic)
	assert.Equal(t, 0.0, extent)

	extent, err = scrollExtent(&fakeList{extent: 400})
	require.NoError(t, err)
	assert.Equal(t, 400.0, extent)
}

func TestIteration_RenderCostDropsFrames(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = TypeScrollPerformance
	list := &fakeList{extent: 800, stall: 20 * time.Millisecond}

	res := runOne(t, cfg, list, nil)

	require.NotEmpty(t, res.FrameSamples)
	assert.Greater(t, res.DroppedFramePercent(), 90.0)
	assert.Greater(t, res.JankyFramePercent(), 90.0)
	assert.NotEqual(t, "A", string(res.Grade()))
	assert.Equal(t, 800.0, res.ScrollDistancePx)
}

func TestIteration_Memory(t *testing.T) {
	values := []float64{50, 50, 62.5}
	i := 0
	probe := memory.ProbeFunc{Label: "RSS", Fn: func() (float64, error) {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v, nil
	}}
	mem := memory.NewSampler(quietLogger(), probe)
	require.NoError(t, mem.RecordBaseline())

	cfg := DefaultConfig()
	cfg.Type = TypeMemoryUsage
	res := runOne(t, cfg, &fakeList{}, mem)

	assert.True(t, res.MemoryProfiled)
	assert.Equal(t, "RSS", res.MemoryBasis)
	assert.InDelta(t, 12.5, res.MemoryDeltaMB, 1e-9)
}

func TestIteration_MemoryUnsupported(t *testing.T) {
	mem := memory.NewSampler(quietLogger())

	res := runOne(t, DefaultConfig(), &fakeList{}, mem)

	assert.False(t, res.MemoryProfiled)
	assert.Equal(t, 0.0, res.MemoryDeltaMB)
	assert.Empty(t, res.MemoryBasis)
}
