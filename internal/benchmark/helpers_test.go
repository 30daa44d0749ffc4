// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/framebench/internal/frameclock"
)

var errApply = errors.New("apply failed")

// fakeList is an in-memory Workload that records every offset it is given.
type fakeList struct {
	extent  float64
	offsets []float64
	resets  int

	// failAfter makes ApplyScrollOffset fail once this many offsets were
	// applied. Zero disables it.
	failAfter int
	panicky   bool

	// panicOnReset and panicOnExtent make the matching call panic.
	panicOnReset  bool
	panicOnExtent bool

	// stall charges render cost to the clock on every apply.
	clock *frameclock.VirtualClock
	stall time.Duration
}

func (f *fakeList) ResetToInitialState() error {
	f.resets++
	if f.panicOnReset {
		panic("reset exploded")
	}
	f.offsets = f.offsets[:0]
	return nil
}

func (f *fakeList) ScrollableExtentPx() float64 {
	if f.panicOnExtent {
		panic("layout not ready")
	}
	return f.extent
}

func (f *fakeList) ApplyScrollOffset(px float64) error {
	if f.failAfter > 0 && len(f.offsets) >= f.failAfter && px > 0 {
		if f.panicky {
			panic("list exploded")
		}
		return errApply
	}
	f.offsets = append(f.offsets, px)
	if f.clock != nil && f.stall > 0 {
		f.clock.Stall(f.stall)
	}
	return nil
}

func (f *fakeList) lastOffset() float64 {
	if len(f.offsets) == 0 {
		return 0
	}
	return f.offsets[len(f.offsets)-1]
}

func newClock(t *testing.T) *frameclock.VirtualClock {
	t.Helper()
	c, err := frameclock.NewVirtualClock(60)
	require.NoError(t, err)
	return c
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}
