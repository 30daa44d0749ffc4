// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workload

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/framebench/internal/benchmark"
	"github.com/jeranaias/framebench/internal/frameclock"
)

var _ benchmark.Workload = (*DeckList)(nil)

type stallRecorder struct {
	total time.Duration
	calls int
}

func (s *stallRecorder) Stall(d time.Duration) {
	s.total += d
	s.calls++
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededStore(t *testing.T, n int) *Store {
	t.Helper()
	store, err := OpenStore(":memory:", quiet())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(context.Background(), n))
	return store
}

func TestStore_SeedAndRange(t *testing.T) {
	store := seededStore(t, 25)
	ctx := context.Background()

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	decks, err := store.Range(ctx, 5, 9)
	require.NoError(t, err)
	require.Len(t, decks, 5)
	assert.Equal(t, int64(6), decks[0].ID)
	assert.Equal(t, "Deck 10", decks[4].Name)
	assert.False(t, decks[0].CreatedAt.IsZero())

	// Reseeding replaces rows.
	require.NoError(t, store.Seed(ctx, 3))
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_OnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "decks.db")
	store, err := OpenStore(path, quiet())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Seed(context.Background(), 10))
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestDeckList_Extent(t *testing.T) {
	store := seededStore(t, 50)

	l, err := NewDeckList(context.Background(), store, 50, nil, DefaultListOptions(), quiet())
	require.NoError(t, err)
	assert.Equal(t, 50*80.0-800, l.ScrollableExtentPx())

	short, err := NewDeckList(context.Background(), store, 5, nil, DefaultListOptions(), quiet())
	require.NoError(t, err)
	assert.Equal(t, 0.0, short.ScrollableExtentPx())
}

func TestDeckList_ScrollBindsRows(t *testing.T) {
	store := seededStore(t, 50)
	clock := &stallRecorder{}

	l, err := NewDeckList(context.Background(), store, 50, clock, DefaultListOptions(), quiet())
	require.NoError(t, err)

	require.NoError(t, l.ResetToInitialState())
	assert.Equal(t, 10, l.Loads())
	require.Len(t, l.Visible(), 10)
	assert.Equal(t, int64(1), l.Visible()[0].ID)

	require.NoError(t, l.ApplyScrollOffset(400))
	assert.Equal(t, 400.0, l.Offset())
	vis := l.Visible()
	require.Len(t, vis, 10)
	assert.Equal(t, int64(6), vis[0].ID)
	assert.Equal(t, int64(15), vis[9].ID)
	assert.Equal(t, 15, l.Loads(), "only rows 11-15 are new")

	// Back up: everything already bound.
	require.NoError(t, l.ApplyScrollOffset(0))
	assert.Equal(t, 15, l.Loads())

	assert.Equal(t, 3, clock.calls)
	opts := DefaultListOptions()
	want := 3*opts.FrameCost + 15*opts.RowCost
	assert.Equal(t, want, clock.total)
}

func TestDeckList_ClampsOffset(t *testing.T) {
	store := seededStore(t, 20)
	l, err := NewDeckList(context.Background(), store, 20, nil, DefaultListOptions(), quiet())
	require.NoError(t, err)

	require.NoError(t, l.ApplyScrollOffset(10_000))
	assert.Equal(t, 800.0, l.Offset())
	assert.Equal(t, int64(20), l.Visible()[len(l.Visible())-1].ID)

	require.NoError(t, l.ApplyScrollOffset(-50))
	assert.Equal(t, 0.0, l.Offset())
}

func TestDeckList_Errors(t *testing.T) {
	empty, err := OpenStore(":memory:", quiet())
	require.NoError(t, err)
	defer empty.Close()

	_, err = NewDeckList(context.Background(), empty, 10, nil, DefaultListOptions(), quiet())
	assert.ErrorIs(t, err, ErrNotSeeded)

	store := seededStore(t, 5)
	_, err = NewDeckList(context.Background(), store, 10, nil, DefaultListOptions(), quiet())
	assert.Error(t, err)
}

func TestDeckList_ClosedStoreFailsScroll(t *testing.T) {
	store := seededStore(t, 30)
	l, err := NewDeckList(context.Background(), store, 30, nil, DefaultListOptions(), quiet())
	require.NoError(t, err)
	require.NoError(t, l.ResetToInitialState())

	require.NoError(t, store.Close())
	assert.Error(t, l.ApplyScrollOffset(1200))
}

// TestDeckList_Benchmark scrolls a seeded list through a full iteration on a
// virtual clock.
func TestDeckList_Benchmark(t *testing.T) {
	store := seededStore(t, 20)
	clock, err := frameclock.NewVirtualClock(60)
	require.NoError(t, err)

	l, err := NewDeckList(context.Background(), store, 20, clock, DefaultListOptions(), quiet())
	require.NoError(t, err)

	cfg := benchmark.DefaultConfig()
	cfg.ItemCount = 20
	cfg.Iterations = 1
	cfg.Type = benchmark.TypeScrollPerformance

	out, err := benchmark.NewOrchestrator(cfg, clock, l, benchmark.Options{Logger: quiet()}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Results, 1)

	r := out.Results[0]
	assert.Equal(t, 800.0, r.ScrollDistancePx)
	assert.InDelta(t, 1600.0, r.ScrollDurationMs, 2*16.7)
	assert.NotEmpty(t, r.FrameSamples)
	assert.Equal(t, 0.0, r.DroppedFramePercent(), "default render cost fits the budget")
	assert.Equal(t, 0.0, l.Offset())
}

func TestRowSizeBytes(t *testing.T) {
	d := generateDeck(7, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	n, err := RowSizeBytes(d)
	require.NoError(t, err)
	data, _ := json.Marshal(d)
	assert.Equal(t, len(data), n)

	_, err = RowSizeBytes(make(chan int))
	assert.Error(t, err)

	total, err := TotalRowSizeBytes([]Deck{d, d})
	require.NoError(t, err)
	assert.Equal(t, 2*n, total)
}
