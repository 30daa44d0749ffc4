// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workload

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// =============================================================================
// DECK LIST
// =============================================================================

// Staller absorbs render cost. frameclock.Loop implements it.
type Staller interface {
	Stall(d time.Duration)
}

// ListOptions sizes the simulated list.
type ListOptions struct {
	RowHeightPx float64
	ViewportPx  float64

	// RowCost is charged per newly bound row, FrameCost per offset change.
	RowCost   time.Duration
	FrameCost time.Duration
}

// DefaultListOptions returns 80 px rows in an 800 px viewport.
func DefaultListOptions() ListOptions {
	return ListOptions{
		RowHeightPx: 80,
		ViewportPx:  800,
		RowCost:     200 * time.Microsecond,
		FrameCost:   2 * time.Millisecond,
	}
}

// DeckList is a virtualized list over a Store. Moving the viewport binds
// rows that scroll into view by loading them from the database, and the
// render cost of that work is charged to the frame clock.
type DeckList struct {
	ctx     context.Context
	store   *Store
	clock   Staller
	opts    ListOptions
	logger  *slog.Logger
	count   int
	offset  float64
	first   int
	last    int
	bound   map[int64]Deck
	loads   int
	visible []Deck
}

// NewDeckList creates a list over the first itemCount decks of store.
// clock may be nil, in which case no render cost is charged.
func NewDeckList(ctx context.Context, store *Store, itemCount int, clock Staller, opts ListOptions, logger *slog.Logger) (*DeckList, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RowHeightPx <= 0 {
		opts.RowHeightPx = DefaultListOptions().RowHeightPx
	}
	if opts.ViewportPx <= 0 {
		opts.ViewportPx = DefaultListOptions().ViewportPx
	}

	n, err := store.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotSeeded
	}
	if itemCount > n {
		return nil, fmt.Errorf("list wants %d items but store holds %d", itemCount, n)
	}

	l := &DeckList{
		ctx:    ctx,
		store:  store,
		clock:  clock,
		opts:   opts,
		logger: logger,
		count:  itemCount,
		first:  -1,
		last:   -1,
		bound:  make(map[int64]Deck),
	}
	return l, nil
}

// ResetToInitialState drops every bound row and lays out the first screen.
func (l *DeckList) ResetToInitialState() error {
	l.bound = make(map[int64]Deck)
	l.first, l.last = -1, -1
	l.offset = 0
	return l.bind(0)
}

// ScrollableExtentPx is content height minus viewport, floored at 0.
func (l *DeckList) ScrollableExtentPx() float64 {
	return math.Max(0, float64(l.count)*l.opts.RowHeightPx-l.opts.ViewportPx)
}

// ApplyScrollOffset moves the viewport, clamped to the scrollable range.
func (l *DeckList) ApplyScrollOffset(px float64) error {
	px = math.Max(0, math.Min(px, l.ScrollableExtentPx()))
	l.offset = px
	return l.bind(px)
}

// Offset returns the current viewport offset.
func (l *DeckList) Offset() float64 { return l.offset }

// Visible returns the rows currently in the viewport.
func (l *DeckList) Visible() []Deck { return l.visible }

// Loads returns how many rows were fetched from the store since creation.
func (l *DeckList) Loads() int { return l.loads }

// visibleRange returns the 0-based rows intersecting the viewport.
func (l *DeckList) visibleRange(offset float64) (int, int) {
	if l.count == 0 {
		return 0, -1
	}
	first := int(offset / l.opts.RowHeightPx)
	last := int(math.Ceil((offset+l.opts.ViewportPx)/l.opts.RowHeightPx)) - 1
	if last >= l.count {
		last = l.count - 1
	}
	if first > last {
		first = last
	}
	return first, last
}

func (l *DeckList) bind(offset float64) error {
	first, last := l.visibleRange(offset)

	var cost time.Duration
	if first != l.first || last != l.last {
		fresh, err := l.loadMissing(first, last)
		if err != nil {
			return err
		}
		cost += time.Duration(fresh) * l.opts.RowCost
		l.first, l.last = first, last
	}
	cost += l.opts.FrameCost

	l.visible = make([]Deck, 0, last-first+1)
	for i := first; i <= last; i++ {
		if d, ok := l.bound[int64(i+1)]; ok {
			l.visible = append(l.visible, d)
		}
	}

	if l.clock != nil && cost > 0 {
		l.clock.Stall(cost)
	}
	return nil
}

// loadMissing fetches rows in [first, last] not yet bound and returns how
// many were new.
func (l *DeckList) loadMissing(first, last int) (int, error) {
	lo, hi := -1, -1
	for i := first; i <= last; i++ {
		if _, ok := l.bound[int64(i+1)]; !ok {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if lo < 0 {
		return 0, nil
	}

	decks, err := l.store.Range(l.ctx, lo, hi)
	if err != nil {
		return 0, fmt.Errorf("bind rows %d-%d: %w", lo, hi, err)
	}
	for _, d := range decks {
		l.bound[d.ID] = d
	}
	l.loads += len(decks)
	l.logger.Debug("rows bound", "first", lo, "last", hi, "bound", len(l.bound))
	return len(decks), nil
}
