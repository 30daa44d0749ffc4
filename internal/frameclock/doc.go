// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package frameclock provides the display-refresh timeline for frame benchmarks.
//
// Every measurement in a run happens on one cooperative timeline: a Loop
// delivers ticks only while the driving goroutine waits in Sleep or Until,
// so collectors, drivers and probes see ticks strictly in order and never
// race with the code that arms them.
//
// # Key Types
//
//   - FrameClock: Subscribe/Unsubscribe to per-refresh ticks
//   - Loop: FrameClock plus Now, Sleep, Until and Stall
//   - VirtualClock: deterministic simulated time for headless runs and tests
//   - TickerClock: wall-clock time driven by time.Ticker
//
// # Usage
//
//	clock, _ := frameclock.NewVirtualClock(60)
//	h := clock.Subscribe(func(now time.Duration) { ... })
//	_ = clock.Sleep(ctx, time.Second) // delivers 60 ticks
//	clock.Unsubscribe(h)
package frameclock
