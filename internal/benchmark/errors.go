// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import "errors"

var (
	// ErrScrollPanic wraps a panic raised by the workload while scrolling.
	ErrScrollPanic = errors.New("workload panicked during scroll")

	// ErrWorkloadPanic wraps a panic raised by the workload outside a scroll.
	ErrWorkloadPanic = errors.New("workload panicked")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("benchmark already started")
)
