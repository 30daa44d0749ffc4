// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"fmt"
	"log/slog"
	"time"
)

// =============================================================================
// EXECUTION TIMING
// =============================================================================

// LogExecDuration runs fn and logs how long it took in the form
// "tag | Execution time for name: N ms". fn's error is returned unchanged.
func LogExecDuration(logger *slog.Logger, tag, name string, fn func() error) error {
	if logger == nil {
		logger = slog.Default()
	}
	if tag == "" {
		tag = "no_tag"
	}
	if name == "" {
		name = "no_name"
	}

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	logger.Info(fmt.Sprintf("%s | Execution time for %s: %d ms", tag, name, elapsed.Milliseconds()),
		"tag", tag,
		"op", name,
		"duration_ms", elapsed.Milliseconds(),
	)
	return err
}
