// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workload

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// RowSizeBytes returns the UTF-8 length of v's JSON encoding.
func RowSizeBytes(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to encode row: %w", err)
	}
	return len(data), nil
}

// LogRowSize logs the encoded size of one row under tag.
func LogRowSize(logger *slog.Logger, tag, name string, v any) {
	if tag == "" {
		tag = "db_row_size"
	}
	n, err := RowSizeBytes(v)
	if err != nil {
		logger.Warn("row size unavailable", "tag", tag, "name", name, "error", err)
		return
	}
	kb := float64(n) / 1024
	logger.Info(fmt.Sprintf("%s | Row size for %s: %d bytes (%.2f KB)", tag, name, n, kb),
		"tag", tag,
		"bytes", n,
	)
}

// TotalRowSizeBytes sums RowSizeBytes over rows.
func TotalRowSizeBytes[T any](rows []T) (int, error) {
	total := 0
	for _, r := range rows {
		n, err := RowSizeBytes(r)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
