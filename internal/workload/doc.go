// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workload provides the list that framebench measures.
//
// Decks are seeded into SQLite and bound into a virtualized list as they
// scroll into view. The list implements benchmark.Workload and charges its
// render cost to the frame clock, so headless runs show the frame drops a
// slow list would cause on a real display.
//
// # Key Types
//
//   - Store: SQLite-backed deck table
//   - DeckList: viewport over a Store with 80 px rows
//   - RowSizeBytes: encoded size of a row, for db_row_size logging
package workload
