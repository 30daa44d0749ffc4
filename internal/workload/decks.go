// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workload

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/framebench/internal/telemetry"
)

// =============================================================================
// DECK STORE
// =============================================================================

// Deck is one row of the benchmark list.
type Deck struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	FlashcardCount int       `json:"flashcard_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Schema creates the deck table.
const Schema = `
CREATE TABLE IF NOT EXISTS decks (
	id              INTEGER PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	flashcard_count INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
`

// ErrNotSeeded is returned when the store holds no rows.
var ErrNotSeeded = errors.New("deck store is empty")

// Store holds the decks the list renders.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens or creates a deck database. Use ":memory:" for a private
// in-memory database.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Count returns the number of decks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count decks: %w", err)
	}
	return n, nil
}

// Seed replaces the table contents with n generated decks in one
// transaction and logs the time taken and the size of a sample row.
func (s *Store) Seed(ctx context.Context, n int) error {
	return telemetry.LogExecDuration(s.logger, "db_seed", fmt.Sprintf("insert_%d_decks", n), func() error {
		return s.seed(ctx, n)
	})
}

func (s *Store) seed(ctx context.Context, n int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM decks"); err != nil {
		return fmt.Errorf("failed to clear decks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO decks (id, name, description, flashcard_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		d := generateDeck(int64(i), epoch)
		if i == 1 {
			LogRowSize(s.logger, "db_row_size_add_demo_deck", "deck", d)
		}
		if _, err := stmt.ExecContext(ctx, d.ID, d.Name, d.Description, d.FlashcardCount, d.CreatedAt, d.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert deck %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit decks: %w", err)
	}
	return nil
}

// Range loads decks with positions in [first, last], 0-based, in order.
func (s *Store) Range(ctx context.Context, first, last int) ([]Deck, error) {
	if last < first {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, flashcard_count, created_at, updated_at FROM decks ORDER BY id LIMIT ? OFFSET ?",
		last-first+1, first)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	decks := make([]Deck, 0, last-first+1)
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.FlashcardCount, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read decks: %w", err)
	}
	return decks, nil
}

func generateDeck(id int64, epoch time.Time) Deck {
	created := epoch.Add(time.Duration(id) * time.Minute)
	return Deck{
		ID:             id,
		Name:           fmt.Sprintf("Deck %d", id),
		Description:    fmt.Sprintf("Generated benchmark deck number %d with sample flashcards", id),
		FlashcardCount: int(id%50) + 1,
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}
