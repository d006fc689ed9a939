// Package store persists usage stats for handled queries in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mylo/internal/assistant"
)

// Store implements assistant.Recorder using SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Single connection for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id          TEXT PRIMARY KEY,
		channel     TEXT,
		sender      TEXT,
		intent      TEXT NOT NULL,
		blocks      INTEGER DEFAULT 0,
		created_at  DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_queries_intent ON queries(intent, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores one handled query.
func (s *Store) Record(ctx context.Context, ev assistant.QueryEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (id, channel, sender, intent, blocks, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Channel, ev.Sender, ev.Intent, ev.Blocks, ev.At.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert query event: %w", err)
	}
	return nil
}

// Totals returns the number of handled queries per intent kind.
func (s *Store) Totals(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT intent, COUNT(*) FROM queries GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var intent string
		var count int64
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		totals[intent] = count
	}
	return totals, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
