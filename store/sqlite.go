// Package store persists the last successfully fetched emotion batch per
// user, so the dashboard degrades to stale data instead of an empty
// calendar when the upstream API is unreachable.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/gamijournal/emocal/model"
)

// SnapshotStore stores and retrieves normalized entry batches.
type SnapshotStore interface {
	// SaveSnapshot replaces the stored batch for the user.
	SaveSnapshot(ctx context.Context, userID string, entries []model.NormalizedEntry, fetchedAt time.Time) error
	// GetSnapshot returns the stored batch and its fetch time. Returns
	// model.ErrSnapshotNotFound when the user has no snapshot.
	GetSnapshot(ctx context.Context, userID string) ([]model.NormalizedEntry, time.Time, error)
	// Close closes the store connection.
	Close() error
}

// SQLiteStore is the SQLite-backed SnapshotStore implementation.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (or creates) the snapshot database under dataDir
// and applies the given migration function.
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "emocal.db")
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// SaveSnapshot replaces the stored batch for the user in one transaction.
// Entry order is preserved so replayed batches keep the normalizer's
// last-write-wins semantics for duplicate dates.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, userID string, entries []model.NormalizedEntry, fetchedAt time.Time) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_entries WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear previous entries: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (user_id, batch_id, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET batch_id = excluded.batch_id, fetched_at = excluded.fetched_at`,
		userID, uuid.NewString(), fetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_entries (user_id, seq, date_key, emotion, raw_emotion, raw_date)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, userID, i, e.DateKey, e.Emotion.Label(), e.RawEmotion, e.RawDate); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.DateKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// GetSnapshot loads the stored batch for the user in original order.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, userID string) ([]model.NormalizedEntry, time.Time, error) {
	var fetchedAtStr string
	err := s.conn.QueryRowContext(ctx,
		`SELECT fetched_at FROM snapshots WHERE user_id = ?`, userID).Scan(&fetchedAtStr)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, model.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339Nano, fetchedAtStr)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT date_key, emotion, raw_emotion, raw_date
		 FROM snapshot_entries WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []model.NormalizedEntry
	for rows.Next() {
		var entry model.NormalizedEntry
		var emotionLabel string
		if err := rows.Scan(&entry.DateKey, &emotionLabel, &entry.RawEmotion, &entry.RawDate); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan entry: %w", err)
		}
		// stored labels are canonical, so this round-trips exactly
		entry.Emotion = model.MapEmotion(emotionLabel)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, fetchedAt, nil
}

// Close closes the store connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
