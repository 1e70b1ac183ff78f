// Package store keeps the fetch journal: one row per API request with its
// endpoint, status, outcome, size and latency. Response bodies are never stored.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/abelbrown/touchline/internal/fetch"
	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Verify Store satisfies the fetch client's recorder at compile time.
var _ fetch.Recorder = (*Store)(nil)

// EndpointStats aggregates the journal for one endpoint.
type EndpointStats struct {
	Endpoint    string
	Requests    int
	Failures    int
	AvgDuration time.Duration
	LastStatus  int
	LastAt      time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fetch_attempts (
		request_id TEXT PRIMARY KEY,
		endpoint TEXT NOT NULL,
		status INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		bytes INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_started ON fetch_attempts(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_attempts_endpoint ON fetch_attempts(endpoint);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// RecordAttempt appends one attempt to the journal.
func (s *Store) RecordAttempt(ctx context.Context, a fetch.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO fetch_attempts (
			request_id, endpoint, status, outcome, bytes, duration_ms, started_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.RequestID, a.Endpoint, a.Status, string(a.Outcome), a.Bytes, a.Duration.Milliseconds(), a.At.UTC())
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]fetch.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT request_id, endpoint, status, outcome, bytes, duration_ms, started_at
		FROM fetch_attempts
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []fetch.Attempt
	for rows.Next() {
		var (
			a       fetch.Attempt
			outcome string
			ms      int64
		)
		if err := rows.Scan(&a.RequestID, &a.Endpoint, &a.Status, &outcome, &a.Bytes, &ms, &a.At); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Outcome = fetch.Outcome(outcome)
		a.Duration = time.Duration(ms) * time.Millisecond
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Stats aggregates the journal per endpoint, busiest first.
func (s *Store) Stats(ctx context.Context) ([]EndpointStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.endpoint,
		       COUNT(*),
		       SUM(CASE WHEN a.outcome != 'ok' THEN 1 ELSE 0 END),
		       CAST(AVG(a.duration_ms) AS INTEGER),
		       (SELECT b.status FROM fetch_attempts b WHERE b.endpoint = a.endpoint ORDER BY b.started_at DESC LIMIT 1),
		       MAX(a.started_at)
		FROM fetch_attempts a
		GROUP BY a.endpoint
		ORDER BY COUNT(*) DESC, a.endpoint
	`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []EndpointStats
	for rows.Next() {
		var (
			st     EndpointStats
			avgMS  int64
			lastAt string
		)
		if err := rows.Scan(&st.Endpoint, &st.Requests, &st.Failures, &avgMS, &st.LastStatus, &lastAt); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		st.AvgDuration = time.Duration(avgMS) * time.Millisecond
		st.LastAt = parseSQLiteTime(lastAt)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Prune deletes attempts older than the cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM fetch_attempts WHERE started_at < ?`, olderThan.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	return result.RowsAffected()
}

// parseSQLiteTime parses the text form of a DATETIME produced by an aggregate,
// where the driver cannot infer the column type.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
