// Package store implements the render-run ledger: a small SQLite
// database recording when a render happened and how big it was, never
// the pixels or owner-index data it produced. It follows the teacher's
// internal/db package — a sql.DB wrapper opened against a file path
// with a schema_version-gated migration step.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"sovmap/internal/logger"
	"sovmap/internal/model"
)

// Store wraps the SQLite-backed render-run ledger.
type Store struct {
	sql *sql.DB
}

// Run is one completed (or failed) render, as recorded in the ledger.
type Run struct {
	ID          string
	StartedAt   time.Time
	Duration    time.Duration
	OwnerCount  int
	SystemCount int
	JumpCount   int
	Width       int
	Height      int
	HadOverlay  bool
	Err         string
}

// Open opens (or creates) the ledger database at path and runs its
// migrations. A host that doesn't want a ledger simply never calls
// Open — every engine operation that records to a Store tolerates a
// nil *Store by skipping the write.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, model.ErrIOFailure)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping store %s: %w", path, model.ErrIOFailure)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate store %s: %w", path, model.ErrIOFailure)
	}
	logger.Success("STORE", fmt.Sprintf("opened %s", path))
	return s, nil
}

// Close closes the underlying database connection. Close is safe to
// call on a nil *Store.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.sql.Close()
}

func (s *Store) migrate() error {
	version := 0
	s.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS render_runs (
				id           TEXT PRIMARY KEY,
				started_at   TEXT NOT NULL,
				duration_ms  INTEGER NOT NULL,
				owner_count  INTEGER NOT NULL,
				system_count INTEGER NOT NULL,
				jump_count   INTEGER NOT NULL,
				width        INTEGER NOT NULL,
				height       INTEGER NOT NULL,
				had_overlay  INTEGER NOT NULL,
				error        TEXT NOT NULL DEFAULT ''
			);
			CREATE INDEX IF NOT EXISTS idx_render_runs_started ON render_runs(started_at);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("STORE", "applied migration v1")
	}
	return nil
}

// RecordRun inserts a completed render-run record, stamping it with a
// fresh id. RecordRun is a no-op on a nil *Store, so callers never have
// to branch on whether a ledger was configured.
func (s *Store) RecordRun(run Run) error {
	if s == nil {
		return nil
	}
	id := uuid.New().String()
	_, err := s.sql.Exec(`
		INSERT INTO render_runs (id, started_at, duration_ms, owner_count, system_count, jump_count, width, height, had_overlay, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Duration.Milliseconds(),
		run.OwnerCount, run.SystemCount, run.JumpCount, run.Width, run.Height, boolToInt(run.HadOverlay), run.Err,
	)
	if err != nil {
		return fmt.Errorf("record render run: %w", model.ErrIOFailure)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
