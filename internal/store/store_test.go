package store

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestStore_RecordRunAndCount(t *testing.T) {
	s := openTestStore(t)
	defer s.Close()

	run := Run{
		StartedAt:   time.Now(),
		Duration:    250 * time.Millisecond,
		OwnerCount:  3,
		SystemCount: 40,
		JumpCount:   90,
		Width:       1856,
		Height:      2048,
		HadOverlay:  true,
	}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	var count int
	if err := s.sql.QueryRow("SELECT COUNT(*) FROM render_runs").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 1 {
		t.Fatalf("render_runs count = %d, want 1", count)
	}

	var owners int
	if err := s.sql.QueryRow("SELECT owner_count FROM render_runs LIMIT 1").Scan(&owners); err != nil {
		t.Fatalf("owner_count query: %v", err)
	}
	if owners != 3 {
		t.Fatalf("owner_count = %d, want 3", owners)
	}
}

func TestStore_NilStoreIsNoOp(t *testing.T) {
	var s *Store
	if err := s.RecordRun(Run{}); err != nil {
		t.Fatalf("RecordRun on nil store: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil store: %v", err)
	}
}
