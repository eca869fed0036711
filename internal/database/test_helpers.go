package database

import (
	"path/filepath"
	"testing"
)

// setupTestDB opens a throwaway SQLite database in a temp directory. The
// schema matches production since SQLite tables are created on open.
func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "stylerack_test.db")
	db, err := NewDB(Config{Type: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}
