package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDB creates a fresh in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTest(t, ":memory:")
}

// NewTestFile returns the path of a file-backed test database in a temporary
// directory. Each call to OpenTestFile on that path is a separate instance,
// which lets tests check what survives a restart.
func NewTestFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "omara.sqlite3")
}

// OpenTestFile opens the database at path with the schema applied and closes
// it when the test ends.
func OpenTestFile(t *testing.T, path string) *sql.DB {
	t.Helper()
	return openTest(t, path)
}

func openTest(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := Open(path)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(db); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
