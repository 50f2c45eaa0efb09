package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

// OpenTestSQLite opens a migrated SQLite database in a temp dir, closed when the test ends.
func OpenTestSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlx.Open(DriverSQLite, path+"?_foreign_keys=on")
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}
