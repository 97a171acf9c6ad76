package db

import (
	"path/filepath"
	"testing"
)

func TestApplyMigrationsCreatesCacheTable(t *testing.T) {
	t.Parallel()

	sqldb, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqldb.Close()

	if err := ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := sqldb.Exec(`
INSERT INTO provider_search_cache(provider, query, limit_requested, results_json, expires_at)
VALUES('usda', 'rice', 1, '[]', CURRENT_TIMESTAMP)
`); err != nil {
		t.Fatalf("insert into cache table: %v", err)
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()

	sqldb, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqldb.Close()

	if err := ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply: %v", err)
	}

	var applied int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", applied)
	}
}
