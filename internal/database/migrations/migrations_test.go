package migrations

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	return db
}

func TestMigrateUp_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	tables := []string{"collections", "collection_game", "schema_migrations"}
	for _, table := range tables {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s was not created: %v", table, err)
		}
	}
}

func TestCheckDBMigrationStatus_FreshDatabase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	err := CheckDBMigrationStatus(db)
	if err == nil {
		t.Fatal("CheckDBMigrationStatus() expected error for fresh database, got nil")
	}
	if err.Error() != "database has no schema version (needs migration)" {
		t.Errorf("CheckDBMigrationStatus() error = %q, want error about needing migration", err.Error())
	}
}

func TestMigrateUp_Idempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("First MigrateUp() failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Errorf("Second MigrateUp() failed: %v (should be idempotent)", err)
	}
	if err := CheckDBMigrationStatus(db); err != nil {
		t.Errorf("CheckDBMigrationStatus() after double migration returned error: %v", err)
	}
}

func TestLatestVersion(t *testing.T) {
	v, err := LatestVersion()
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if v != 2 {
		t.Errorf("LatestVersion() = %d, want 2", v)
	}
}

func TestSchema_NameUniqueIgnoresCase(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	insert := `INSERT INTO collections (id, name, type, created_at, updated_at) VALUES (?, ?, 'CUSTOM', 1, 1)`
	if _, err := db.Exec(insert, "c-1", "favorites"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(insert, "c-2", "Favorites"); err == nil {
		t.Error("expected unique violation for a name differing only in case")
	}
}

func TestSchema_MembershipCascade(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	if _, err := db.Exec(`INSERT INTO collections (id, name, type, created_at, updated_at) VALUES ('c-1', 'Backlog', 'CUSTOM', 1, 1)`); err != nil {
		t.Fatalf("insert collection failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO collection_game (collection_id, game_id, added_at) VALUES ('c-1', 42, 1)`); err != nil {
		t.Fatalf("insert membership failed: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM collections WHERE id = 'c-1'`); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM collection_game`).Scan(&n); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("memberships after delete = %d, want 0", n)
	}
}

func TestSchema_MembershipRequiresCollection(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	if err := MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO collection_game (collection_id, game_id, added_at) VALUES ('missing', 1, 1)`)
	if err == nil {
		t.Error("Expected foreign key constraint violation, but insert succeeded")
	}
}
