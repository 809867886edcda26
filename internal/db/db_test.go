package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	// Use temp directory for test isolation
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	// Verify database file was created
	dbPath := filepath.Join(tmpDir, "fern.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}

	// Verify WAL mode is active
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		t.Fatalf("failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}

	// Verify schema was created
	for _, table := range []string{"mood_entries", "journal_entries", "discovery_progress", "settings"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestInit_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	baseDir := filepath.Join(tmpDir, "nested", "path", ".fern")

	db, err := Init(baseDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		t.Errorf("base directory not created at %s", baseDir)
	}
}

func TestInit_SchemaVersion(t *testing.T) {
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	db1, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	db1.Close()

	db2, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer db2.Close()
}
