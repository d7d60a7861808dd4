// Package localstore opens the local SQLite database used for the lookup
// cache and the call journal, and owns its schema.
package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFileName is the database file created inside the cache directory.
const DefaultFileName = "twist-mcp.db"

// Open creates dir if needed and opens the database file inside it with the
// schema applied.
func Open(dir, name string) (*sql.DB, error) {
	if name == "" {
		name = DefaultFileName
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dir, name)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at);

		CREATE TABLE IF NOT EXISTS call_journal (
			id         TEXT PRIMARY KEY,
			tool       TEXT NOT NULL,
			arguments  BLOB NOT NULL,
			status     TEXT NOT NULL,
			error      TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_call_journal_created ON call_journal(created_at);
	`)
	if err != nil {
		return fmt.Errorf("initialising schema: %w", err)
	}
	return nil
}
