package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the on-device database
func DBPath() string {
	return filepath.Join("data", "weather-terminal.db")
}

// Open opens (creating if needed) the SQLite database at dbPath and makes
// sure the user tables exist. ":memory:" is accepted for tests.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// ":memory:" databases only live as long as their connection
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if _, err := db.Exec(`
			PRAGMA journal_mode=WAL;
			PRAGMA synchronous=NORMAL;
		`); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragmas: %w", err)
		}
	}

	if err := EnsureUserSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureUserSchema ensures that the saved_locations table exists.
func EnsureUserSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS saved_locations (
			lat TEXT PRIMARY KEY,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating saved_locations table: %w", err)
	}

	return nil
}
