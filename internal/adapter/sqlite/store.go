// Package sqlite implements the Index port on a single-connection SQLite
// database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/justinmckeown/similitude/internal/adapter/sqlite/migrations"
	"github.com/justinmckeown/similitude/internal/port"
)

// Store implements port.Index using SQLite.
type Store struct {
	db *sql.DB
}

var _ port.Index = (*Store)(nil)

// Open opens (creating if necessary) the index database at dbPath and
// brings its schema up to date. Parent directories are created. Use
// ":memory:" for an in-memory index.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Upserts run in autocommit on one connection; visibility on the same
	// connection is the operative guarantee, not fsync-per-statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
