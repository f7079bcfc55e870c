// Package sqlite implements the repository interfaces on SQLite via
// database/sql and the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements both repository
// interfaces. It owns the schema: New runs the migrations before
// returning.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and migrates it.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection: SQLite allows a single writer, and with ":memory:"
	// every additional pool connection would be a separate empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL keeps reads concurrent with writes; a web server needs that.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right after
// New succeeds.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it
// idempotent, so it is safe to run on every start.
//
// The UNIQUE constraint on users.username is the single point where
// registration races are decided: concurrent inserts with the same
// username produce exactly one winner, no application-level lock needed.
//
// A user's blog list is never stored on the user row. It is derived from
// the indexed user_id column, so the blog's owner reference and the
// owner's blog list cannot disagree: every create or delete is one row
// write against one table.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			name          TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS blogs (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			author     TEXT NOT NULL DEFAULT '',
			url        TEXT NOT NULL,
			likes      INTEGER NOT NULL DEFAULT 0,
			user_id    TEXT NOT NULL REFERENCES users(id),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id);
		CREATE INDEX IF NOT EXISTS idx_blogs_created_at ON blogs(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating blogs table: %w", err)
	}

	return nil
}
