package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the docket SQLite database at the given path, creating the
// parent directory if needed. ":memory:" opens an in-memory database.
// WAL mode and foreign key enforcement are enabled and all migrations run
// before the handle is returned.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// Pragmas ride in the DSN because busy_timeout and foreign_keys are
	// per-connection settings; a one-off Exec would only reach a single
	// pooled connection. WAL keeps conflict queries readable while a
	// scheduling write is in flight, and the busy timeout makes a second
	// writer wait for the write lock instead of failing with SQLITE_BUSY.
	// _txlock=immediate starts transactions as writers: a deferred
	// transaction that reads first and writes later gets SQLITE_BUSY
	// immediately on the read->write upgrade, bypassing the busy handler.
	dsn := path + "?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, nil
}
