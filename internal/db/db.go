package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Pragmas applied to every connection. WAL keeps the dashboard readable
// while a write is in flight and the busy timeout covers the occasional
// overlap between the web handlers and deweyctl.
const pragmas = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA foreign_keys = ON;
	PRAGMA busy_timeout = 5000;
`

// Open opens the SQLite database at dbPath, applies pragmas, and verifies
// connectivity before handing the handle back.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(pragmas); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}
