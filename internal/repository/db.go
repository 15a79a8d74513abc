package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/CrowdContract/Unstop-smartdocai/internal/config"
)

// schema is the single versioned schema definition, applied idempotently at
// startup. Columns are never probed or added at runtime.
const schema = `
CREATE TABLE IF NOT EXISTS resumes (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    filename      TEXT,
    filepath      TEXT,
    content       TEXT,
    summary       TEXT,
    top_words     TEXT,
    uploaded_at   TEXT,
    used_fallback INTEGER
);`

// NewSQLiteDB opens the embedded database file and applies the schema.
func NewSQLiteDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", cfg.Path, err)
	}

	// A single connection lets sqlite serialize concurrent writers itself;
	// no application-level locking is needed.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}
