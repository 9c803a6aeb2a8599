package store

import (
	"database/sql"
	"fmt"
)

// migrations is the ordered list of schema versions. The database's
// PRAGMA user_version records how many have been applied; opening an older
// database applies only the missing tail, inside one transaction per step.
// Never reorder or edit a released step — append a new one.
var migrations = []string{
	// v1: core tables.
	`CREATE TABLE records (
		id         TEXT PRIMARY KEY,
		knowledge  TEXT NOT NULL,
		questions  TEXT NOT NULL DEFAULT '[]',
		answer     TEXT NOT NULL DEFAULT '',
		assessment TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     TEXT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	);`,

	// v2: tags and the record-tag relation.
	`CREATE TABLE tags (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE TABLE record_tags (
		record_id TEXT NOT NULL REFERENCES records(id) ON DELETE CASCADE,
		tag_id    TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (record_id, tag_id)
	);`,

	// v3: query indexes for history listing and event inspection.
	`CREATE INDEX idx_records_created_at ON records(created_at);
	CREATE INDEX idx_llm_events_purpose ON llm_events(purpose);`,
}

// migrate brings the schema up to the latest version.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		if err := applyMigration(db, i); err != nil {
			return fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, i int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migrations[i]); err != nil {
		return err
	}
	// PRAGMA does not support placeholders.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
		return err
	}
	return tx.Commit()
}
