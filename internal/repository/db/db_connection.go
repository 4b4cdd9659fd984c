package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaDatasets = `
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    audit TEXT NOT NULL
);
`

const schemaStopEvents = `
CREATE TABLE IF NOT EXISTS stop_events (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    start_at TEXT NOT NULL,
    end_at TEXT NOT NULL,
    duration_min REAL NOT NULL,
    production_date TEXT NOT NULL,
    area TEXT NOT NULL,
    type TEXT NOT NULL,
    description TEXT NOT NULL,
    equipment TEXT NOT NULL,
    component TEXT NOT NULL,
    failure_mode TEXT NOT NULL,
    stopped_flag TEXT NOT NULL,
    station_side TEXT NOT NULL,
    quench_tag TEXT NOT NULL,
    PRIMARY KEY (dataset_id, seq)
);
`

const schemaProductionRecords = `
CREATE TABLE IF NOT EXISTS production_records (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    date_key TEXT NOT NULL,
    recorded_at TEXT NOT NULL,
    planned_ovens REAL NOT NULL,
    actual_ovens REAL NOT NULL,
    oven_count REAL NOT NULL,
    yield_pct REAL NOT NULL,
    water_m3 REAL NOT NULL,
    wet_charge_ton REAL NOT NULL,
    PRIMARY KEY (dataset_id, date_key)
);
`

const schemaIgnoredRows = `
CREATE TABLE IF NOT EXISTS ignored_rows (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    row_num INTEGER NOT NULL,
    reason TEXT NOT NULL
);
`

const schemaOperators = `
CREATE TABLE IF NOT EXISTS operators (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaDatasets,
		schemaStopEvents,
		schemaProductionRecords,
		schemaIgnoredRows,
		schemaOperators,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
