package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Worker entry and shipment
// rows carry a serial id because Postgres has no rowid to preserve
// insertion order.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS daily_records (
		day DATE PRIMARY KEY,
		total INTEGER NOT NULL,
		delivered INTEGER NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS worker_entries (
		id BIGSERIAL PRIMARY KEY,
		day DATE NOT NULL,
		name TEXT NOT NULL,
		total INTEGER NOT NULL,
		delivered INTEGER NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS shipments (
		id BIGSERIAL PRIMARY KEY,
		entry_id BIGINT NOT NULL,
		day DATE NOT NULL,
		tracking_id TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS worker_aliases (
		raw TEXT PRIMARY KEY,
		canonical TEXT NOT NULL
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_worker_entries_day
	ON worker_entries(day);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_shipments_day
	ON shipments(day);
	`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
