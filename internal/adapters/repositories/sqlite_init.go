package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDailyRecordsQuery := `
	CREATE TABLE IF NOT EXISTS daily_records (
		day TEXT PRIMARY KEY,
		total INTEGER NOT NULL,
		delivered INTEGER NOT NULL
	);
	`

	createWorkerEntriesQuery := `
	CREATE TABLE IF NOT EXISTS worker_entries (
		day TEXT NOT NULL,
		name TEXT NOT NULL,
		total INTEGER NOT NULL,
		delivered INTEGER NOT NULL
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		entry_id INTEGER NOT NULL,
		day TEXT NOT NULL,
		tracking_id TEXT NOT NULL,
		status TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	`

	createAliasesQuery := `
	CREATE TABLE IF NOT EXISTS worker_aliases (
		raw TEXT PRIMARY KEY,
		canonical TEXT NOT NULL
	);
	`

	createEntriesIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_worker_entries_day
	ON worker_entries(day);
	`

	createShipmentsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipments_day
	ON shipments(day);
	`

	statements := []string{
		createDailyRecordsQuery,
		createWorkerEntriesQuery,
		createShipmentsQuery,
		createAliasesQuery,
		createEntriesIndexQuery,
		createShipmentsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
