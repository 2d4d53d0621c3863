package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"station-metrics-service/internal/domain"
	"station-metrics-service/internal/ports"
	"time"
)

const dayFormat = "2006-01-02"

// SQLite-backed implementation of the RecordRepository port.
//
// Saves are whole-record replacements: worker entries and shipments for
// the date are dropped and reinserted in one transaction, so a record
// is never observable half-edited.
type SqliteRecordRepository struct{ DB *sql.DB }

func NewSqliteRecordRepository(db *sql.DB) *SqliteRecordRepository {
	return &SqliteRecordRepository{DB: db}
}

func (s *SqliteRecordRepository) ListAll(ctx context.Context) ([]domain.DailyRecord, error) {
	return s.list(ctx, "", nil)
}

func (s *SqliteRecordRepository) ListRange(ctx context.Context, start, end time.Time) ([]domain.DailyRecord, error) {
	where := "WHERE day >= ? AND day <= ?"
	return s.list(ctx, where, []any{start.Format(dayFormat), end.Format(dayFormat)})
}

func (s *SqliteRecordRepository) Get(ctx context.Context, date time.Time) (domain.DailyRecord, error) {
	records, err := s.list(ctx, "WHERE day = ?", []any{date.Format(dayFormat)})
	if err != nil {
		return domain.DailyRecord{}, err
	}
	if len(records) == 0 {
		return domain.DailyRecord{}, ports.ErrRecordNotFound
	}
	return records[0], nil
}

// list loads records, worker entries, and shipments in three queries
// sharing the same WHERE clause, then reassembles the documents. Worker
// and shipment ordering follows insertion order (rowid).
func (s *SqliteRecordRepository) list(ctx context.Context, where string, args []any) ([]domain.DailyRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite record repository: DB is nil")
	}

	recordsQuery := fmt.Sprintf(`
	SELECT
		day,
		total,
		delivered
	FROM daily_records
	%s
	ORDER BY day;
	`, where)

	rows, err := s.DB.QueryContext(ctx, recordsQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: query daily_records table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.DailyRecord, 0, 64)
	index := make(map[string]int)
	for rows.Next() {
		var day string
		var rec domain.DailyRecord
		if err := rows.Scan(&day, &rec.StationTotal.Total, &rec.StationTotal.Delivered); err != nil {
			return nil, fmt.Errorf("list records: scan row: %w", err)
		}
		date, err := time.Parse(dayFormat, day)
		if err != nil {
			return nil, fmt.Errorf("list records: parse day %q: %w", day, err)
		}
		rec.Date = date
		index[day] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: row iteration: %w", err)
	}

	if len(records) == 0 {
		return records, nil
	}

	entriesQuery := fmt.Sprintf(`
	SELECT
		rowid,
		day,
		name,
		total,
		delivered
	FROM worker_entries
	%s
	ORDER BY day, rowid;
	`, where)

	entryRows, err := s.DB.QueryContext(ctx, entriesQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: query worker_entries table: %w", err)
	}
	defer entryRows.Close()

	// entry rowid -> position in the assembled records, used to attach
	// shipment rows below. One day may list the same name twice, so
	// the name alone cannot identify an entry.
	type entryPos struct{ ri, wi int }
	entryIndex := make(map[int64]entryPos)
	for entryRows.Next() {
		var entryID int64
		var day string
		var entry domain.WorkerDayEntry
		if err := entryRows.Scan(&entryID, &day, &entry.Name, &entry.Total, &entry.Delivered); err != nil {
			return nil, fmt.Errorf("list records: scan worker entry: %w", err)
		}

		ri, ok := index[day]
		if !ok {
			continue
		}
		entryIndex[entryID] = entryPos{ri: ri, wi: len(records[ri].Workers)}
		records[ri].Workers = append(records[ri].Workers, entry)
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("list records: worker entry iteration: %w", err)
	}

	shipmentsQuery := fmt.Sprintf(`
	SELECT
		entry_id,
		tracking_id,
		status,
		note
	FROM shipments
	%s
	ORDER BY day, rowid;
	`, where)

	shipmentRows, err := s.DB.QueryContext(ctx, shipmentsQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: query shipments table: %w", err)
	}
	defer shipmentRows.Close()

	for shipmentRows.Next() {
		var entryID int64
		var status string
		var shipment domain.ShipmentRecord
		if err := shipmentRows.Scan(&entryID, &shipment.TrackingID, &status, &shipment.Note); err != nil {
			return nil, fmt.Errorf("list records: scan shipment: %w", err)
		}
		shipment.Status = domain.ShipmentStatus(status)

		pos, ok := entryIndex[entryID]
		if !ok {
			continue
		}
		records[pos.ri].Workers[pos.wi].Shipments = append(records[pos.ri].Workers[pos.wi].Shipments, shipment)
	}
	if err := shipmentRows.Err(); err != nil {
		return nil, fmt.Errorf("list records: shipment iteration: %w", err)
	}

	return records, nil
}

// Save inserts or fully replaces the record for rec.Date.
func (s *SqliteRecordRepository) Save(ctx context.Context, rec domain.DailyRecord) error {
	if s.DB == nil {
		return errors.New("sqlite record repository: DB is nil")
	}

	day := rec.Date.Format(dayFormat)
	station := rec.RecomputedTotal()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save record: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO daily_records (day, total, delivered)
	VALUES (?, ?, ?);
	`, day, station.Total, station.Delivered); err != nil {
		return fmt.Errorf("save record day=%s: upsert daily_records: %w", day, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM worker_entries WHERE day = ?;`, day); err != nil {
		return fmt.Errorf("save record day=%s: clear worker_entries: %w", day, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments WHERE day = ?;`, day); err != nil {
		return fmt.Errorf("save record day=%s: clear shipments: %w", day, err)
	}

	entryStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO worker_entries (day, name, total, delivered)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save record day=%s: prepare worker insert: %w", day, err)
	}
	defer entryStmt.Close()

	shipmentStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO shipments (entry_id, day, tracking_id, status, note)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("save record day=%s: prepare shipment insert: %w", day, err)
	}
	defer shipmentStmt.Close()

	for _, w := range rec.Workers {
		res, err := entryStmt.ExecContext(ctx, day, w.Name, w.Total, w.Delivered)
		if err != nil {
			return fmt.Errorf("save record day=%s: insert worker %q: %w", day, w.Name, err)
		}
		entryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("save record day=%s: worker %q entry id: %w", day, w.Name, err)
		}
		for _, sh := range w.Shipments {
			if _, err := shipmentStmt.ExecContext(ctx, entryID, day, sh.TrackingID, string(sh.Status), sh.Note); err != nil {
				return fmt.Errorf("save record day=%s: insert shipment %q: %w", day, sh.TrackingID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save record day=%s: commit tx: %w", day, err)
	}

	return nil
}

func (s *SqliteRecordRepository) Delete(ctx context.Context, date time.Time) error {
	if s.DB == nil {
		return errors.New("sqlite record repository: DB is nil")
	}

	day := date.Format(dayFormat)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete record: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"shipments", "worker_entries", "daily_records"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE day = ?;`, table), day); err != nil {
			return fmt.Errorf("delete record day=%s: clear %s: %w", day, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete record day=%s: commit tx: %w", day, err)
	}

	return nil
}
