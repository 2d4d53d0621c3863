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

// Postgres-backed implementation of the RecordRepository port (pgx
// stdlib driver). Semantics match the SQLite adapter: whole-record
// upserts, insertion-ordered worker entries and shipments.
type PostgresRecordRepository struct{ DB *sql.DB }

func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{DB: db}
}

func (p *PostgresRecordRepository) ListAll(ctx context.Context) ([]domain.DailyRecord, error) {
	return p.list(ctx, "", nil)
}

func (p *PostgresRecordRepository) ListRange(ctx context.Context, start, end time.Time) ([]domain.DailyRecord, error) {
	where := "WHERE day >= $1 AND day <= $2"
	return p.list(ctx, where, []any{start.Format(dayFormat), end.Format(dayFormat)})
}

func (p *PostgresRecordRepository) Get(ctx context.Context, date time.Time) (domain.DailyRecord, error) {
	records, err := p.list(ctx, "WHERE day = $1", []any{date.Format(dayFormat)})
	if err != nil {
		return domain.DailyRecord{}, err
	}
	if len(records) == 0 {
		return domain.DailyRecord{}, ports.ErrRecordNotFound
	}
	return records[0], nil
}

func (p *PostgresRecordRepository) list(ctx context.Context, where string, args []any) ([]domain.DailyRecord, error) {
	if p.DB == nil {
		return nil, errors.New("postgres record repository: DB is nil")
	}

	recordsQuery := fmt.Sprintf(`
	SELECT
		to_char(day, 'YYYY-MM-DD'),
		total,
		delivered
	FROM daily_records
	%s
	ORDER BY day;
	`, where)

	rows, err := p.DB.QueryContext(ctx, recordsQuery, args...)
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
		id,
		to_char(day, 'YYYY-MM-DD'),
		name,
		total,
		delivered
	FROM worker_entries
	%s
	ORDER BY day, id;
	`, where)

	entryRows, err := p.DB.QueryContext(ctx, entriesQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: query worker_entries table: %w", err)
	}
	defer entryRows.Close()

	// entry id -> position in the assembled records; shipments join on
	// the entry id, not the name, which can repeat within a day.
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
	ORDER BY day, id;
	`, where)

	shipmentRows, err := p.DB.QueryContext(ctx, shipmentsQuery, args...)
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

func (p *PostgresRecordRepository) Save(ctx context.Context, rec domain.DailyRecord) error {
	if p.DB == nil {
		return errors.New("postgres record repository: DB is nil")
	}

	day := rec.Date.Format(dayFormat)
	station := rec.RecomputedTotal()

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save record: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO daily_records (day, total, delivered)
	VALUES ($1, $2, $3)
	ON CONFLICT (day) DO UPDATE
	SET total = EXCLUDED.total, delivered = EXCLUDED.delivered;
	`, day, station.Total, station.Delivered); err != nil {
		return fmt.Errorf("save record day=%s: upsert daily_records: %w", day, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM worker_entries WHERE day = $1;`, day); err != nil {
		return fmt.Errorf("save record day=%s: clear worker_entries: %w", day, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments WHERE day = $1;`, day); err != nil {
		return fmt.Errorf("save record day=%s: clear shipments: %w", day, err)
	}

	for _, w := range rec.Workers {
		var entryID int64
		if err := tx.QueryRowContext(ctx, `
		INSERT INTO worker_entries (day, name, total, delivered)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
		`, day, w.Name, w.Total, w.Delivered).Scan(&entryID); err != nil {
			return fmt.Errorf("save record day=%s: insert worker %q: %w", day, w.Name, err)
		}
		for _, sh := range w.Shipments {
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO shipments (entry_id, day, tracking_id, status, note)
			VALUES ($1, $2, $3, $4, $5);
			`, entryID, day, sh.TrackingID, string(sh.Status), sh.Note); err != nil {
				return fmt.Errorf("save record day=%s: insert shipment %q: %w", day, sh.TrackingID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save record day=%s: commit tx: %w", day, err)
	}

	return nil
}

func (p *PostgresRecordRepository) Delete(ctx context.Context, date time.Time) error {
	if p.DB == nil {
		return errors.New("postgres record repository: DB is nil")
	}

	day := date.Format(dayFormat)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete record: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"shipments", "worker_entries", "daily_records"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE day = $1;`, table), day); err != nil {
			return fmt.Errorf("delete record day=%s: clear %s: %w", day, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete record day=%s: commit tx: %w", day, err)
	}

	return nil
}
