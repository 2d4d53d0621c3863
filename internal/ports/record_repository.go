package ports

import (
	"context"
	"errors"
	"station-metrics-service/internal/domain"
	"time"
)

// Returned by Get for an absent date.
var ErrRecordNotFound = errors.New("daily record not found")

// Port: a boundary for retrieving and replacing DailyRecord documents.
//
// Edits are whole-record replacements only: Save upserts a complete
// DailyRecord (worker entries and shipments included), never a partial
// patch. The reporting engine is read-only against this port.
type RecordRepository interface {
	// Retrieve every daily record, ordered by date ascending.
	ListAll(ctx context.Context) ([]domain.DailyRecord, error)

	// Retrieve records with start <= date <= end, ordered by date ascending.
	ListRange(ctx context.Context, start, end time.Time) ([]domain.DailyRecord, error)

	// Retrieve a single record by date. Returns ErrRecordNotFound when absent.
	Get(ctx context.Context, date time.Time) (domain.DailyRecord, error)

	// Insert or fully replace the record for rec.Date.
	Save(ctx context.Context, rec domain.DailyRecord) error

	// Remove the record for the date. Deleting an absent date is not an error.
	Delete(ctx context.Context, date time.Time) error
}
