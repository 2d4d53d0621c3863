package ports

import (
	"context"
	"time"
)

// Port: short-lived cache for rendered report payloads.
//
// The reporting engine always recomputes; this sits at the API boundary
// to absorb repeated identical report requests over a large history.
// Get reports a miss with ok=false, not an error.
type ReportCache interface {
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Drop every cached report. Called after record or alias writes.
	Invalidate(ctx context.Context) error
}
