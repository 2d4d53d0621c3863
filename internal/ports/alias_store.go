package ports

import (
	"context"
	"station-metrics-service/internal/domain"
)

// Port: persistence for the worker alias map.
//
// Replace swaps the whole map in one transaction. Renames are
// load-modify-replace; last-writer-wins is acceptable, a partially
// applied map is not.
type AliasStore interface {
	Load(ctx context.Context) (domain.AliasMap, error)
	Replace(ctx context.Context, aliases domain.AliasMap) error
}
