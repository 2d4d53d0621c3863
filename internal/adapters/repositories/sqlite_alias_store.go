package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"station-metrics-service/internal/domain"
)

// SQLite-backed implementation of the AliasStore port. Replace swaps
// the whole map in one transaction so a rename is never half-applied.
type SqliteAliasStore struct{ DB *sql.DB }

func NewSqliteAliasStore(db *sql.DB) *SqliteAliasStore {
	return &SqliteAliasStore{DB: db}
}

func (s *SqliteAliasStore) Load(ctx context.Context) (domain.AliasMap, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite alias store: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT raw, canonical FROM worker_aliases;`)
	if err != nil {
		return nil, fmt.Errorf("load aliases: query worker_aliases table: %w", err)
	}
	defer rows.Close()

	aliases := make(domain.AliasMap)
	for rows.Next() {
		var raw, canonical string
		if err := rows.Scan(&raw, &canonical); err != nil {
			return nil, fmt.Errorf("load aliases: scan row: %w", err)
		}
		aliases[raw] = canonical
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load aliases: row iteration: %w", err)
	}

	return aliases, nil
}

func (s *SqliteAliasStore) Replace(ctx context.Context, aliases domain.AliasMap) error {
	if s.DB == nil {
		return errors.New("sqlite alias store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace aliases: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM worker_aliases;`); err != nil {
		return fmt.Errorf("replace aliases: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO worker_aliases (raw, canonical)
	VALUES (?, ?);
	`)
	if err != nil {
		return fmt.Errorf("replace aliases: prepare insert: %w", err)
	}
	defer stmt.Close()

	for raw, canonical := range aliases {
		if _, err := stmt.ExecContext(ctx, raw, canonical); err != nil {
			return fmt.Errorf("replace aliases: insert %q: %w", raw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace aliases: commit tx: %w", err)
	}

	return nil
}
