package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"station-metrics-service/internal/domain"
)

// Postgres-backed implementation of the AliasStore port.
type PostgresAliasStore struct{ DB *sql.DB }

func NewPostgresAliasStore(db *sql.DB) *PostgresAliasStore {
	return &PostgresAliasStore{DB: db}
}

func (p *PostgresAliasStore) Load(ctx context.Context) (domain.AliasMap, error) {
	if p.DB == nil {
		return nil, errors.New("postgres alias store: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT raw, canonical FROM worker_aliases;`)
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

func (p *PostgresAliasStore) Replace(ctx context.Context, aliases domain.AliasMap) error {
	if p.DB == nil {
		return errors.New("postgres alias store: DB is nil")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace aliases: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM worker_aliases;`); err != nil {
		return fmt.Errorf("replace aliases: clear table: %w", err)
	}

	for raw, canonical := range aliases {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO worker_aliases (raw, canonical)
		VALUES ($1, $2);
		`, raw, canonical); err != nil {
			return fmt.Errorf("replace aliases: insert %q: %w", raw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace aliases: commit tx: %w", err)
	}

	return nil
}
