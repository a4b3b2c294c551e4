package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ErrSchemaMismatch reports a journal written by a newer photosort.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// migrations holds the statements that bring a journal at version i up to
// version i+1. Version 0 is an empty database.
var migrations = []string{
	schemaSQL,
}

func schemaVersion() int {
	return len(migrations)
}

// migrate brings the journal up to the current schema inside one transaction.
func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := readVersion(ctx, tx)
	if err != nil {
		return err
	}
	target := schemaVersion()
	if current > target {
		return fmt.Errorf("%w: %s has version %d, this build understands up to %d",
			ErrSchemaMismatch, s.path, current, target)
	}
	if current == target {
		return nil
	}

	for v := current; v < target; v++ {
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			return fmt.Errorf("migrate history to version %d: %w", v+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", target); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

func readVersion(ctx context.Context, tx *sql.Tx) (int, error) {
	var tables int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'",
	).Scan(&tables); err != nil {
		return 0, fmt.Errorf("inspect history schema: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}
	var version int
	err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
