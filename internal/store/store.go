// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"

	"recompra/internal/config"
	"recompra/internal/logging"
)

// schema holds the store's tables. transactions is a staging table for the
// Parquet export; prediction_runs/predictions record each forecast.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		usuario      VARCHAR NOT NULL,
		fecha_compra DATE    NOT NULL,
		producto     VARCHAR NOT NULL,
		cantidad     INTEGER NOT NULL,
		precio       DOUBLE  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prediction_runs (
		run_id      VARCHAR PRIMARY KEY,
		target_date DATE      NOT NULL,
		threshold   DOUBLE    NOT NULL,
		created_at  TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		run_id       VARCHAR NOT NULL,
		usuario      VARCHAR NOT NULL,
		fecha        DATE    NOT NULL,
		probabilidad DOUBLE  NOT NULL,
		producto     VARCHAR
	)`,
}

// Store wraps the DuckDB connection and provides result persistence.
type Store struct {
	conn *sql.DB
	cfg  *config.StoreConfig
}

// New opens (or creates) the DuckDB database and initializes the schema.
// An empty path opens an in-memory database.
func New(cfg *config.StoreConfig) (*Store, error) {
	if cfg.Path != "" {
		dir := filepath.Dir(cfg.Path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb at %q: %w", cfg.Path, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to duckdb at %q: %w", cfg.Path, err)
	}

	if cfg.MaxMemory != "" {
		if _, err := conn.Exec(fmt.Sprintf("SET memory_limit = '%s'", cfg.MaxMemory)); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set duckdb memory limit: %w", err)
		}
	}

	s := &Store{conn: conn, cfg: cfg}
	if err := s.applySchema(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logging.Debug().Str("path", cfg.Path).Msg("Results store opened")
	return s, nil
}

// applySchema creates the store's tables if needed.
func (s *Store) applySchema() error {
	for _, stmt := range schema {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply store schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

// rollbackQuietly rolls a transaction back in error paths; rollback errors
// are not actionable there.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}

// begin starts a transaction bound to ctx.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin store transaction: %w", err)
	}
	return tx, nil
}
