// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recompra/internal/models"
)

// ErrNoRuns reports a store that holds no prediction runs yet.
var ErrNoRuns = errors.New("no prediction runs recorded")

// PredictionRun identifies one execution of the prediction script.
type PredictionRun struct {
	ID         string
	TargetDate time.Time
	Threshold  float64
	CreatedAt  time.Time
}

// SavePredictionRun records a forecast run and its result rows atomically.
// An empty result set is a valid run and is recorded with zero rows.
func (s *Store) SavePredictionRun(ctx context.Context, run PredictionRun, results []models.PredictionResult) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO prediction_runs (run_id, target_date, threshold, created_at) VALUES (?, ?, ?, ?)",
		run.ID, run.TargetDate, run.Threshold, run.CreatedAt); err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to insert prediction run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO predictions (run_id, usuario, fecha, probabilidad, producto) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to prepare prediction insert: %w", err)
	}
	for _, r := range results {
		var product any
		if r.ProductID != "" {
			product = r.ProductID
		}
		if _, err := stmt.ExecContext(ctx, run.ID, r.CustomerID, r.Date, r.Probability, product); err != nil {
			_ = stmt.Close()
			rollbackQuietly(tx)
			return fmt.Errorf("failed to insert prediction row: %w", err)
		}
	}
	if err := stmt.Close(); err != nil {
		rollbackQuietly(tx)
		return fmt.Errorf("failed to close prediction insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prediction run %s: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recently recorded run and its row count.
func (s *Store) LatestRun(ctx context.Context) (*PredictionRun, int, error) {
	var run PredictionRun
	err := s.conn.QueryRowContext(ctx, `
		SELECT run_id, target_date, threshold, created_at
		FROM prediction_runs
		ORDER BY created_at DESC
		LIMIT 1`).Scan(&run.ID, &run.TargetDate, &run.Threshold, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNoRuns
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query latest prediction run: %w", err)
	}

	var rows int
	if err := s.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM predictions WHERE run_id = ?", run.ID).Scan(&rows); err != nil {
		return nil, 0, fmt.Errorf("failed to count prediction rows for run %s: %w", run.ID, err)
	}
	return &run, rows, nil
}
