// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"recompra/internal/config"
	"recompra/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(&config.StoreConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExportTransactionsParquet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []models.TransactionRecord{
		{CustomerID: "c1", PurchaseDate: day(2014, 1, 5), ProductID: "p1", Quantity: 2, UnitPrice: 9.99},
		{CustomerID: "c2", PurchaseDate: day(2014, 1, 6), ProductID: "p2", Quantity: 1, UnitPrice: 4.5},
	}

	data, err := s.ExportTransactionsParquet(ctx, records)
	if err != nil {
		t.Fatalf("ExportTransactionsParquet() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExportTransactionsParquet() returned no bytes")
	}
	// Parquet files start and end with the PAR1 magic.
	if string(data[:4]) != "PAR1" || string(data[len(data)-4:]) != "PAR1" {
		t.Errorf("ExportTransactionsParquet() output lacks the parquet magic")
	}
}

func TestExportTransactionsParquetReplacesStaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []models.TransactionRecord{
		{CustomerID: "c1", PurchaseDate: day(2014, 1, 5), ProductID: "p1", Quantity: 1, UnitPrice: 1},
	}
	if _, err := s.ExportTransactionsParquet(ctx, first); err != nil {
		t.Fatalf("ExportTransactionsParquet() error = %v", err)
	}

	second := []models.TransactionRecord{
		{CustomerID: "c2", PurchaseDate: day(2014, 1, 6), ProductID: "p2", Quantity: 1, UnitPrice: 1},
	}
	if _, err := s.ExportTransactionsParquet(ctx, second); err != nil {
		t.Fatalf("ExportTransactionsParquet() second run error = %v", err)
	}

	// The staging table holds only the latest batch.
	var count int
	row := s.conn.QueryRowContext(ctx, "SELECT count(*) FROM transactions")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 1 {
		t.Errorf("transactions table holds %d rows, want 1", count)
	}
}

func TestSavePredictionRunAndLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := PredictionRun{
		ID:         "run-1",
		TargetDate: day(2014, 12, 29),
		Threshold:  0.5,
		CreatedAt:  time.Now().UTC(),
	}
	results := []models.PredictionResult{
		{CustomerID: "A", Date: day(2014, 12, 29), Probability: 0.9, ProductID: "p1"},
		{CustomerID: "A", Date: day(2014, 12, 29), Probability: 0.9, ProductID: "p2"},
		{CustomerID: "B", Date: day(2014, 12, 29), Probability: 0.6, ProductID: ""},
	}

	if err := s.SavePredictionRun(ctx, run, results); err != nil {
		t.Fatalf("SavePredictionRun() error = %v", err)
	}

	latest, rows, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest.ID != "run-1" {
		t.Errorf("LatestRun() ID = %s, want run-1", latest.ID)
	}
	if rows != 3 {
		t.Errorf("LatestRun() rows = %d, want 3", rows)
	}
	if !latest.TargetDate.Equal(run.TargetDate) {
		t.Errorf("LatestRun() TargetDate = %v, want %v", latest.TargetDate, run.TargetDate)
	}
	if latest.Threshold != 0.5 {
		t.Errorf("LatestRun() Threshold = %v, want 0.5", latest.Threshold)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	s := newTestStore(t)

	_, _, err := s.LatestRun(context.Background())
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("LatestRun() error = %v, want ErrNoRuns", err)
	}
}

func TestSavePredictionRunEmptyResults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := PredictionRun{
		ID:         "run-empty",
		TargetDate: day(2014, 12, 29),
		Threshold:  0.5,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.SavePredictionRun(ctx, run, nil); err != nil {
		t.Fatalf("SavePredictionRun() error = %v", err)
	}

	latest, rows, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if latest.ID != "run-empty" || rows != 0 {
		t.Errorf("LatestRun() = (%s, %d), want (run-empty, 0)", latest.ID, rows)
	}
}
