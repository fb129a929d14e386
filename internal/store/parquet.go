// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"recompra/internal/models"
)

// ExportTransactionsParquet serializes records as a typed Parquet table and
// returns its bytes, ready for the object-store put. The staging table is
// replaced on every call, so the export always reflects exactly the given
// records.
func (s *Store) ExportTransactionsParquet(ctx context.Context, records []models.TransactionRecord) ([]byte, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		rollbackQuietly(tx)
		return nil, fmt.Errorf("failed to clear transaction staging table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO transactions (usuario, fecha_compra, producto, cantidad, precio) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		rollbackQuietly(tx)
		return nil, fmt.Errorf("failed to prepare staging insert: %w", err)
	}

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.CustomerID, rec.PurchaseDate, rec.ProductID, rec.Quantity, rec.UnitPrice); err != nil {
			_ = stmt.Close()
			rollbackQuietly(tx)
			return nil, fmt.Errorf("failed to stage transaction: %w", err)
		}
	}
	if err := stmt.Close(); err != nil {
		rollbackQuietly(tx)
		return nil, fmt.Errorf("failed to close staging insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit staged transactions: %w", err)
	}

	// COPY writes to the filesystem, so round-trip through a temp file.
	path := filepath.Join(os.TempDir(), "recompra-export-"+uuid.New().String()+".parquet")
	defer func() { _ = os.Remove(path) }()

	exportQuery := `
		COPY transactions TO ? (
			FORMAT PARQUET,
			COMPRESSION 'ZSTD'
		)`
	if _, err := s.conn.ExecContext(ctx, exportQuery, path); err != nil {
		return nil, fmt.Errorf("failed to export transactions to parquet: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet export: %w", err)
	}
	return data, nil
}
