// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store persists pipeline outputs in an embedded DuckDB database.
//
// It serves two jobs: staging filtered transactions for the columnar
// (Parquet) object-store export, and recording each prediction run with its
// scored rows so past forecasts stay queryable.
package store
