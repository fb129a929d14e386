// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the transform batch job.
//
// It reads the raw transaction log CSV from object storage, keeps only the
// records of recurrent customers, and writes the result back as a typed
// Parquet table. The job prints a single JSON result line to stdout for its
// orchestrator and exits non-zero on the first error.
//
// Bucket and keys default to the configured values and can be overridden
// per invocation:
//
//	transform -bucket my-bucket -key-input raw/data.csv -key-output clean/out.parquet
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"recompra/internal/config"
	"recompra/internal/dataset"
	"recompra/internal/logging"
	"recompra/internal/objectstore"
	"recompra/internal/store"
)

// Result is the job's contract with its orchestrator.
type Result struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	bucket := flag.String("bucket", cfg.Job.Bucket, "source and destination bucket")
	keyInput := flag.String("key-input", cfg.Job.KeyInput, "input CSV object key")
	keyOutput := flag.String("key-output", cfg.Job.KeyOutput, "output Parquet object key")
	flag.Parse()

	ctx := logging.ContextWithNewCorrelationID(context.Background())

	rows, err := run(ctx, cfg, *bucket, *keyInput, *keyOutput)
	if err != nil {
		logger := logging.Ctx(ctx)
		logger.Error().Err(err).Msg("Transform job failed")
		emit(Result{Status: "failure"})
		os.Exit(1)
	}
	emit(Result{Status: "success", Rows: rows})
}

// run executes the transform pipeline and returns the number of rows kept.
func run(ctx context.Context, cfg *config.Config, bucket, keyInput, keyOutput string) (int, error) {
	logger := logging.Ctx(ctx)

	st, err := objectstore.NewS3(ctx, &cfg.S3)
	if err != nil {
		return 0, err
	}

	logger.Info().Str("bucket", bucket).Str("key", keyInput).Msg("Reading transaction log")
	body, err := st.Get(ctx, bucket, keyInput)
	if err != nil {
		return 0, err
	}
	records, err := dataset.ParseTransactions(body)
	_ = body.Close()
	if err != nil {
		return 0, err
	}
	logger.Info().Int("rows", len(records)).Msg("Transaction log parsed")

	filter := dataset.NewRecurrenceFilter(dataset.RecurrenceConfig{
		Rule:              dataset.Rule(cfg.Recurrence.Rule),
		LargeDayThreshold: cfg.Recurrence.LargeDayThreshold,
		MaxGapDays:        cfg.Recurrence.MaxGapDays,
	})
	filtered := filter.Filter(records)
	logger.Info().
		Int("input_rows", len(records)).
		Int("kept_rows", len(filtered)).
		Str("rule", cfg.Recurrence.Rule).
		Msg("Recurrent customers filtered")

	db, err := store.New(&cfg.Store)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close results store")
		}
	}()

	data, err := db.ExportTransactionsParquet(ctx, filtered)
	if err != nil {
		return 0, err
	}

	logger.Info().Str("bucket", bucket).Str("key", keyOutput).Int("bytes", len(data)).
		Msg("Uploading filtered transactions")
	if err := st.Put(ctx, bucket, keyOutput, data, "application/vnd.apache.parquet"); err != nil {
		return 0, err
	}

	return len(filtered), nil
}

// emit prints the job result as a single JSON line on stdout.
func emit(r Result) {
	data, err := json.Marshal(r)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to encode job result")
		return
	}
	fmt.Println(string(data))
}
