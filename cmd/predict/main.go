// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the prediction script.
//
// It loads the trained model artifact, rebuilds the dense calendar from the
// raw transaction log, predicts which customers purchase on the configured
// target date, attaches each buyer's most frequent products, writes the
// report CSV (usuario, fecha, probabilidad, producto), and records the run
// in the results store.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"recompra/internal/classifier"
	"recompra/internal/config"
	"recompra/internal/dataset"
	"recompra/internal/forecast"
	"recompra/internal/logging"
	"recompra/internal/models"
	"recompra/internal/objectstore"
	"recompra/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx := logging.ContextWithNewCorrelationID(context.Background())
	if err := run(ctx, cfg); err != nil {
		logger := logging.Ctx(ctx)
		logger.Fatal().Err(err).Msg("Prediction failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Ctx(ctx)

	targetDate, err := cfg.Prediction.ParseTargetDate()
	if err != nil {
		return err
	}

	logging.Banner("Loading data")
	dense, filtered, err := buildCalendar(ctx, cfg)
	if err != nil {
		return err
	}

	logging.Banner("Loading model")
	model, err := classifier.LoadLogistic(cfg.Training.ModelPath)
	if err != nil {
		return err
	}
	logger.Info().Str("model_path", cfg.Training.ModelPath).
		Strs("features", model.FeatureNames()).Msg("Model artifact loaded")

	logging.Banner("Predicting buyers for " + cfg.Prediction.TargetDate)
	buyers, err := forecast.FutureBuyers(model, dense, targetDate, cfg.Prediction.Threshold)
	if err != nil {
		return err
	}
	logger.Info().Int("buyers", len(buyers)).Float64("threshold", cfg.Prediction.Threshold).
		Msg("Future buyers scored")

	recs, err := forecast.TopProducts(filtered, cfg.Prediction.TopProducts)
	if err != nil {
		return err
	}
	results := forecast.MergeRecommendations(buyers, recs)

	if err := writeReport(cfg.Prediction.OutputPath, results); err != nil {
		return err
	}

	if err := persistRun(ctx, cfg, targetDate, results); err != nil {
		return err
	}

	logging.Banner("Results saved")
	logger.Info().Str("output", cfg.Prediction.OutputPath).Int("rows", len(results)).
		Msg("Prediction report written")
	preview(logger, results)
	return nil
}

// buildCalendar runs the pipeline up to the dense calendar, returning the
// dense rows plus the filtered records the recommender needs.
func buildCalendar(ctx context.Context, cfg *config.Config) ([]models.DenseCalendarRow, []models.TransactionRecord, error) {
	logger := logging.Ctx(ctx)

	st, err := objectstore.NewS3(ctx, &cfg.S3)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Str("bucket", cfg.Job.Bucket).Str("key", cfg.Job.KeyInput).
		Msg("Reading transaction log")
	body, err := st.Get(ctx, cfg.Job.Bucket, cfg.Job.KeyInput)
	if err != nil {
		return nil, nil, err
	}
	records, err := dataset.ParseTransactions(body)
	_ = body.Close()
	if err != nil {
		return nil, nil, err
	}

	filter := dataset.NewRecurrenceFilter(dataset.RecurrenceConfig{
		Rule:              dataset.Rule(cfg.Recurrence.Rule),
		LargeDayThreshold: cfg.Recurrence.LargeDayThreshold,
		MaxGapDays:        cfg.Recurrence.MaxGapDays,
	})
	filtered := filter.Filter(records)
	logger.Info().Int("input_rows", len(records)).Int("kept_rows", len(filtered)).
		Msg("Recurrent customers filtered")

	summaries := dataset.AggregateDaily(filtered)
	dense, err := dataset.DensifyCalendar(summaries, cfg.Limits.MaxCalendarCells)
	if err != nil {
		return nil, nil, err
	}
	return dense, filtered, nil
}

// writeReport writes the prediction results CSV.
func writeReport(path string, results []models.PredictionResult) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := []string{
		models.OutColCustomer,
		models.OutColDate,
		models.OutColProbability,
		models.OutColProduct,
	}
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.CustomerID,
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Probability, 'f', 6, 64),
			r.ProductID,
		}
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report %s: %w", path, err)
	}
	return nil
}

// persistRun records the forecast in the results store.
func persistRun(ctx context.Context, cfg *config.Config, targetDate time.Time, results []models.PredictionResult) error {
	db, err := store.New(&cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger := logging.Ctx(ctx)
			logger.Warn().Err(err).Msg("Failed to close results store")
		}
	}()

	return db.SavePredictionRun(ctx, store.PredictionRun{
		ID:         uuid.New().String(),
		TargetDate: targetDate,
		Threshold:  cfg.Prediction.Threshold,
		CreatedAt:  time.Now().UTC(),
	}, results)
}

// preview logs the first few result rows.
func preview(logger zerolog.Logger, results []models.PredictionResult) {
	const limit = 5
	for i, r := range results {
		if i == limit {
			break
		}
		logger.Info().
			Str(models.OutColCustomer, r.CustomerID).
			Str(models.OutColDate, r.Date.Format("2006-01-02")).
			Float64(models.OutColProbability, r.Probability).
			Str(models.OutColProduct, r.ProductID).
			Msg("Prediction preview")
	}
}
