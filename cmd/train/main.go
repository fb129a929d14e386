// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main is the training script.
//
// It rebuilds the dense per-customer daily feature table from the raw
// transaction log, fits the purchase classifier on a chronological 80/20
// split, prints the evaluation report and AUC, and writes the model
// artifact to the configured path. It takes no parameters beyond the
// configuration.
package main

import (
	"context"
	"fmt"

	"recompra/internal/classifier"
	"recompra/internal/config"
	"recompra/internal/dataset"
	"recompra/internal/logging"
	"recompra/internal/models"
	"recompra/internal/objectstore"
	"recompra/internal/training"
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
		logger.Fatal().Err(err).Msg("Training failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Ctx(ctx)

	logging.Banner("Loading data")
	features, err := buildFeatures(ctx, cfg)
	if err != nil {
		return err
	}

	logging.Banner("Training")
	model := classifier.NewLogistic(classifier.LogisticConfig{
		LearningRate: cfg.Training.LearningRate,
		Epochs:       cfg.Training.Epochs,
		L2:           cfg.Training.L2,
		Seed:         cfg.Training.Seed,
	})
	model.SetFeatureNames(training.FeatureNames)

	testSet, err := training.Train(model, features, cfg.Training.SplitRatio)
	if err != nil {
		return err
	}

	logging.Banner("Evaluation")
	report, auc, err := training.Evaluate(model, testSet)
	if err != nil {
		return err
	}
	fmt.Println(report)
	fmt.Printf("AUC: %.4f\n", auc)
	logger.Info().Float64("auc", auc).Int("test_rows", len(testSet.Rows)).Msg("Evaluation finished")

	logging.Banner("Saving model")
	if err := model.Save(cfg.Training.ModelPath); err != nil {
		return err
	}
	logger.Info().Str("model_path", cfg.Training.ModelPath).Msg("Model artifact saved")
	return nil
}

// buildFeatures runs the feature pipeline: load, filter, aggregate, densify,
// featurize.
func buildFeatures(ctx context.Context, cfg *config.Config) ([]models.FeatureRow, error) {
	logger := logging.Ctx(ctx)

	st, err := objectstore.NewS3(ctx, &cfg.S3)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("bucket", cfg.Job.Bucket).Str("key", cfg.Job.KeyInput).
		Msg("Reading transaction log")
	body, err := st.Get(ctx, cfg.Job.Bucket, cfg.Job.KeyInput)
	if err != nil {
		return nil, err
	}
	records, err := dataset.ParseTransactions(body)
	_ = body.Close()
	if err != nil {
		return nil, err
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
		return nil, err
	}
	features := dataset.Featurize(dense)
	logger.Info().
		Int("daily_summaries", len(summaries)).
		Int("dense_rows", len(dense)).
		Msg("Feature table built")

	return features, nil
}
