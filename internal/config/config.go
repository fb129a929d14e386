// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for all Recompra entry points.
type Config struct {
	Logging    LoggingConfig    `koanf:"logging"`
	S3         S3Config         `koanf:"s3"`
	Job        JobConfig        `koanf:"job"`
	Recurrence RecurrenceConfig `koanf:"recurrence"`
	Training   TrainingConfig   `koanf:"training"`
	Prediction PredictionConfig `koanf:"prediction"`
	Store      StoreConfig      `koanf:"store"`
	Limits     LimitsConfig     `koanf:"limits"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// S3Config configures the object-store client. Credentials come from the
// standard AWS environment/instance chain and are never part of this file.
type S3Config struct {
	Region string `koanf:"region" validate:"required"`

	// Endpoint overrides the S3 endpoint for S3-compatible stores
	// (MinIO, LocalStack). Empty means AWS.
	Endpoint string `koanf:"endpoint"`

	// PathStyle forces path-style addressing, required by most
	// S3-compatible stores.
	PathStyle bool `koanf:"path_style"`
}

// JobConfig identifies the transform job's input and output objects.
type JobConfig struct {
	Bucket    string `koanf:"bucket" validate:"required"`
	KeyInput  string `koanf:"key_input" validate:"required"`
	KeyOutput string `koanf:"key_output" validate:"required"`
}

// RecurrenceConfig selects and tunes the recurrence rule.
type RecurrenceConfig struct {
	// Rule is the recurrence definition: mean_gap (canonical) or strict_gaps
	// (the historical cleaning-job behavior).
	Rule string `koanf:"rule" validate:"oneof=mean_gap strict_gaps"`

	// LargeDayThreshold is the transaction count that makes a customer-day a
	// large purchase day.
	LargeDayThreshold int `koanf:"large_day_threshold" validate:"gte=1"`

	// MaxGapDays bounds the gap between purchases: mean_gap requires the
	// mean gap to be strictly below it, strict_gaps requires every gap to be
	// at or below it.
	MaxGapDays int `koanf:"max_gap_days" validate:"gte=1"`
}

// TrainingConfig configures the training script and the classifier.
type TrainingConfig struct {
	ModelPath    string  `koanf:"model_path" validate:"required"`
	SplitRatio   float64 `koanf:"split_ratio" validate:"gt=0,lt=1"`
	LearningRate float64 `koanf:"learning_rate" validate:"gt=0"`
	Epochs       int     `koanf:"epochs" validate:"gte=1"`
	L2           float64 `koanf:"l2" validate:"gte=0"`
	Seed         int64   `koanf:"seed"`
}

// PredictionConfig configures the prediction script.
type PredictionConfig struct {
	// TargetDate is the future date to score, in YYYY-MM-DD form.
	TargetDate string `koanf:"target_date" validate:"required"`

	// Threshold is the minimum probability for a customer to be reported
	// as a future buyer. Inclusive.
	Threshold float64 `koanf:"threshold" validate:"gte=0,lte=1"`

	// TopProducts is how many products to recommend per buyer.
	TopProducts int `koanf:"top_products" validate:"gte=1"`

	OutputPath string `koanf:"output_path" validate:"required"`
}

// StoreConfig configures the DuckDB results store.
type StoreConfig struct {
	// Path is the DuckDB database file. Empty means in-memory.
	Path string `koanf:"path"`

	// MaxMemory is DuckDB's memory ceiling, e.g. "2GB". Empty keeps the
	// DuckDB default.
	MaxMemory string `koanf:"max_memory"`
}

// LimitsConfig holds caller-side resource guards.
type LimitsConfig struct {
	// MaxCalendarCells caps customers x days before densification, the
	// pipeline's dominant allocation. 0 disables the guard.
	MaxCalendarCells int `koanf:"max_calendar_cells" validate:"gte=0"`
}

// ParseTargetDate parses the configured prediction target date.
func (c *PredictionConfig) ParseTargetDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.TargetDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid prediction.target_date %q: %w", c.TargetDate, err)
	}
	return t, nil
}

// Validate checks the configuration for consistency.
// Returns a descriptive error on the first problem found.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Prediction.ParseTargetDate(); err != nil {
		return err
	}
	return nil
}
