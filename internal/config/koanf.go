// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/recompra/config.yaml",
	"/etc/recompra/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is the prefix for Recompra environment variables.
const envPrefix = "RECOMPRA_"

// Default returns a Config with all default values. The job and prediction
// defaults mirror the constants the batch scripts have always used.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		S3: S3Config{
			Region:    "us-east-1",
			Endpoint:  "",
			PathStyle: false,
		},
		Job: JobConfig{
			Bucket:    "assessment-86fc5eb8",
			KeyInput:  "raw-data/data.csv",
			KeyOutput: "cleaned-data/AAL286/compradores_recurrentes.parquet",
		},
		Recurrence: RecurrenceConfig{
			Rule:              "mean_gap",
			LargeDayThreshold: 10,
			MaxGapDays:        30,
		},
		Training: TrainingConfig{
			ModelPath:    "output/model.json",
			SplitRatio:   0.8,
			LearningRate: 0.1,
			Epochs:       100,
			L2:           0.01,
			Seed:         42,
		},
		Prediction: PredictionConfig{
			TargetDate:  "2014-12-29",
			Threshold:   0.5,
			TopProducts: 3,
			OutputPath:  "reports/prediccion_futura.csv",
		},
		Store: StoreConfig{
			Path:      "data/recompra.duckdb",
			MaxMemory: "",
		},
		Limits: LimitsConfig{
			// ~200MB of dense rows; well past the observed data volumes.
			MaxCalendarCells: 25_000_000,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// RECOMPRA_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// RECOMPRA_JOB_KEY_INPUT -> job.key_input
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sections are the top-level config keys an environment variable may address.
var sections = map[string]struct{}{
	"logging":    {},
	"s3":         {},
	"job":        {},
	"recurrence": {},
	"training":   {},
	"prediction": {},
	"store":      {},
	"limits":     {},
}

// envTransformFunc maps an environment variable name (prefix already
// stripped by the provider) to a koanf path. The first underscore-delimited
// token must name a config section; the remainder is the key within it.
// Unknown variables are ignored.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return ""
	}
	if _, ok := sections[parts[0]]; !ok {
		return ""
	}
	return parts[0] + "." + parts[1]
}
