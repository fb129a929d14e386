// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
)

// artifactVersion is bumped whenever the serialized layout changes.
const artifactVersion = 1

// artifact is the serialized form of a trained Logistic model. It is written
// once after training and read once before inference.
type artifact struct {
	Version      int            `json:"version"`
	TrainedAt    time.Time      `json:"trained_at"`
	FeatureNames []string       `json:"feature_names"`
	Weights      []float64      `json:"weights"`
	Bias         float64        `json:"bias"`
	Scale        []float64      `json:"scale"`
	Config       LogisticConfig `json:"config"`
}

// Save writes the trained model to path as JSON, creating parent
// directories as needed.
func (l *Logistic) Save(path string) error {
	if !l.trained {
		return ErrNotTrained
	}

	a := artifact{
		Version:      artifactVersion,
		TrainedAt:    time.Now().UTC(),
		FeatureNames: l.featureNames,
		Weights:      l.weights,
		Bias:         l.bias,
		Scale:        l.scale,
		Config:       l.config,
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create model directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write model artifact %s: %w", path, err)
	}
	return nil
}

// LoadLogistic reads a model artifact written by Save.
func LoadLogistic(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	if a.Version != artifactVersion {
		return nil, fmt.Errorf("model artifact %s has version %d, expected %d",
			path, a.Version, artifactVersion)
	}
	if len(a.Weights) == 0 || len(a.Weights) != len(a.Scale) {
		return nil, fmt.Errorf("model artifact %s is malformed: %d weights, %d scales",
			path, len(a.Weights), len(a.Scale))
	}

	model := NewLogistic(a.Config)
	model.weights = a.Weights
	model.bias = a.Bias
	model.scale = a.Scale
	model.featureNames = a.FeatureNames
	model.trained = true
	return model, nil
}
