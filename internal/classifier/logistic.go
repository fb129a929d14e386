// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package classifier

import (
	"fmt"
	"math"
	"math/rand"
)

// LogisticConfig contains configuration for the logistic-regression model.
type LogisticConfig struct {
	// LearningRate is the SGD step size.
	// Default: 0.1.
	LearningRate float64

	// Epochs is the number of passes over the training data.
	// Default: 100.
	Epochs int

	// L2 is the L2 regularization strength.
	// Default: 0.01.
	L2 float64

	// Seed makes the per-epoch sample shuffle reproducible.
	// If 0, uses a default seed.
	Seed int64
}

// DefaultLogisticConfig returns default logistic-regression configuration.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{
		LearningRate: 0.1,
		Epochs:       100,
		L2:           0.01,
		Seed:         42,
	}
}

// Logistic is a binary logistic-regression classifier trained with SGD.
//
// Features are standardized by their per-feature standard deviation without
// mean-centering: the inputs are sparse-ish count features where centering
// would destroy the zero structure, so only the scale is normalized. The
// scale is estimated on the training data and reapplied at prediction time.
type Logistic struct {
	config LogisticConfig

	// weights and bias are the fitted parameters in scaled feature space.
	weights []float64
	bias    float64

	// scale holds the per-feature standard deviation used to standardize
	// inputs. A constant feature gets scale 1.
	scale []float64

	// featureNames records the feature order the model was trained with.
	featureNames []string

	trained bool
}

// NewLogistic creates a logistic-regression model with the given
// configuration, applying defaults for zero values.
func NewLogistic(cfg LogisticConfig) *Logistic {
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = 0.1
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 100
	}
	if cfg.L2 < 0 {
		cfg.L2 = 0.01
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	return &Logistic{config: cfg}
}

// SetFeatureNames records the feature order for the model artifact.
func (l *Logistic) SetFeatureNames(names []string) {
	l.featureNames = append([]string(nil), names...)
}

// FeatureNames returns the feature order the model was trained with.
func (l *Logistic) FeatureNames() []string {
	return append([]string(nil), l.featureNames...)
}

// Fit trains the model with stochastic gradient descent.
func (l *Logistic) Fit(X [][]float64, y []int, posWeight float64) error {
	if len(X) == 0 {
		return fmt.Errorf("no training samples")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature matrix has %d rows but %d labels", len(X), len(y))
	}
	numFeatures := len(X[0])
	if numFeatures == 0 {
		return fmt.Errorf("training samples have no features")
	}
	if posWeight <= 0 {
		posWeight = 1
	}

	l.scale = featureScale(X)
	l.weights = make([]float64, numFeatures)
	l.bias = 0

	rng := rand.New(rand.NewSource(l.config.Seed))
	lr := l.config.LearningRate

	scaled := make([][]float64, len(X))
	for i, row := range X {
		s := make([]float64, numFeatures)
		for j, v := range row {
			s[j] = v / l.scale[j]
		}
		scaled[i] = s
	}

	for epoch := 0; epoch < l.config.Epochs; epoch++ {
		for _, i := range rng.Perm(len(scaled)) {
			p := sigmoid(dot(l.weights, scaled[i]) + l.bias)

			grad := p - float64(y[i])
			weight := 1.0
			if y[i] == 1 {
				weight = posWeight
			}
			grad *= weight

			for j, v := range scaled[i] {
				l.weights[j] -= lr * (grad*v + l.config.L2*l.weights[j])
			}
			l.bias -= lr * grad
		}
	}

	l.trained = true
	return nil
}

// PredictProbability returns the probability of the positive class for each
// sample.
func (l *Logistic) PredictProbability(X [][]float64) ([]float64, error) {
	if !l.trained {
		return nil, ErrNotTrained
	}

	probs := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(l.weights) {
			return nil, fmt.Errorf("sample %d has %d features, model expects %d",
				i, len(row), len(l.weights))
		}
		z := l.bias
		for j, v := range row {
			z += l.weights[j] * (v / l.scale[j])
		}
		probs[i] = sigmoid(z)
	}
	return probs, nil
}

// featureScale computes the per-feature population standard deviation.
// Constant features get scale 1 so division is always defined.
func featureScale(X [][]float64) []float64 {
	numFeatures := len(X[0])
	n := float64(len(X))

	mean := make([]float64, numFeatures)
	for _, row := range X {
		for j, v := range row {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	scale := make([]float64, numFeatures)
	for _, row := range X {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		scale[j] = math.Sqrt(scale[j] / n)
		if scale[j] == 0 {
			scale[j] = 1
		}
	}
	return scale
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}
