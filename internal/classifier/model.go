// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package classifier

import "errors"

// ErrNotTrained reports a prediction attempt on an unfitted model.
var ErrNotTrained = errors.New("model has not been trained")

// Model is the probabilistic binary-classifier capability.
//
// X is row-major: one slice per sample, one element per feature, in a fixed
// feature order agreed between training and inference. Labels are 0 or 1.
type Model interface {
	// Fit trains the model. posWeight scales the loss of positive samples
	// to compensate class imbalance; pass negatives/positives of the
	// training split, or <= 0 to disable weighting.
	Fit(X [][]float64, y []int, posWeight float64) error

	// PredictProbability returns the probability of the positive class for
	// each sample, each in [0, 1].
	PredictProbability(X [][]float64) ([]float64, error)
}
