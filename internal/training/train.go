// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package training

import (
	"errors"
	"fmt"

	"recompra/internal/classifier"
	"recompra/internal/logging"
	"recompra/internal/models"
)

// ErrInsufficientData reports a training split missing one of the two
// classes, which leaves the imbalance weight undefined.
var ErrInsufficientData = errors.New("training split does not contain both classes")

// TestSet is the held-out tail of the chronological split, kept for
// evaluation.
type TestSet struct {
	X    [][]float64
	Y    []int
	Rows []models.FeatureRow
}

// Train fits the model on the chronological head of rows and returns the
// held-out tail. Class imbalance is compensated by weighting positive
// samples with negatives/positives of the training split.
func Train(m classifier.Model, rows []models.FeatureRow, splitRatio float64) (*TestSet, error) {
	trainRows, testRows := SplitChronological(rows, splitRatio)

	trainX, trainY := matrices(trainRows)

	var positives, negatives int
	for _, label := range trainY {
		if label == 1 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return nil, fmt.Errorf("%w: %d positive, %d negative rows",
			ErrInsufficientData, positives, negatives)
	}
	posWeight := float64(negatives) / float64(positives)

	logging.Info().
		Int("train_rows", len(trainRows)).
		Int("test_rows", len(testRows)).
		Int("positives", positives).
		Int("negatives", negatives).
		Float64("pos_weight", posWeight).
		Msg("Fitting classifier on chronological split")

	if err := m.Fit(trainX, trainY, posWeight); err != nil {
		return nil, fmt.Errorf("failed to fit classifier: %w", err)
	}

	testX, testY := matrices(testRows)
	return &TestSet{X: testX, Y: testY, Rows: testRows}, nil
}

// matrices converts feature rows into the model's matrix form.
func matrices(rows []models.FeatureRow) ([][]float64, []int) {
	X := make([][]float64, len(rows))
	y := make([]int, len(rows))
	for i, r := range rows {
		X[i] = Vector(r)
		y[i] = Label(r)
	}
	return X, y
}
