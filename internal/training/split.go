// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package training

import (
	"sort"

	"recompra/internal/models"
)

// FeatureNames is the model's input contract: the features of every training
// and inference row, in this exact order. The names are the upstream
// dataset's column names.
var FeatureNames = []string{
	"dias_desde_ultima",
	"dia_semana",
	"mes",
	"dia",
}

// Vector extracts a row's features in FeatureNames order.
func Vector(r models.FeatureRow) []float64 {
	return []float64{
		float64(r.DaysSinceLast),
		float64(r.DayOfWeek),
		float64(r.Month),
		float64(r.DayOfMonth),
	}
}

// Label extracts a row's binary purchase label.
func Label(r models.FeatureRow) int {
	if r.Purchased {
		return 1
	}
	return 0
}

// SplitChronological sorts rows by date ascending (a global sort across
// customers) and splits at position floor(ratio * len). Rows before the cut
// are the training set; rows at and after it are the test set. The sort is
// stable, so same-date rows keep their relative order.
func SplitChronological(rows []models.FeatureRow, ratio float64) (train, test []models.FeatureRow) {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.8
	}

	ordered := make([]models.FeatureRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	cut := int(float64(len(ordered)) * ratio)
	return ordered[:cut], ordered[cut:]
}
