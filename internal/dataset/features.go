// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"sort"
	"time"

	"recompra/internal/models"
)

// DateFeatures derives the calendar features of a single date.
// Day of week uses 0=Monday..6=Sunday.
func DateFeatures(t time.Time) (dayOfWeek, month, dayOfMonth int) {
	// Go's Weekday starts at Sunday=0; the model was trained with Monday=0.
	dayOfWeek = (int(t.Weekday()) + 6) % 7
	month = int(t.Month())
	dayOfMonth = t.Day()
	return dayOfWeek, month, dayOfMonth
}

// Featurize derives temporal features from calendar rows. Rows are sorted by
// (customer, date) internally, so the result is identical for any permutation
// of the same logical input.
//
// DaysSinceLast is the gap in days to the immediately preceding row of the
// same customer; the first row per customer gets 0. It never looks ahead, so
// no future information leaks into a row's features.
func Featurize(rows []models.DenseCalendarRow) []models.FeatureRow {
	ordered := make([]models.DenseCalendarRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CustomerID != ordered[j].CustomerID {
			return ordered[i].CustomerID < ordered[j].CustomerID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	features := make([]models.FeatureRow, 0, len(ordered))
	var prevCustomer string
	var prevDate time.Time
	for _, row := range ordered {
		dow, month, day := DateFeatures(row.Date)
		f := models.FeatureRow{
			CustomerID: row.CustomerID,
			Date:       row.Date,
			Purchased:  row.Purchased,
			DayOfWeek:  dow,
			Month:      month,
			DayOfMonth: day,
		}
		if row.CustomerID == prevCustomer {
			f.DaysSinceLast = models.DaysBetween(prevDate, row.Date)
		}
		features = append(features, f)

		prevCustomer = row.CustomerID
		prevDate = row.Date
	}
	return features
}
