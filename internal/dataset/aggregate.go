// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"sort"

	"recompra/internal/models"
)

// AggregateDaily collapses multiple same-day transactions per customer into
// one DailyPurchaseSummary, summing quantity and unit price. Every distinct
// (customer, date) group produces exactly one output row; nothing is
// filtered. Output is ordered by (customer, date) ascending regardless of
// input order. Aggregating an already-aggregated table is a no-op.
func AggregateDaily(records []models.TransactionRecord) []models.DailyPurchaseSummary {
	type key struct {
		customer string
		date     int64
	}

	totals := make(map[key]*models.DailyPurchaseSummary)
	for _, rec := range records {
		k := key{customer: rec.CustomerID, date: rec.PurchaseDate.Unix()}
		s := totals[k]
		if s == nil {
			s = &models.DailyPurchaseSummary{
				CustomerID: rec.CustomerID,
				Date:       rec.PurchaseDate,
			}
			totals[k] = s
		}
		s.QuantityTotal += rec.Quantity
		s.AmountTotal += rec.UnitPrice
	}

	summaries := make([]models.DailyPurchaseSummary, 0, len(totals))
	for _, s := range totals {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CustomerID != summaries[j].CustomerID {
			return summaries[i].CustomerID < summaries[j].CustomerID
		}
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries
}
