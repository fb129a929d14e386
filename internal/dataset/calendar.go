// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"fmt"
	"sort"
	"time"

	"recompra/internal/models"
)

// DensifyCalendar expands sparse per-customer purchase days into one row per
// customer per calendar day across the global observed date range. The range
// is global: every customer gets the identical, contiguous set of dates from
// the overall minimum to the overall maximum purchase date, inclusive.
// Purchase days keep their daily totals; non-purchase days get Purchased
// false and zero totals.
//
// maxCells caps customers x days (0 disables the guard); the cross-product
// is the pipeline's dominant allocation. An empty input has no date range
// and fails with ErrEmptyInput.
func DensifyCalendar(summaries []models.DailyPurchaseSummary, maxCells int) ([]models.DenseCalendarRow, error) {
	if len(summaries) == 0 {
		return nil, fmt.Errorf("%w: cannot compute calendar range", ErrEmptyInput)
	}

	dateMin := summaries[0].Date
	dateMax := summaries[0].Date
	byKey := make(map[string]map[time.Time]models.DailyPurchaseSummary)
	for _, s := range summaries {
		if s.Date.Before(dateMin) {
			dateMin = s.Date
		}
		if s.Date.After(dateMax) {
			dateMax = s.Date
		}
		days := byKey[s.CustomerID]
		if days == nil {
			days = make(map[time.Time]models.DailyPurchaseSummary)
			byKey[s.CustomerID] = days
		}
		days[s.Date] = s
	}

	customers := make([]string, 0, len(byKey))
	for c := range byKey {
		customers = append(customers, c)
	}
	sort.Strings(customers)

	numDays := models.DaysBetween(dateMin, dateMax) + 1
	cells := len(customers) * numDays
	if maxCells > 0 && cells > maxCells {
		return nil, fmt.Errorf("%w: %d customers x %d days = %d cells (limit %d)",
			ErrCalendarTooLarge, len(customers), numDays, cells, maxCells)
	}

	rows := make([]models.DenseCalendarRow, 0, cells)
	for _, customer := range customers {
		days := byKey[customer]
		for d, date := 0, dateMin; d < numDays; d, date = d+1, date.AddDate(0, 0, 1) {
			row := models.DenseCalendarRow{
				CustomerID: customer,
				Date:       date,
			}
			if s, ok := days[date]; ok {
				row.Purchased = true
				row.QuantityTotal = s.QuantityTotal
				row.AmountTotal = s.AmountTotal
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}
