// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"errors"
	"testing"

	"recompra/internal/models"
)

func TestDensifyCalendar(t *testing.T) {
	t.Parallel()

	summaries := []models.DailyPurchaseSummary{
		{CustomerID: "B", Date: day(2014, 1, 3), QuantityTotal: 1, AmountTotal: 5},
		{CustomerID: "A", Date: day(2014, 1, 1), QuantityTotal: 2, AmountTotal: 10},
		{CustomerID: "A", Date: day(2014, 1, 3), QuantityTotal: 4, AmountTotal: 20},
	}

	rows, err := DensifyCalendar(summaries, 0)
	if err != nil {
		t.Fatalf("DensifyCalendar() error = %v", err)
	}

	// 2 customers x 3 days, both customers spanning the global range.
	if len(rows) != 6 {
		t.Fatalf("DensifyCalendar() returned %d rows, want 6", len(rows))
	}

	// Rows are ordered by customer then date and cover every day.
	for i, want := range []struct {
		customer  string
		date      int
		purchased bool
		quantity  int
	}{
		{"A", 1, true, 2},
		{"A", 2, false, 0},
		{"A", 3, true, 4},
		{"B", 1, false, 0},
		{"B", 2, false, 0},
		{"B", 3, true, 1},
	} {
		row := rows[i]
		if row.CustomerID != want.customer || !row.Date.Equal(day(2014, 1, want.date)) ||
			row.Purchased != want.purchased || row.QuantityTotal != want.quantity {
			t.Errorf("rows[%d] = %+v, want customer=%s date=2014-01-%02d purchased=%v quantity=%d",
				i, row, want.customer, want.date, want.purchased, want.quantity)
		}
	}
}

func TestDensifyCalendarEmpty(t *testing.T) {
	t.Parallel()

	_, err := DensifyCalendar(nil, 0)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("DensifyCalendar(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestDensifyCalendarTooLarge(t *testing.T) {
	t.Parallel()

	summaries := []models.DailyPurchaseSummary{
		{CustomerID: "A", Date: day(2014, 1, 1)},
		{CustomerID: "B", Date: day(2014, 1, 10)},
	}

	// 2 customers x 10 days = 20 cells.
	if _, err := DensifyCalendar(summaries, 19); !errors.Is(err, ErrCalendarTooLarge) {
		t.Errorf("DensifyCalendar() error = %v, want ErrCalendarTooLarge", err)
	}
	if _, err := DensifyCalendar(summaries, 20); err != nil {
		t.Errorf("DensifyCalendar() at the limit error = %v, want nil", err)
	}
}

func TestDensifyCalendarSingleDay(t *testing.T) {
	t.Parallel()

	summaries := []models.DailyPurchaseSummary{
		{CustomerID: "A", Date: day(2014, 1, 1), QuantityTotal: 1, AmountTotal: 1},
	}

	rows, err := DensifyCalendar(summaries, 0)
	if err != nil {
		t.Fatalf("DensifyCalendar() error = %v", err)
	}
	if len(rows) != 1 || !rows[0].Purchased {
		t.Errorf("DensifyCalendar() = %+v, want one purchased row", rows)
	}
}
