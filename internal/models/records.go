// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package models

import "time"

// Input CSV column names, as produced by the upstream transaction log.
const (
	ColCustomer = "usuario"
	ColDate     = "fecha_compra"
	ColProduct  = "producto"
	ColQuantity = "cantidad"
	ColPrice    = "precio"
)

// Output CSV column names for the prediction report.
const (
	OutColCustomer    = "usuario"
	OutColDate        = "fecha"
	OutColProbability = "probabilidad"
	OutColProduct     = "producto"
)

// TransactionRecord is one line of the raw transaction log.
// PurchaseDate carries no time component; it is always midnight UTC.
type TransactionRecord struct {
	CustomerID   string
	PurchaseDate time.Time
	ProductID    string
	Quantity     int
	UnitPrice    float64
}

// DailyPurchaseSummary is one customer-day with at least one transaction,
// with quantity and unit price summed across the day's transactions.
type DailyPurchaseSummary struct {
	CustomerID    string
	Date          time.Time
	QuantityTotal int
	AmountTotal   float64
}

// DenseCalendarRow is one customer-day in the densified calendar. Exactly one
// row exists per customer per day of the global observed date range.
// QuantityTotal and AmountTotal are zero on non-purchase days.
type DenseCalendarRow struct {
	CustomerID    string
	Date          time.Time
	Purchased     bool
	QuantityTotal int
	AmountTotal   float64
}

// FeatureRow is a calendar row augmented with the temporal features the
// classifier consumes. DayOfWeek uses 0=Monday..6=Sunday, matching the
// encoding the model was originally trained with.
type FeatureRow struct {
	CustomerID    string
	Date          time.Time
	Purchased     bool
	DayOfWeek     int
	Month         int
	DayOfMonth    int
	DaysSinceLast int
}

// FutureBuyer is a customer predicted to purchase on a target date.
type FutureBuyer struct {
	CustomerID  string
	Date        time.Time
	Probability float64
}

// Recommendation ranks one product for one customer by historical frequency.
type Recommendation struct {
	CustomerID string
	ProductID  string
	Frequency  int
}

// PredictionResult is one row of the final report: a predicted buyer joined
// with one recommended product. ProductID is empty when the customer has no
// purchase history to recommend from.
type PredictionResult struct {
	CustomerID  string
	Date        time.Time
	Probability float64
	ProductID   string
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}
