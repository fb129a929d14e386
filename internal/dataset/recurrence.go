// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import (
	"sort"
	"time"

	"recompra/internal/models"
)

// Rule selects the recurrence definition.
type Rule string

const (
	// RuleMeanGap is the canonical rule: candidates are customers with at
	// least one day of LargeDayThreshold or more transactions; a candidate is
	// recurrent iff the mean gap between their consecutive distinct purchase
	// dates is strictly below MaxGapDays.
	RuleMeanGap Rule = "mean_gap"

	// RuleStrictGaps is the historical cleaning-job rule: only days with
	// strictly more than LargeDayThreshold transactions count, and every
	// consecutive gap between those days must be at or below MaxGapDays.
	RuleStrictGaps Rule = "strict_gaps"
)

// RecurrenceConfig contains configuration for the recurrence filter.
type RecurrenceConfig struct {
	// Rule is the recurrence definition to apply.
	// Default: RuleMeanGap.
	Rule Rule

	// LargeDayThreshold is the transaction count that makes a customer-day
	// a large purchase day.
	// Default: 10.
	LargeDayThreshold int

	// MaxGapDays bounds the purchase cadence.
	// Default: 30.
	MaxGapDays int
}

// DefaultRecurrenceConfig returns the default recurrence configuration.
func DefaultRecurrenceConfig() RecurrenceConfig {
	return RecurrenceConfig{
		Rule:              RuleMeanGap,
		LargeDayThreshold: 10,
		MaxGapDays:        30,
	}
}

// RecurrenceFilter classifies customers as recurrent from their raw
// transaction history and keeps only recurrent customers' records.
type RecurrenceFilter struct {
	config RecurrenceConfig
}

// NewRecurrenceFilter creates a recurrence filter with the given
// configuration, applying defaults for zero values.
func NewRecurrenceFilter(cfg RecurrenceConfig) *RecurrenceFilter {
	if cfg.Rule == "" {
		cfg.Rule = RuleMeanGap
	}
	if cfg.LargeDayThreshold <= 0 {
		cfg.LargeDayThreshold = 10
	}
	if cfg.MaxGapDays <= 0 {
		cfg.MaxGapDays = 30
	}
	return &RecurrenceFilter{config: cfg}
}

// Filter returns the subset of records belonging to recurrent customers,
// preserving input order. All of a recurrent customer's records are kept,
// not just the large-purchase-day ones.
func (f *RecurrenceFilter) Filter(records []models.TransactionRecord) []models.TransactionRecord {
	var recurrent map[string]bool
	switch f.config.Rule {
	case RuleStrictGaps:
		recurrent = f.strictGapCustomers(records)
	default:
		recurrent = f.meanGapCustomers(records)
	}

	filtered := make([]models.TransactionRecord, 0, len(records))
	for _, rec := range records {
		if recurrent[rec.CustomerID] {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// countByDay tallies transactions per customer per day.
func countByDay(records []models.TransactionRecord) map[string]map[time.Time]int {
	counts := make(map[string]map[time.Time]int)
	for _, rec := range records {
		days := counts[rec.CustomerID]
		if days == nil {
			days = make(map[time.Time]int)
			counts[rec.CustomerID] = days
		}
		days[rec.PurchaseDate]++
	}
	return counts
}

// sortedDates returns the keys of days in chronological order.
func sortedDates(days map[time.Time]int) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// meanGapCustomers applies RuleMeanGap. Candidates with fewer than two
// distinct purchase dates have an undefined mean gap and are excluded.
func (f *RecurrenceFilter) meanGapCustomers(records []models.TransactionRecord) map[string]bool {
	counts := countByDay(records)

	recurrent := make(map[string]bool)
	for customer, days := range counts {
		candidate := false
		for _, n := range days {
			if n >= f.config.LargeDayThreshold {
				candidate = true
				break
			}
		}
		if !candidate {
			continue
		}

		dates := sortedDates(days)
		if len(dates) < 2 {
			continue
		}

		totalGap := 0
		for i := 1; i < len(dates); i++ {
			totalGap += models.DaysBetween(dates[i-1], dates[i])
		}
		mean := float64(totalGap) / float64(len(dates)-1)

		// Strictly below the bound; a mean of exactly MaxGapDays is
		// non-recurrent.
		if mean < float64(f.config.MaxGapDays) {
			recurrent[customer] = true
		}
	}
	return recurrent
}

// strictGapCustomers applies RuleStrictGaps over the days whose transaction
// count strictly exceeds the threshold.
func (f *RecurrenceFilter) strictGapCustomers(records []models.TransactionRecord) map[string]bool {
	counts := countByDay(records)

	recurrent := make(map[string]bool)
	for customer, days := range counts {
		large := make(map[time.Time]int)
		for d, n := range days {
			if n > f.config.LargeDayThreshold {
				large[d] = n
			}
		}
		if len(large) < 2 {
			continue
		}

		dates := sortedDates(large)
		ok := true
		for i := 1; i < len(dates); i++ {
			if models.DaysBetween(dates[i-1], dates[i]) > f.config.MaxGapDays {
				ok = false
				break
			}
		}
		if ok {
			recurrent[customer] = true
		}
	}
	return recurrent
}
