// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package forecast

import (
	"fmt"
	"sort"
	"time"

	"recompra/internal/classifier"
	"recompra/internal/dataset"
	"recompra/internal/models"
)

// FutureBuyers predicts which customers purchase on targetDate.
//
// For each customer in the dense calendar, the gap from their most recent
// observed day to the target date becomes the days-since-last-purchase
// feature of one synthetic row; the remaining features derive from the
// target date itself. Customers whose gap is not strictly positive are
// discarded: for them the target date is not in the future. Customers
// scoring at or above threshold are returned, ordered by customer id.
func FutureBuyers(m classifier.Model, dense []models.DenseCalendarRow, targetDate time.Time, threshold float64) ([]models.FutureBuyer, error) {
	targetDate = models.Day(targetDate)

	lastSeen := make(map[string]time.Time)
	for _, row := range dense {
		if last, ok := lastSeen[row.CustomerID]; !ok || row.Date.After(last) {
			lastSeen[row.CustomerID] = row.Date
		}
	}

	type candidate struct {
		customer string
		gap      int
	}
	candidates := make([]candidate, 0, len(lastSeen))
	for customer, last := range lastSeen {
		gap := models.DaysBetween(last, targetDate)
		if gap <= 0 {
			continue
		}
		candidates = append(candidates, candidate{customer: customer, gap: gap})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].customer < candidates[j].customer
	})

	// Feature order must match training.FeatureNames:
	// dias_desde_ultima, dia_semana, mes, dia.
	dow, month, day := dataset.DateFeatures(targetDate)
	X := make([][]float64, len(candidates))
	for i, c := range candidates {
		X[i] = []float64{float64(c.gap), float64(dow), float64(month), float64(day)}
	}

	probs, err := m.PredictProbability(X)
	if err != nil {
		return nil, fmt.Errorf("failed to score candidates for %s: %w",
			targetDate.Format("2006-01-02"), err)
	}

	var buyers []models.FutureBuyer
	for i, c := range candidates {
		// Inclusive threshold: a probability exactly at the bound qualifies.
		if probs[i] >= threshold {
			buyers = append(buyers, models.FutureBuyer{
				CustomerID:  c.customer,
				Date:        targetDate,
				Probability: probs[i],
			})
		}
	}
	return buyers, nil
}
