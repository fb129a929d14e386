// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package forecast

import (
	"fmt"
	"sort"

	"recompra/internal/models"
)

// TopProducts ranks each customer's historical products by purchase
// frequency and keeps the top n. Products with equal frequency order by
// product id ascending, which makes the cut deterministic across runs.
func TopProducts(records []models.TransactionRecord, n int) ([]models.Recommendation, error) {
	if n < 1 {
		return nil, fmt.Errorf("top-n must be at least 1, got %d", n)
	}

	counts := make(map[string]map[string]int)
	for _, rec := range records {
		products := counts[rec.CustomerID]
		if products == nil {
			products = make(map[string]int)
			counts[rec.CustomerID] = products
		}
		products[rec.ProductID]++
	}

	customers := make([]string, 0, len(counts))
	for c := range counts {
		customers = append(customers, c)
	}
	sort.Strings(customers)

	var recs []models.Recommendation
	for _, customer := range customers {
		products := counts[customer]
		ranked := make([]models.Recommendation, 0, len(products))
		for product, freq := range products {
			ranked = append(ranked, models.Recommendation{
				CustomerID: customer,
				ProductID:  product,
				Frequency:  freq,
			})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Frequency != ranked[j].Frequency {
				return ranked[i].Frequency > ranked[j].Frequency
			}
			return ranked[i].ProductID < ranked[j].ProductID
		})
		if len(ranked) > n {
			ranked = ranked[:n]
		}
		recs = append(recs, ranked...)
	}
	return recs, nil
}

// MergeRecommendations left-joins future buyers with their recommended
// products: one result row per (buyer, product). A buyer with no historical
// products is kept as a single row with an empty product rather than being
// dropped.
func MergeRecommendations(buyers []models.FutureBuyer, recs []models.Recommendation) []models.PredictionResult {
	byCustomer := make(map[string][]models.Recommendation)
	for _, r := range recs {
		byCustomer[r.CustomerID] = append(byCustomer[r.CustomerID], r)
	}

	var results []models.PredictionResult
	for _, buyer := range buyers {
		products := byCustomer[buyer.CustomerID]
		if len(products) == 0 {
			results = append(results, models.PredictionResult{
				CustomerID:  buyer.CustomerID,
				Date:        buyer.Date,
				Probability: buyer.Probability,
			})
			continue
		}
		for _, p := range products {
			results = append(results, models.PredictionResult{
				CustomerID:  buyer.CustomerID,
				Date:        buyer.Date,
				Probability: buyer.Probability,
				ProductID:   p.ProductID,
			})
		}
	}
	return results
}
