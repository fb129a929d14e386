// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package training turns feature rows into a fitted classifier.
//
// The train/test split is chronological, not random: rows are globally
// sorted by date and cut at a positional boundary, so no information from
// the evaluation period can leak into training.
package training
