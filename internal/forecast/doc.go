// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package forecast scores customers for a future target date and attaches
// product recommendations.
//
// Candidates are extrapolations: a customer only qualifies when the target
// date lies strictly after their last observed day, so the gap feature is a
// genuine look into the future. An empty qualifying set is a valid result,
// not an error.
package forecast
