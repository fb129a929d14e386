// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package models defines the typed rows exchanged between pipeline stages.
//
// Every stage consumes one of these row types and produces another; rows are
// never mutated in place. The wire column names of the upstream transaction
// log (Spanish headers) live here as constants so the schema contract is
// declared in exactly one place.
package models
