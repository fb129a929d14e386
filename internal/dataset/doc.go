// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dataset implements the feature-engineering pipeline stages:
// transaction-log parsing, recurrence filtering, daily aggregation, calendar
// densification, and temporal featurization.
//
// Every stage is a pure function from one materialized table to the next.
// Stages never mutate their input and never depend on ambient state, so the
// pipeline's behavior is fully determined by what is passed in.
//
// # Memory
//
// DensifyCalendar builds the cross-product of customers and calendar days
// and is the dominant allocation of the whole pipeline. Callers should size
// customers x days against available memory; the MaxCells guard exists for
// that purpose.
package dataset
