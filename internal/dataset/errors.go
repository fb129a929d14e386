// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package dataset

import "errors"

var (
	// ErrSchema reports a malformed input table: a required column is
	// missing or a value cannot be parsed. Not recoverable.
	ErrSchema = errors.New("input schema invalid")

	// ErrEmptyInput reports a stage that needs at least one row (the
	// densifier's date-range computation) receiving none.
	ErrEmptyInput = errors.New("input is empty")

	// ErrCalendarTooLarge reports a dense calendar that would exceed the
	// configured cell ceiling.
	ErrCalendarTooLarge = errors.New("dense calendar exceeds configured cell limit")
)
