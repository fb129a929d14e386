// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package objectstore abstracts the bucket storage the pipeline reads its
// transaction log from and writes its results to.
//
// The pipeline only depends on the Store interface; the S3 implementation
// is the production backend and Memory is the test fake. Errors propagate
// unchanged to the caller: retry policy belongs to the store's client
// configuration, not to the pipeline.
package objectstore
