// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classifier defines the binary-classifier capability the pipeline
// trains and scores with, and provides a logistic-regression implementation.
//
// The pipeline treats the model as a black box: anything satisfying Model
// (fit, then probability-of-positive-class per row) is substitutable.
package classifier
