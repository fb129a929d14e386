// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package objectstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound reports a missing object.
var ErrNotFound = errors.New("object not found")

// Store is the object-storage capability the pipeline needs: blocking get
// and put of whole objects.
type Store interface {
	// Get returns the object's body. The caller must close it.
	Get(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	// Put writes body as the object's full content.
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}
