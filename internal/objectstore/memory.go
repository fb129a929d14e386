// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory is an in-memory Store for tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// Get returns the stored object or ErrNotFound.
func (m *Memory) Get(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[objectKey(bucket, key)]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, bucket, key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put stores a copy of body.
func (m *Memory) Put(_ context.Context, bucket, key string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[objectKey(bucket, key)] = append([]byte(nil), body...)
	return nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
