// Package store provides the key-value blob storage capability and its
// SQLite and in-memory implementations.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no blob.
var ErrNotFound = errors.New("key not found")

// Store defines the blob storage capability.
type Store interface {
	// Put writes blob under key, replacing any previous value.
	Put(ctx context.Context, key, blob string) error

	// Get reads the blob stored under key.
	// Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
