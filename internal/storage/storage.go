// Package storage persists uploaded resume files. The service only ever
// stores and fetches whole objects; there is no listing or partial access.
package storage

import "context"

// Store is a blob store for resume files.
type Store interface {
	// Save writes the object under key and returns a URL clients can use to
	// reference it.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Fetch reads the object stored under key.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object stored under key. Deleting an absent object
	// is not an error.
	Delete(ctx context.Context, key string) error
}
