package assets

import "context"

// Store persists binary blobs addressed by key.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns ErrNotFound when the key does not exist. The caller must
	// close the returned object's Body.
	Get(ctx context.Context, key string) (*Object, error)
}
