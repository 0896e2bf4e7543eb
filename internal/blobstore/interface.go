package blobstore

import (
	"context"
	"io"
)

// PutResult describes one persisted image payload.
type PutResult struct {
	Key       string
	SizeBytes int64
}

// Bucket is the byte-storage abstraction used by ImageService. Keys are
// caller-chosen; Put refuses to overwrite an existing key.
type Bucket interface {
	Put(ctx context.Context, key string, r io.Reader) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
