package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBucket stores image bytes as flat files under a local root.
type LocalBucket struct {
	root string
}

// NewLocalBucket creates a local bucket rooted at root.
func NewLocalBucket(root string) (*LocalBucket, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("local bucket root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, "tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalBucket{root: abs}, nil
}

// Put streams bytes to the given key. Writing to an existing key fails so
// uploads never clobber each other.
func (b *LocalBucket) Put(ctx context.Context, key string, r io.Reader) (PutResult, error) {
	var zero PutResult
	if b == nil {
		return zero, fmt.Errorf("bucket is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	dst, err := b.pathFromKey(key)
	if err != nil {
		return zero, err
	}
	if _, err := os.Stat(dst); err == nil {
		return zero, fmt.Errorf("object already exists: %s", key)
	} else if !errors.Is(err, os.ErrNotExist) {
		return zero, err
	}

	tmp, err := os.CreateTemp(filepath.Join(b.root, "tmp"), "put-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	n, err := io.Copy(tmp, r)
	if err != nil {
		cleanup()
		return zero, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return zero, err
	}

	return PutResult{Key: key, SizeBytes: n}, nil
}

// Open returns a reader for a stored object.
func (b *LocalBucket) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if b == nil {
		return nil, fmt.Errorf("bucket is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := b.pathFromKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a stored object. Missing objects are ignored.
func (b *LocalBucket) Delete(ctx context.Context, key string) error {
	if b == nil {
		return fmt.Errorf("bucket is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether an object is present under key.
func (b *LocalBucket) Exists(ctx context.Context, key string) (bool, error) {
	if b == nil {
		return false, fmt.Errorf("bucket is not configured")
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	path, err := b.pathFromKey(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *LocalBucket) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("object key must be relative")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == "tmp" || strings.HasPrefix(clean, "..") || strings.Contains(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key")
	}
	return filepath.Join(b.root, clean), nil
}

var _ Bucket = (*LocalBucket)(nil)
