package server

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"shopfront/internal/blobstore"
	"shopfront/internal/store"
)

const testBaseURL = "http://127.0.0.1:8700"

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testImageService(t *testing.T) *ImageService {
	t.Helper()
	bucket, err := blobstore.NewLocalBucket(t.TempDir())
	if err != nil {
		t.Fatalf("new bucket: %v", err)
	}
	return NewImageService(bucket, testBaseURL, 1<<20, "image/", testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := testStore(t)
	images := testImageService(t)
	return &Server{
		addr:    "127.0.0.1:0",
		catalog: NewCatalogService(st, images),
		blogs:   NewBlogService(st),
		images:  images,
		authStore: st,
		logger:  testLogger(),
	}
}
