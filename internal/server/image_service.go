package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"shopfront/internal/blobstore"
)

const uploadKeyRandomLength = 6

// ImageService stores product images in a bucket and hands out public URLs.
type ImageService struct {
	bucket        blobstore.Bucket
	publicBaseURL string
	maxBytes      int64
	allowedPrefix string
	logger        *slog.Logger
}

// NewImageService creates an image service.
func NewImageService(bucket blobstore.Bucket, publicBaseURL string, maxBytes int64, allowedPrefix string, logger *slog.Logger) *ImageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageService{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxBytes:      maxBytes,
		allowedPrefix: allowedPrefix,
		logger:        logger,
	}
}

// UploadResult describes one ingested image.
type UploadResult struct {
	Key       string
	URL       string
	SizeBytes int64
}

// Validate checks declared size and media type before any bytes move.
func (s *ImageService) Validate(contentType string, size int64) error {
	if size > s.maxBytes {
		return makeAPIError(http.StatusRequestEntityTooLarge, "too_large", ErrCodeInvalidUpload,
			fmt.Errorf("image exceeds %d byte limit", s.maxBytes))
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !strings.HasPrefix(mediaType, s.allowedPrefix) {
		return makeAPIError(http.StatusUnsupportedMediaType, "unsupported_media_type", ErrCodeUnsupportedMediaType,
			fmt.Errorf("only %s* uploads are accepted", s.allowedPrefix))
	}
	return nil
}

// Ingest streams one image into the bucket under a fresh timestamped key.
// The size ceiling is enforced on the stream as well as the declared size.
func (s *ImageService) Ingest(ctx context.Context, filename, contentType string, r io.Reader, declaredSize int64) (UploadResult, error) {
	var zero UploadResult
	if err := s.Validate(contentType, declaredSize); err != nil {
		return zero, err
	}

	key, err := s.newKey(filename)
	if err != nil {
		return zero, internalError(err)
	}

	limited := io.LimitReader(r, s.maxBytes+1)
	result, err := s.bucket.Put(ctx, key, limited)
	if err != nil {
		return zero, blobFailure(err)
	}
	if result.SizeBytes > s.maxBytes {
		_ = s.bucket.Delete(ctx, key)
		return zero, makeAPIError(http.StatusRequestEntityTooLarge, "too_large", ErrCodeInvalidUpload,
			fmt.Errorf("image exceeds %d byte limit", s.maxBytes))
	}

	return UploadResult{Key: key, URL: s.PublicURL(key), SizeBytes: result.SizeBytes}, nil
}

// PublicURL returns the public URL for a stored key.
func (s *ImageService) PublicURL(key string) string {
	return s.publicBaseURL + "/blobs/" + key
}

// Owns reports whether a picture URL points into this bucket.
func (s *ImageService) Owns(pictureURL string) bool {
	return strings.HasPrefix(pictureURL, s.publicBaseURL+"/blobs/")
}

// KeyFromURL extracts the bucket key from a URL this service owns.
func (s *ImageService) KeyFromURL(pictureURL string) string {
	if !s.Owns(pictureURL) {
		return ""
	}
	return strings.TrimPrefix(pictureURL, s.publicBaseURL+"/blobs/")
}

// Retire deletes the object behind a picture URL, best effort. External
// URLs (Drive links and the like) are left alone.
func (s *ImageService) Retire(ctx context.Context, pictureURL string) {
	key := s.KeyFromURL(pictureURL)
	if key == "" {
		return
	}
	if err := s.bucket.Delete(ctx, key); err != nil {
		s.logger.Warn("retire image", "key", key, "error", err)
	}
}

// Open returns a reader for a stored key.
func (s *ImageService) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.bucket.Open(ctx, key)
}

// newKey builds a collision-resistant object key from the upload timestamp,
// a random suffix, and the original file extension.
func (s *ImageService) newKey(filename string) (string, error) {
	suffix, err := randomBase36(uploadKeyRandomLength)
	if err != nil {
		return "", err
	}
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext), nil
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = base36Alphabet[int(b[i])%len(base36Alphabet)]
	}
	return string(out), nil
}
