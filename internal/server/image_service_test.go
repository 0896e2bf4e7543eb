package server

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"testing"
)

func TestImageValidate(t *testing.T) {
	svc := testImageService(t)

	if err := svc.Validate("image/png", 100); err != nil {
		t.Fatalf("valid upload rejected: %v", err)
	}
	if err := svc.Validate("image/jpeg; charset=binary", 100); err != nil {
		t.Fatalf("parameterized media type rejected: %v", err)
	}

	err := svc.Validate("image/png", (1<<20)+1)
	if httpStatusFromError(err) != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected too large, got %v", err)
	}

	err = svc.Validate("application/pdf", 100)
	if httpStatusFromError(err) != http.StatusUnsupportedMediaType {
		t.Fatalf("expected unsupported media type, got %v", err)
	}
}

func TestImageIngestKeyAndURL(t *testing.T) {
	svc := testImageService(t)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, "Photo.PNG", "image/png", strings.NewReader("bytes"), 5)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// Keys look like 1716812345678-a1b2c3.png.
	pattern := regexp.MustCompile(`^\d{13}-[0-9a-z]{6}\.png$`)
	if !pattern.MatchString(result.Key) {
		t.Fatalf("unexpected key format: %q", result.Key)
	}
	if result.URL != testBaseURL+"/blobs/"+result.Key {
		t.Fatalf("unexpected url: %q", result.URL)
	}
	if result.SizeBytes != 5 {
		t.Fatalf("unexpected size: %d", result.SizeBytes)
	}

	if !svc.Owns(result.URL) {
		t.Fatal("service must own its upload URLs")
	}
	if svc.KeyFromURL(result.URL) != result.Key {
		t.Fatalf("round trip key mismatch: %q", svc.KeyFromURL(result.URL))
	}
	if svc.Owns("https://drive.google.com/uc?export=view&id=x") {
		t.Fatal("external URLs are not owned")
	}
}

func TestImageIngestRejectsOversizedStream(t *testing.T) {
	svc := testImageService(t)
	ctx := context.Background()

	// Declared size lies; the stream itself is over the ceiling.
	big := strings.NewReader(strings.Repeat("x", (1<<20)+10))
	_, err := svc.Ingest(ctx, "big.png", "image/png", big, 100)
	if httpStatusFromError(err) != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected too large, got %v", err)
	}
}

func TestImageRetire(t *testing.T) {
	svc := testImageService(t)
	ctx := context.Background()

	result, err := svc.Ingest(ctx, "a.png", "image/png", strings.NewReader("data"), 4)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	svc.Retire(ctx, result.URL)
	exists, err := svc.bucket.Exists(ctx, result.Key)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected retired image gone")
	}

	// External and already-gone URLs are no-ops.
	svc.Retire(ctx, "https://example.com/pic.png")
	svc.Retire(ctx, result.URL)
}
