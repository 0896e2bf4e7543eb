package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHOPFRONT_CONFIG_DIR", dir)
	t.Setenv("SHOPFRONT_API_URL", "")
	t.Setenv("SHOPFRONT_DB", "")
	t.Setenv("SHOPFRONT_BLOB_ROOT", "")
	t.Setenv("SHOPFRONT_ADMIN_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.Uploads.MaxUploadBytes != DefaultUploadMaxBytes {
		t.Fatalf("expected default upload ceiling, got %d", cfg.Uploads.MaxUploadBytes)
	}
	if cfg.Uploads.AllowedMediaPrefix != "image/" {
		t.Fatalf("expected image/ prefix, got %q", cfg.Uploads.AllowedMediaPrefix)
	}
	if cfg.PublicBaseURL != cfg.APIURL {
		t.Fatalf("expected public base url to fall back to api url, got %q", cfg.PublicBaseURL)
	}
	if cfg.DBPath == "" || cfg.BlobRoot == "" {
		t.Fatal("expected db path and blob root defaults")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHOPFRONT_CONFIG_DIR", dir)
	t.Setenv("SHOPFRONT_API_URL", "")
	t.Setenv("SHOPFRONT_DB", "")
	t.Setenv("SHOPFRONT_BLOB_ROOT", "")
	t.Setenv("SHOPFRONT_ADMIN_TOKEN", "")

	path := filepath.Join(dir, ".shopfront.toml")
	content := "api_url = \"http://example.com:9000\"\ndb_path = \"/tmp/file.db\"\n\n[uploads]\nmax_upload_bytes = 2048\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://example.com:9000" {
		t.Fatalf("expected file api url, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "/tmp/file.db" {
		t.Fatalf("expected file db path, got %q", cfg.DBPath)
	}
	if cfg.Uploads.MaxUploadBytes != 2048 {
		t.Fatalf("expected 2048 upload ceiling, got %d", cfg.Uploads.MaxUploadBytes)
	}

	t.Setenv("SHOPFRONT_API_URL", "http://env-wins:1234")
	t.Setenv("SHOPFRONT_ADMIN_TOKEN", "secret")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://env-wins:1234" {
		t.Fatalf("expected env api url to win, got %q", cfg.APIURL)
	}
	if cfg.AdminToken != "secret" {
		t.Fatalf("expected env admin token, got %q", cfg.AdminToken)
	}
}

func TestSetKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".shopfront.toml")

	if err := SetKey(path, "api_url", "http://host:1"); err != nil {
		t.Fatalf("set api_url: %v", err)
	}
	if err := SetKey(path, "uploads.max_upload_bytes", "4096"); err != nil {
		t.Fatalf("set uploads key: %v", err)
	}
	if err := SetKey(path, "bogus", "x"); err == nil {
		t.Fatal("expected unknown key to fail")
	}
	if err := SetKey(path, "uploads.max_upload_bytes", "-1"); err == nil {
		t.Fatal("expected negative ceiling to fail")
	}

	t.Setenv("SHOPFRONT_CONFIG_DIR", dir)
	t.Setenv("SHOPFRONT_API_URL", "")
	t.Setenv("SHOPFRONT_DB", "")
	t.Setenv("SHOPFRONT_BLOB_ROOT", "")
	t.Setenv("SHOPFRONT_ADMIN_TOKEN", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://host:1" {
		t.Fatalf("expected written api url, got %q", cfg.APIURL)
	}
	if cfg.Uploads.MaxUploadBytes != 4096 {
		t.Fatalf("expected 4096, got %d", cfg.Uploads.MaxUploadBytes)
	}
}
