package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:8700"
	DefaultDBFileName = ".shopfront.db"
	DefaultBlobDir    = ".shopfront-blobs"

	DefaultUploadMaxBytes      int64 = 1 * 1024 * 1024
	DefaultUploadMultipartMem  int64 = 8 * 1024 * 1024
	DefaultUploadAllowedPrefix       = "image/"

	configDirEnvKey = "SHOPFRONT_CONFIG_DIR"
	apiURLEnvKey    = "SHOPFRONT_API_URL"
	dbPathEnvKey    = "SHOPFRONT_DB"
	blobRootEnvKey  = "SHOPFRONT_BLOB_ROOT"
	adminTokenEnv   = "SHOPFRONT_ADMIN_TOKEN"

	configFileName = ".shopfront.toml"
)

// UploadConfig defines runtime limits for image uploads.
type UploadConfig struct {
	MaxUploadBytes     int64  `toml:"max_upload_bytes"`
	MultipartMaxMemory int64  `toml:"multipart_max_memory"`
	AllowedMediaPrefix string `toml:"allowed_media_prefix"`
}

// Config defines runtime configuration for shopfront.
type Config struct {
	APIURL        string       `toml:"api_url"`
	DBPath        string       `toml:"db_path"`
	BlobRoot      string       `toml:"blob_root"`
	PublicBaseURL string       `toml:"public_base_url"`
	AdminToken    string       `toml:"admin_token"`
	Uploads       UploadConfig `toml:"uploads"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL: DefaultAPIURL,
		Uploads: UploadConfig{
			MaxUploadBytes:     DefaultUploadMaxBytes,
			MultipartMaxMemory: DefaultUploadMultipartMem,
			AllowedMediaPrefix: DefaultUploadAllowedPrefix,
		},
	}
}

// Load reads config from the global file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := GlobalPath()
	if err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}
	if cfg.BlobRoot == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.BlobRoot = filepath.Join(cwd, DefaultBlobDir)
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv(dbPathEnvKey); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if blobRoot := os.Getenv(blobRootEnvKey); blobRoot != "" {
		cfg.BlobRoot = blobRoot
	}
	if token := strings.TrimSpace(os.Getenv(adminTokenEnv)); token != "" {
		cfg.AdminToken = token
	}

	cfg.normalizeUploadDefaults()

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = cfg.APIURL
	}

	return &cfg, nil
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"blob_root",
	"public_base_url",
	"admin_token",
	"uploads.max_upload_bytes",
	"uploads.multipart_max_memory",
	"uploads.allowed_media_prefix",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "blob_root":
		return c.BlobRoot, nil
	case "public_base_url":
		return c.PublicBaseURL, nil
	case "admin_token":
		return c.AdminToken, nil
	case "uploads.max_upload_bytes":
		return strconv.FormatInt(c.Uploads.MaxUploadBytes, 10), nil
	case "uploads.multipart_max_memory":
		return strconv.FormatInt(c.Uploads.MultipartMaxMemory, 10), nil
	case "uploads.allowed_media_prefix":
		return c.Uploads.AllowedMediaPrefix, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "uploads.max_upload_bytes", "uploads.multipart_max_memory":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalizeUploadDefaults() {
	if c.Uploads.MaxUploadBytes <= 0 {
		c.Uploads.MaxUploadBytes = DefaultUploadMaxBytes
	}
	if c.Uploads.MultipartMaxMemory <= 0 {
		c.Uploads.MultipartMaxMemory = DefaultUploadMultipartMem
	}
	if strings.TrimSpace(c.Uploads.AllowedMediaPrefix) == "" {
		c.Uploads.AllowedMediaPrefix = DefaultUploadAllowedPrefix
	}
}
