package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"consultant-backend/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string

	// S3-compatible object storage.
	StorageEndpointURL  string
	StorageRegion       string
	StorageBucket       string
	StorageAccessKey    string
	StorageSecretKey    string
	StorageUsePathStyle bool
	SSEKMSKeyID         string

	// DocLocation is the base of every returned document location, e.g. "https://cdn.example/docs".
	DocLocation    string
	UploadTempDir  string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "s3")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),

		StorageEndpointURL:  getEnv("STORAGE_ENDPOINT_URL", ""),
		StorageRegion:       getEnv("STORAGE_REGION", "us-east-1"),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		StorageAccessKey:    getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey:    getEnv("STORAGE_SECRET_KEY", ""),
		StorageUsePathStyle: getBool("STORAGE_USE_PATH_STYLE", false),
		SSEKMSKeyID:         getEnv("STORAGE_SSE_KMS_KEY_ID", ""),

		DocLocation:    getEnv("DOC_LOCATION", ""),
		UploadTempDir:  getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DocLocation) == "" {
		errs = append(errs, errors.New("DOC_LOCATION is required"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}

	switch c.ObjectStoreType {
	case "s3", "minio":
		if c.StorageBucket == "" {
			errs = append(errs, errors.New("STORAGE_BUCKET is required"))
		}
		if c.StorageAccessKey == "" {
			errs = append(errs, errors.New("STORAGE_ACCESS_KEY is required"))
		}
		if c.StorageSecretKey == "" {
			errs = append(errs, errors.New("STORAGE_SECRET_KEY is required"))
		}
		if c.ObjectStoreType == "minio" && c.StorageEndpointURL == "" {
			errs = append(errs, errors.New("STORAGE_ENDPOINT_URL is required for minio"))
		}
	case "local":
		if c.LocalStoreDir == "" {
			errs = append(errs, errors.New("LOCAL_STORE_DIR is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown OBJECT_STORE %q", c.ObjectStoreType))
	}

	if c.Env == "production" && c.ObjectStoreType == "local" {
		telemetry.Info("config.local_store_in_production", map[string]any{"local_store_dir": c.LocalStoreDir})
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Error("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return v
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		telemetry.Error("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "fs":
		return "local"
	case "minio":
		return "minio"
	case "s3", "":
		return "s3"
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}
