// Package config holds the process-level configuration of the content API.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	envcfg "content-api/pkg/config"
)

// Blob backends.
const (
	BlobBackendS3     = "s3"
	BlobBackendFS     = "fs"
	BlobBackendMemory = "memory"
)

// BlobConfig selects and configures the blob store holding item bodies.
type BlobConfig struct {
	Backend         string
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS; set for R2/MinIO
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	FSDir           string
}

// RateLimitConfig configures per-client request throttling.
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the sustained rate per client IP.
	RequestsPerMinute int
	Burst             int
	// TrustProxyHeaders takes the client IP from X-Forwarded-For. Enable only behind a proxy that sets it.
	TrustProxyHeaders bool
}

// AppConfig is everything cmd/api needs at startup.
type AppConfig struct {
	Port               string
	LogLevel           string
	DBDriver           string
	DatabaseURL        string
	DBCircuitBreaker   bool
	DBApplySchema      bool // create tables on startup; development only
	Blob               BlobConfig
	CDNBaseURL         string
	ContentConfigFile  string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	RequestTimeout     time.Duration
	RateLimit          RateLimitConfig
	TracingEnabled     bool
	TraceSamplePercent int // share of root spans sampled, 0..100
}

// LoadAppConfig reads AppConfig from the environment and validates it.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:             envcfg.GetEnvString("PORT", "8080"),
		LogLevel:         envcfg.GetEnvString("LOG_LEVEL", "info"),
		DBDriver:         envcfg.GetEnvString("DB_DRIVER", "sqlite"),
		DatabaseURL:      envcfg.GetEnvString("DATABASE_URL", "file:content.db?_foreign_keys=on"),
		DBCircuitBreaker: envcfg.GetEnvBool("DB_CIRCUIT_BREAKER", true),
		DBApplySchema:    envcfg.GetEnvBool("DB_APPLY_SCHEMA", false),
		Blob: BlobConfig{
			Backend:         envcfg.GetEnvString("BLOB_BACKEND", BlobBackendFS),
			Bucket:          envcfg.GetEnvString("S3_BUCKET", ""),
			Region:          envcfg.GetEnvString("S3_REGION", "auto"),
			Endpoint:        envcfg.GetEnvString("S3_ENDPOINT", ""),
			AccessKeyID:     envcfg.GetEnvString("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: envcfg.GetEnvString("S3_SECRET_ACCESS_KEY", ""),
			UsePathStyle:    envcfg.GetEnvBool("S3_USE_PATH_STYLE", false),
			FSDir:           envcfg.GetEnvString("BLOB_FS_DIR", "./content"),
		},
		CDNBaseURL:         envcfg.GetEnvString("CDN_BASE_URL", ""),
		ContentConfigFile:  envcfg.GetEnvString("CONTENT_CONFIG_FILE", ""),
		CORSAllowedOrigins: envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		ShutdownTimeout:    envcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RequestTimeout:     envcfg.GetEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		RateLimit: RateLimitConfig{
			Enabled:           envcfg.GetEnvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: envcfg.GetEnvInt("RATE_LIMIT_PER_MINUTE", 300),
			Burst:             envcfg.GetEnvInt("RATE_LIMIT_BURST", 50),
			TrustProxyHeaders: envcfg.GetEnvBool("TRUST_PROXY_HEADERS", false),
		},
		TracingEnabled:     envcfg.GetEnvBool("TRACING_ENABLED", false),
		TraceSamplePercent: envcfg.GetEnvInt("TRACE_SAMPLE_PERCENT", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT cannot be empty"))
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL cannot be empty"))
	}

	switch c.Blob.Backend {
	case BlobBackendS3:
		if c.Blob.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when BLOB_BACKEND=s3"))
		}
		if (c.Blob.AccessKeyID == "") != (c.Blob.SecretAccessKey == "") {
			errs = append(errs, errors.New("S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY must be set together"))
		}
	case BlobBackendFS:
		if c.Blob.FSDir == "" {
			errs = append(errs, errors.New("BLOB_FS_DIR is required when BLOB_BACKEND=fs"))
		}
	case BlobBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be s3, fs or memory, got %q", c.Blob.Backend))
	}

	if c.CDNBaseURL != "" {
		u, err := url.Parse(c.CDNBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("CDN_BASE_URL must be an absolute http(s) URL, got %q", c.CDNBaseURL))
		}
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT cannot be negative"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}
	if c.TraceSamplePercent < 0 || c.TraceSamplePercent > 100 {
		errs = append(errs, fmt.Errorf("TRACE_SAMPLE_PERCENT must be within 0..100, got %d", c.TraceSamplePercent))
	}

	return errors.Join(errs...)
}

// CDNBase returns CDNBaseURL without a trailing slash.
func (c *AppConfig) CDNBase() string {
	return strings.TrimSuffix(c.CDNBaseURL, "/")
}
