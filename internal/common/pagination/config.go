// Package pagination provides offset pagination math and the page metadata
// returned alongside listings.
package pagination

import (
	"content-api/pkg/config"
)

// HardMaxLimit is the largest page size any listing will serve, regardless of configuration.
const HardMaxLimit = 50

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int // Default page number (always 1 in practice)
	DefaultLimit int // Default items per page
	MaxLimit     int // Maximum allowed items per page, never above HardMaxLimit
}

// DefaultConfig returns the listing defaults: page=1, limit=10, max=50.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     HardMaxLimit,
	}
}

// LoadFromEnv loads pagination config from environment variables.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page (capped at HardMaxLimit)
//
// Out-of-range values fall back to DefaultConfig().
func LoadFromEnv() Config {
	cfg := DefaultConfig()

	if maxLimit := config.GetEnvInt("PAGINATION_MAX_LIMIT", cfg.MaxLimit); maxLimit >= 1 && maxLimit <= HardMaxLimit {
		cfg.MaxLimit = maxLimit
	}
	if limit := config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", cfg.DefaultLimit); limit >= 1 && limit <= cfg.MaxLimit {
		cfg.DefaultLimit = limit
	} else if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}
