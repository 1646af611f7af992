package api

import (
	"os"
	"strconv"
)

// Config holds the REST backend connection settings.
type Config struct {
	BaseURL    string
	TimeoutMs  int
	MaxRetries int // retries for idempotent GETs only
}

// DefaultConfig returns a Config pointing at a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:    "http://localhost:8080/api",
		TimeoutMs:  15000,
		MaxRetries: 1,
	}
}

// LoadConfig reads backend configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("FABPLAN_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FABPLAN_API_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TimeoutMs = ms
		}
	}
	if v := os.Getenv("FABPLAN_API_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	return cfg
}
