package ratelimit

import (
	"os"
	"strconv"
	"time"
)

// LoadConfig builds the limiter configuration from environment variables.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. Uploads and parses
// drive storage and model spend, so they get the tightest buckets.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/auth/upload/", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/resume/parse/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/auth/resume/apply/", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		{Path: "/auth/register", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/auth/password", Method: "PUT", Limit: 30, Window: time.Hour, Burst: 5},

		{Path: "/auth/profile/", Method: "PATCH", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
