// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// StorageBackend selects where uploaded resume files live.
type StorageBackend string

const (
	StorageS3    StorageBackend = "s3"
	StorageLocal StorageBackend = "local"
)

// StorageConfig configures the resume blob store.
type StorageConfig struct {
	Backend       StorageBackend
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	LocalDir      string
}

// Config is the full service configuration.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string

	GeminiAPIKey string
	GeminiModel  string

	ReviewTTL time.Duration

	Storage  StorageConfig
	JWT      *JWTConfig
	Password *PasswordConfig
}

// Load reads configuration from environment variables. DATABASE_URL,
// REDIS_URL, GEMINI_API_KEY, and JWT_SECRET are required; everything else
// has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         envOr("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     os.Getenv("REDIS_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required but not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required but not set")
	}

	ttlHours, err := envInt("REVIEW_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if ttlHours < 1 {
		return nil, fmt.Errorf("REVIEW_TTL_HOURS must be at least 1, got: %d", ttlHours)
	}
	cfg.ReviewTTL = time.Duration(ttlHours) * time.Hour

	storage, err := loadStorage()
	if err != nil {
		return nil, err
	}
	cfg.Storage = storage

	if cfg.JWT, err = NewJWTConfig(); err != nil {
		return nil, err
	}
	if cfg.Password, err = NewPasswordConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadStorage() (StorageConfig, error) {
	backend := StorageBackend(envOr("STORAGE_BACKEND", string(StorageLocal)))

	sc := StorageConfig{
		Backend:       backend,
		Bucket:        os.Getenv("STORAGE_BUCKET"),
		Region:        envOr("STORAGE_REGION", "auto"),
		Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
		AccessKey:     os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey:     os.Getenv("STORAGE_SECRET_KEY"),
		PublicBaseURL: envOr("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/files"),
		LocalDir:      envOr("STORAGE_LOCAL_DIR", "./data/resumes"),
	}

	switch backend {
	case StorageS3:
		if sc.Bucket == "" {
			return sc, fmt.Errorf("STORAGE_BUCKET is required for the s3 backend")
		}
	case StorageLocal:
	default:
		return sc, fmt.Errorf("unknown STORAGE_BACKEND: %q", backend)
	}

	return sc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
