package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for token generation and validation.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_TTL_HOURS (default 24)
// from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := envOr("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours, err := envInt("JWT_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be at least 1, got: %d", hours)
	}

	return &JWTConfig{
		Secret: secret,
		TTL:    time.Duration(hours) * time.Hour,
	}, nil
}
