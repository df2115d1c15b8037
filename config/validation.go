package config

import (
	"fmt"
	"strings"
)

// Validate checks that everything the current environment requires is set.
// Development falls back to SQLite and permissive defaults; production must
// be fully configured.
func Validate(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	if IsProduction() {
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required in production")
		}
		if cfg.RedisURL == "" && cfg.RedisPassword == "" {
			errors = append(errors, "REDIS_URL or REDIS_PASSWORD is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
