package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failed requirement
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the configuration for the requirements of its environment
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var errs ValidationErrors
	required := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	required("SERVER_PORT", cfg.ServerPort)
	required("DB_HOST", cfg.DBHost)
	required("DB_NAME", cfg.DBName)
	required("ESTIMATION_API_URL", cfg.EstimationAPIURL)

	source := func(envVar, secret string) string {
		if cfg.Environment.UsesSecretsDir() {
			return secret + " secret or " + envVar
		}
		return envVar
	}
	required(source("JWT_SECRET", "jwt_secret"), cfg.JWTSecret)
	required(source("ESTIMATION_API_KEY", "estimation_api_key"), cfg.EstimationAPIKey)

	if cfg.Environment == Production {
		required(source("DB_PASSWORD", "db_password"), cfg.DBPassword)
		if len(cfg.JWTSecret) > 0 && len(cfg.JWTSecret) < 32 {
			errs = append(errs, ValidationError{Field: "jwt_secret", Message: "must be at least 32 characters in production"})
		}
	}

	if cfg.EstimationRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "ESTIMATION_RATE_LIMIT", Message: "must not be negative"})
	}

	switch cfg.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "LOG_FORMAT", Message: "must be text or json"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
