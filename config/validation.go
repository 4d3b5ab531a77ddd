package config

import (
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

// ValidateConfig checks the loaded configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError

	if cfg.GCPProject == "" {
		errs = append(errs, ValidationError{"GCP_PROJECT_ID", "is required"})
	}
	if (cfg.GCPClientEmail == "") != (cfg.GCPPrivateKey == "") {
		errs = append(errs, ValidationError{"GCP_CLIENT_EMAIL", "must be set together with GCP_PRIVATE_KEY"})
	}
	if cfg.TextModel == "" || cfg.VisionModel == "" {
		errs = append(errs, ValidationError{"TEXT_MODEL", "model names must not be empty"})
	}
	if cfg.MaxOutputTokens <= 0 {
		errs = append(errs, ValidationError{"MAX_OUTPUT_TOKENS", "must be positive"})
	}
	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{"MAX_UPLOAD_BYTES", "must be positive"})
	}
	if cfg.UploadDir == "" {
		errs = append(errs, ValidationError{"UPLOAD_DIR", "is required"})
	}
	if cfg.RateLimitEnabled() {
		if cfg.RateLimit <= 0 {
			errs = append(errs, ValidationError{"RATE_LIMIT_REQUESTS", "must be positive"})
		}
		if cfg.RateLimitWindow <= 0 {
			errs = append(errs, ValidationError{"RATE_LIMIT_WINDOW", "must be positive"})
		}
	}

	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}
