package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort            = "5000"
	defaultLocation        = "us-central1"
	defaultModel           = "gemini-2.0-flash"
	defaultMaxOutputTokens = 256
	defaultUploadDir       = "/tmp/uploads"
	defaultMaxUploadBytes  = 10 << 20
	defaultRateLimit       = 30
	defaultRateLimitWindow = time.Minute
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string
	LogLevel       string

	// Vertex AI configuration
	GCPProject      string
	GCPLocation     string
	GCPClientEmail  string
	GCPPrivateKey   string
	TextModel       string
	VisionModel     string
	MaxOutputTokens int

	// Upload configuration
	UploadDir      string
	MaxUploadBytes int64

	// Rate limiting, enabled when RedisURL is set
	RedisURL        string
	RateLimit       int
	RateLimitWindow time.Duration

	// Upload archive, enabled when S3Bucket is set
	S3Bucket  string
	AWSRegion string
}

// Addr returns the host:port the server listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, c.ServerPort)
}

// HasServiceAccount reports whether explicit service-account credentials were supplied
func (c *Config) HasServiceAccount() bool {
	return c.GCPClientEmail != "" && c.GCPPrivateKey != ""
}

// RateLimitEnabled reports whether a Redis URL was configured
func (c *Config) RateLimitEnabled() bool {
	return c.RedisURL != ""
}

// ArchiveEnabled reports whether an S3 bucket was configured
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		Environment:     GetEnvironment(),
		ServerHost:      os.Getenv("SERVER_HOST"),
		ServerPort:      firstNonEmpty(os.Getenv("PORT"), os.Getenv("SERVER_PORT"), defaultPort),
		AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GCPProject:      envOrSecret("GCP_PROJECT_ID", "gcp_project_id"),
		GCPLocation:     getEnv("GCP_LOCATION", defaultLocation),
		GCPClientEmail:  envOrSecret("GCP_CLIENT_EMAIL", "gcp_client_email"),
		GCPPrivateKey:   normalizePrivateKey(envOrSecret("GCP_PRIVATE_KEY", "gcp_private_key")),
		TextModel:       getEnv("TEXT_MODEL", defaultModel),
		VisionModel:     getEnv("VISION_MODEL", defaultModel),
		MaxOutputTokens: l.int("MAX_OUTPUT_TOKENS", defaultMaxOutputTokens),
		UploadDir:       getEnv("UPLOAD_DIR", defaultUploadDir),
		MaxUploadBytes:  l.int64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		RedisURL:        envOrSecret("REDIS_URL", "redis_url"),
		RateLimit:       l.int("RATE_LIMIT_REQUESTS", defaultRateLimit),
		RateLimitWindow: l.duration("RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:       os.Getenv("AWS_REGION"),
	}

	problems := l.problems
	if err := ValidateConfig(cfg); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("failed to load configuration:\n%s", strings.Join(problems, "\n"))
	}

	return cfg, nil
}

// loader parses typed environment variables and collects every parse failure
type loader struct {
	problems []string
}

func (l *loader) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		l.problems = append(l.problems, fmt.Sprintf("%s: invalid integer %q", key, raw))
		return def
	}
	return v
}

func (l *loader) int64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		l.problems = append(l.problems, fmt.Sprintf("%s: invalid integer %q", key, raw))
		return def
	}
	return v
}

func (l *loader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		l.problems = append(l.problems, fmt.Sprintf("%s: invalid duration %q", key, raw))
		return def
	}
	return v
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envOrSecret prefers the environment variable and falls back to a Docker secret
func envOrSecret(key, secret string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// normalizePrivateKey expands literal \n sequences, which is how PEM keys
// usually arrive through single-line environment variables.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
