// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Storage driver: "db" or "contentapi"
	Driver string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration

	// Remote content API (BLOG_DRIVER=contentapi)
	ContentAPIBaseURL string
	ContentAPIDataset string
	ContentAPIToken   string
	ContentAPIVersion string

	// Admin auth
	JWTSecret         string
	AdminUser         string
	AdminPasswordHash string // bcrypt hash

	// S3-compatible media storage
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	// Rate limits, requests per minute
	PublicRateLimit int
	AdminRateLimit  int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		Driver: envOrDefault("BLOG_DRIVER", "db"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "inkwell"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "inkwell"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		CacheTTL:       envOrDuration("CACHE_TTL", 5*time.Minute),

		ContentAPIBaseURL: os.Getenv("CONTENTAPI_BASE_URL"),
		ContentAPIDataset: envOrDefault("CONTENTAPI_DATASET", "production"),
		ContentAPIToken:   os.Getenv("CONTENTAPI_TOKEN"),
		ContentAPIVersion: envOrDefault("CONTENTAPI_VERSION", "v2024-01-01"),

		JWTSecret:         envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		AdminUser:         envOrDefault("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3Bucket:    envOrDefault("S3_BUCKET", "inkwell-media"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		PublicRateLimit: envOrInt("PUBLIC_RATE_LIMIT", 120),
		AdminRateLimit:  envOrInt("ADMIN_RATE_LIMIT", 60),
	}

	switch cfg.Driver {
	case "db", "contentapi":
	default:
		return nil, fmt.Errorf("BLOG_DRIVER must be db or contentapi, got %q", cfg.Driver)
	}

	if cfg.Driver == "contentapi" && cfg.ContentAPIBaseURL == "" {
		return nil, fmt.Errorf("CONTENTAPI_BASE_URL must be set when BLOG_DRIVER=contentapi")
	}

	if cfg.Env == "production" {
		if cfg.Driver == "db" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.JWTSecret == "dev-secret-change-me" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrInt reads an integer environment variable.
func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// envOrDuration reads a duration environment variable ("5m", "90s").
func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
