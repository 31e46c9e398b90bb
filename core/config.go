package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the FoodHub client.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithBaseURL("https://api.example.com/api"),
//	    WithStorageProvider("file"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// API configuration for the remote FoodHub backend
	API APIConfig `json:"api" yaml:"api"`

	// Storage configuration for local persistence
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Telemetry configuration (optional)
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// APIConfig describes how to reach the remote API and the fixed request
// timeout policy the HTTP collaborator enforces.
type APIConfig struct {
	BaseURL string        `json:"base_url" yaml:"base_url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// StorageConfig selects the durable key-value backend for session and cart
// persistence. Providers: "memory" (tests), "file" (single-user client),
// "redis" (shared/kiosk deployments).
type StorageConfig struct {
	Provider  string `json:"provider" yaml:"provider"`
	Path      string `json:"path" yaml:"path"`
	RedisURL  string `json:"redis_url" yaml:"redis_url"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// TelemetryConfig enables OpenTelemetry tracing for outgoing requests.
type TelemetryConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// Stdout switches to the stdout trace exporter for local development.
	Stdout bool `json:"stdout" yaml:"stdout"`
}

// LoggingConfig controls the default logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// DefaultConfig returns a Config populated with defaults only.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://foodhub-backend-api.vercel.app/api",
			Timeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Provider:  "file",
			Namespace: "foodhub",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// NewConfig builds a Config from defaults, environment variables, and the
// given options, then validates it.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironment()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironment overlays environment variables onto the config.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("FOODHUB_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FOODHUB_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("FOODHUB_STORAGE_PROVIDER"); v != "" {
		c.Storage.Provider = v
	}
	if v := os.Getenv("FOODHUB_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("FOODHUB_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	} else if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("FOODHUB_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("FOODHUB_OTEL_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
	}
	if v := os.Getenv("FOODHUB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FOODHUB_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
}

// LoadFromFile loads configuration from a JSON or YAML file, overlaying the
// current values.
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)

	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfiguration)
	}

	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cleanPath = filepath.Join(wd, cleanPath)
	}

	data, err := os.ReadFile(filepath.Clean(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", ErrInvalidConfiguration)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", ErrInvalidConfiguration)
		}
	}

	return nil
}

// Validate checks if the configuration is valid and returns an error if not.
//
// Validation rules:
//   - API base URL is required
//   - API timeout must be positive
//   - Storage provider must be one of memory, file, redis
//   - Redis URL is required when the redis storage provider is selected
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return &ClientError{
			Op:      "Config.Validate",
			Kind:    ErrorKindConfig,
			Message: "API base URL is required",
			Err:     ErrMissingConfiguration,
		}
	}

	if c.API.Timeout <= 0 {
		return &ClientError{
			Op:      "Config.Validate",
			Kind:    ErrorKindConfig,
			Message: fmt.Sprintf("invalid API timeout: %s", c.API.Timeout),
			Err:     ErrInvalidConfiguration,
		}
	}

	switch c.Storage.Provider {
	case "memory", "file", "redis":
	default:
		return &ClientError{
			Op:      "Config.Validate",
			Kind:    ErrorKindConfig,
			Message: fmt.Sprintf("unknown storage provider: %s", c.Storage.Provider),
			Err:     ErrInvalidConfiguration,
		}
	}

	if c.Storage.Provider == "redis" && c.Storage.RedisURL == "" {
		return &ClientError{
			Op:      "Config.Validate",
			Kind:    ErrorKindConfig,
			Message: "redis URL is required for the redis storage provider",
			Err:     ErrMissingConfiguration,
		}
	}

	if c.Telemetry.Enabled && !c.Telemetry.Stdout && c.Telemetry.Endpoint == "" {
		return &ClientError{
			Op:      "Config.Validate",
			Kind:    ErrorKindConfig,
			Message: "telemetry endpoint is required when telemetry is enabled",
			Err:     ErrMissingConfiguration,
		}
	}

	return nil
}

// StoragePath resolves the directory for the file storage provider,
// defaulting to ~/.foodhub.
func (c *Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".foodhub"), nil
}

// parseBool converts a string to a boolean value.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Functional Options

// WithBaseURL sets the remote API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) error {
		c.API.BaseURL = url
		return nil
	}
}

// WithTimeout sets the fixed request timeout for all API calls.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return &ClientError{
				Op:      "WithTimeout",
				Kind:    ErrorKindConfig,
				Message: fmt.Sprintf("invalid timeout: %s", timeout),
				Err:     ErrInvalidConfiguration,
			}
		}
		c.API.Timeout = timeout
		return nil
	}
}

// WithStorageProvider selects the persistence backend: memory, file, or redis.
func WithStorageProvider(provider string) Option {
	return func(c *Config) error {
		c.Storage.Provider = provider
		return nil
	}
}

// WithStoragePath sets the directory used by the file storage provider.
func WithStoragePath(path string) Option {
	return func(c *Config) error {
		c.Storage.Path = path
		return nil
	}
}

// WithRedisURL sets the Redis connection URL for the redis storage provider.
func WithRedisURL(url string) Option {
	return func(c *Config) error {
		c.Storage.RedisURL = url
		return nil
	}
}

// WithNamespace sets the key namespace for shared storage backends.
func WithNamespace(ns string) Option {
	return func(c *Config) error {
		c.Storage.Namespace = ns
		return nil
	}
}

// WithTelemetry enables tracing with the given OTLP endpoint.
func WithTelemetry(enabled bool, endpoint string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = enabled
		c.Telemetry.Endpoint = endpoint
		return nil
	}
}

// WithStdoutTelemetry enables tracing with the stdout exporter (development).
func WithStdoutTelemetry() Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = true
		c.Telemetry.Stdout = true
		return nil
	}
}

// WithLogLevel sets the log level (DEBUG, INFO, WARN, ERROR).
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithLogFormat sets the log format ("text" or "json").
func WithLogFormat(format string) Option {
	return func(c *Config) error {
		c.Logging.Format = format
		return nil
	}
}

// WithConfigFile loads configuration from the given file before applying
// later options.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}
