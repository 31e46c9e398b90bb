package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://foodhub-backend-api.vercel.app/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Storage.Provider)
	assert.Equal(t, "foodhub", cfg.Storage.Namespace)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestNewConfig_OptionsOverrideDefaults(t *testing.T) {
	cfg, err := NewConfig(
		WithBaseURL("https://staging.example.com/api"),
		WithTimeout(5*time.Second),
		WithStorageProvider("memory"),
		WithLogLevel("DEBUG"),
	)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestNewConfig_EnvironmentOverlay(t *testing.T) {
	t.Setenv("FOODHUB_API_URL", "https://env.example.com/api")
	t.Setenv("FOODHUB_STORAGE_PROVIDER", "memory")
	t.Setenv("FOODHUB_API_TIMEOUT", "30s")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}

func TestNewConfig_OptionsBeatEnvironment(t *testing.T) {
	t.Setenv("FOODHUB_API_URL", "https://env.example.com/api")

	cfg, err := NewConfig(WithBaseURL("https://option.example.com/api"))
	require.NoError(t, err)

	assert.Equal(t, "https://option.example.com/api", cfg.API.BaseURL)
}

func TestNewConfig_RedisURLFallback(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://fallback:6379")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis://fallback:6379", cfg.Storage.RedisURL)

	t.Setenv("FOODHUB_REDIS_URL", "redis://primary:6379")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis://primary:6379", cfg.Storage.RedisURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "missing base URL", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: true},
		{name: "unknown storage provider", mutate: func(c *Config) { c.Storage.Provider = "s3" }, wantErr: true},
		{name: "redis without URL", mutate: func(c *Config) { c.Storage.Provider = "redis" }, wantErr: true},
		{
			name: "redis with URL",
			mutate: func(c *Config) {
				c.Storage.Provider = "redis"
				c.Storage.RedisURL = "redis://localhost:6379"
			},
		},
		{
			name:    "telemetry without endpoint",
			mutate:  func(c *Config) { c.Telemetry.Enabled = true },
			wantErr: true,
		},
		{
			name: "stdout telemetry needs no endpoint",
			mutate: func(c *Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Stdout = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigurationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTimeout_RejectsNonPositive(t *testing.T) {
	_, err := NewConfig(WithTimeout(0))
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://file.example.com/api
storage:
  provider: memory
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Provider)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"api": {"base_url": "https://json.example.com/api"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "https://json.example.com/api", cfg.API.BaseURL)
}

func TestLoadFromFile_RejectsUnknownExtension(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile("config.toml")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestStoragePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/var/lib/foodhub"

	path, err := cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/foodhub", path)

	cfg.Storage.Path = ""
	path, err = cfg.StoragePath()
	require.NoError(t, err)
	assert.Equal(t, ".foodhub", filepath.Base(path))
}
