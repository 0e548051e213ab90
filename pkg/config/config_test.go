package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "gemini", cfg.Assistant.ActiveProvider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Assistant.Groq.BaseURL)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  address: ":9090"
cache:
  backend: redis
  redis:
    address: "cache:6379"
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("BIZPLAN_LOGGING_FORMAT", "json")
	t.Setenv("BIZPLAN_CACHE_REDIS_DB", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Address)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BIZPLAN_CACHE_BACKEND", "memcached")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache backend")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Cache:     CacheConfig{Backend: CacheBackendMemory, Size: 10},
		Assistant: AssistantConfig{CacheSize: 10},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero memory size", func(c *Config) { c.Cache.Size = 0 }},
		{"redis without address", func(c *Config) { c.Cache.Backend = CacheBackendRedis }},
		{"postgres without url", func(c *Config) { c.Cache.Backend = CacheBackendPostgres }},
		{"zero assistant cache", func(c *Config) { c.Assistant.CacheSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	none := Config{Cache: CacheConfig{Backend: CacheBackendNone}, Assistant: AssistantConfig{CacheSize: 1}}
	assert.NoError(t, none.Validate())
}
