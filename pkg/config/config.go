package config

import (
	"fmt"
	"time"
)

// Config is the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// Cache backends
const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
	CacheBackendNone     = "none"
)

// CacheConfig selects the projection result cache.
type CacheConfig struct {
	Backend   string         `mapstructure:"backend"`
	Size      int            `mapstructure:"size"`
	TTL       time.Duration  `mapstructure:"ttl"`
	KeyPrefix string         `mapstructure:"key_prefix"`
	Redis     RedisConfig    `mapstructure:"redis"`
	Postgres  PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type PostgresConfig struct {
	URL string `mapstructure:"url"`
}

// AssistantConfig configures the narrative text providers.
type AssistantConfig struct {
	ActiveProvider string         `mapstructure:"active_provider"`
	CacheSize      int            `mapstructure:"cache_size"`
	Temperature    float64        `mapstructure:"temperature"`
	MaxTokens      int            `mapstructure:"max_tokens"`
	Gemini         ProviderConfig `mapstructure:"gemini"`
	Groq           ProviderConfig `mapstructure:"groq"`
	Local          ProviderConfig `mapstructure:"local"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Validate checks the settings that would otherwise fail at runtime.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendPostgres, CacheBackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendMemory && c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address is required for the redis backend")
	}
	if c.Cache.Backend == CacheBackendPostgres && c.Cache.Postgres.URL == "" {
		return fmt.Errorf("cache.postgres.url is required for the postgres backend")
	}
	if c.Assistant.CacheSize <= 0 {
		return fmt.Errorf("assistant.cache_size must be positive, got %d", c.Assistant.CacheSize)
	}
	return nil
}
