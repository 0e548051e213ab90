package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (BIZPLAN_CACHE_BACKEND, ...).
const EnvPrefix = "BIZPLAN"

// Load reads config.yaml (from path, or ./ and ./configs when path is
// empty), then applies .env and BIZPLAN_* environment overrides.
// A missing config file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Every key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.key_prefix", "bizplan:projection:")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.postgres.url", "")

	v.SetDefault("assistant.active_provider", "gemini")
	v.SetDefault("assistant.cache_size", 128)
	v.SetDefault("assistant.temperature", 0.7)
	v.SetDefault("assistant.max_tokens", 2048)
	v.SetDefault("assistant.gemini.api_key", "")
	v.SetDefault("assistant.gemini.model", "gemini-2.0-flash")
	v.SetDefault("assistant.groq.api_key", "")
	v.SetDefault("assistant.groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("assistant.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("assistant.local.api_key", "")
	v.SetDefault("assistant.local.model", "llama3")
	v.SetDefault("assistant.local.base_url", "http://localhost:11434/v1")
}
