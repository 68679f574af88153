package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Port int `koanf:"port"`

	TMDBAPIKey       string `koanf:"tmdb_api_key"`
	TMDBBaseURL      string `koanf:"tmdb_base_url"`
	TMDBImageBaseURL string `koanf:"tmdb_image_base_url"`

	CacheTTL    time.Duration `koanf:"cache_ttl"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`
	MaxRetries  int           `koanf:"max_retries"`

	RedisURL string `koanf:"redis_url"`

	CandidatePoolSize int   `koanf:"candidate_pool_size"`
	ImportConcurrency int   `koanf:"import_concurrency"`
	MaxUploadSize     int64 `koanf:"max_upload_size"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaults() *Config {
	return &Config{
		Port:              8080,
		TMDBAPIKey:        "",
		TMDBBaseURL:       "https://api.themoviedb.org/3",
		TMDBImageBaseURL:  "https://image.tmdb.org/t/p/w500",
		CacheTTL:          24 * time.Hour,
		HTTPTimeout:       10 * time.Second,
		MaxRetries:        3,
		RedisURL:          "",
		CandidatePoolSize: 1000,
		ImportConcurrency: 10,
		MaxUploadSize:     10 << 20, // 10MB
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// Load builds the configuration from defaults overridden by
// environment variables (TMDB_API_KEY, CACHE_TTL, PORT, ...).
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// TMDB_API_KEY -> tmdb_api_key
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TMDBAPIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %s", c.CacheTTL)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
