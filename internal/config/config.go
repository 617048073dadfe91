// Package config loads the service configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains the service configuration.
type Config struct {
	Addr string `yaml:"addr"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	SpotifyBaseURL      string `yaml:"spotify_base_url"`
	SpotifyClientID     string `yaml:"spotify_client_id"`
	SpotifyClientSecret string `yaml:"spotify_client_secret"`

	CacheCapacity   int `yaml:"cache_capacity"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`

	WorkerCount     int `yaml:"worker_count"`
	WorkerQueueSize int `yaml:"worker_queue_size"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Addr:            ":8080",
		CacheCapacity:   100,
		CacheTTLMinutes: 60,
		WorkerCount:     2,
		WorkerQueueSize: 100,
	}
}

// Load reads configuration from path (skipped when empty or missing) and
// applies environment overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

func applyEnv(cfg *Config) {
	setString(&cfg.Addr, "VIBECRAFT_ADDR")
	setString(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&cfg.SpotifyBaseURL, "SPOTIFY_BASE_URL")
	setString(&cfg.SpotifyClientID, "SPOTIFY_CLIENT_ID")
	setString(&cfg.SpotifyClientSecret, "SPOTIFY_CLIENT_SECRET")
	setInt(&cfg.CacheCapacity, "VIBECRAFT_CACHE_CAPACITY")
	setInt(&cfg.CacheTTLMinutes, "VIBECRAFT_CACHE_TTL_MINUTES")
	setInt(&cfg.WorkerCount, "VIBECRAFT_WORKER_COUNT")
	setInt(&cfg.WorkerQueueSize, "VIBECRAFT_WORKER_QUEUE_SIZE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}
