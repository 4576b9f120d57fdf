package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/iwvelando/loan-planner/internal/config"
	"github.com/iwvelando/loan-planner/pkg/constants"
	"gopkg.in/yaml.v3"
)

// CacheConfig defines the memoization cache settings for the API.
type CacheConfig struct {
	// Backend selects the cache implementation: "memory" (default) or "redis".
	Backend string `yaml:"backend"`
	// RedisAddress is the host:port of the redis server when Backend is "redis".
	RedisAddress string `yaml:"redisAddress"`
	// TTLSeconds bounds how long memoized responses live; 0 uses the default.
	TTLSeconds int `yaml:"ttlSeconds"`
}

// TTL returns the configured cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	seconds := c.TTLSeconds
	if seconds <= 0 {
		seconds = constants.DefaultCacheTTLSeconds
	}
	return time.Duration(seconds) * time.Second
}

// RateLimitConfig defines per-client request limiting for the API.
type RateLimitConfig struct {
	// Requests is the bucket capacity per refill window.
	Requests int `yaml:"requests"`
	// WindowSeconds is the refill window; defaults to one minute.
	WindowSeconds int `yaml:"windowSeconds"`
}

// Window returns the configured refill window.
func (c RateLimitConfig) Window() time.Duration {
	seconds := c.WindowSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxRequestBytes int64                `yaml:"maxRequestBytes"`
	Cache           CacheConfig          `yaml:"cache"`
	RateLimit       RateLimitConfig      `yaml:"rateLimit"`
	Logging         config.LoggingConfig `yaml:"logging"`
}

// LoadConfig loads the server configuration from YAML. If the file does not
// exist, defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxRequestBytes: constants.DefaultMaxRequestBytes,
		Cache:           CacheConfig{Backend: "memory"},
		RateLimit:       RateLimitConfig{Requests: constants.DefaultRateLimitRequests},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxRequestBytes <= 0 {
		c.MaxRequestBytes = constants.DefaultMaxRequestBytes
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = constants.DefaultRateLimitRequests
	}

	switch c.Cache.Backend {
	case "", "memory":
		c.Cache.Backend = "memory"
	case "redis":
		if c.Cache.RedisAddress == "" {
			return fmt.Errorf("cache backend redis requires redisAddress")
		}
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}

	return nil
}
