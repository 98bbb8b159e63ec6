// Package config loads recall's configuration: a YAML file when one is
// given, overridden by environment variables. Command-line flags are
// applied last, by the CLI layer.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by Config.Backend.
const (
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config selects and configures the store backend.
type Config struct {
	// Backend is "redis" or "sqlite".
	Backend string `yaml:"backend" env:"RECALL_BACKEND"`

	Redis  RedisConfig  `yaml:"redis"`
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"RECALL_REDIS_ADDR"`
	Password string `yaml:"password" env:"RECALL_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"RECALL_REDIS_DB"`
}

// SQLiteConfig holds SQLite backend settings.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"RECALL_SQLITE_PATH"`
}

// Default returns the configuration used when no file, environment, or
// flags say otherwise: Redis on localhost.
func Default() Config {
	return Config{
		Backend: BackendRedis,
		Redis:   RedisConfig{Addr: "localhost:6379"},
		SQLite:  SQLiteConfig{Path: "recall.db"},
	}
}

// Load builds a Config starting from defaults, applying the YAML file at
// path (when non-empty), then environment variables on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown backend names.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendRedis, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("invalid backend %q: must be %q or %q", c.Backend, BackendRedis, BackendSQLite)
	}
}
