// Package config loads server configuration from a YAML file, CONDUIT_*
// environment variables, and built-in defaults, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Log    LogConfig    `koanf:"log"`
	Store  StoreConfig  `koanf:"store"`
}

type ServerConfig struct {
	Addr  string `koanf:"addr"`
	Stage string `koanf:"stage"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// StoreConfig selects the session store backend.
// Backend is one of "none", "memory", "redis", "sqlite".
type StoreConfig struct {
	Backend string       `koanf:"backend"`
	Redis   RedisConfig  `koanf:"redis"`
	SQLite  SQLiteConfig `koanf:"sqlite"`
}

type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// Load reads configuration. path may be empty or point to a YAML file; a
// missing file at the default path is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Defaults first, lowest precedence.
	defaults := map[string]any{
		"server.addr":       ":3000",
		"server.stage":      "dev",
		"log.level":         "info",
		"store.backend":     "memory",
		"store.redis.addr":  "localhost:6379",
		"store.sqlite.path": "conduit.db",
	}
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	// CONDUIT_SERVER_ADDR -> server.addr
	if err := k.Load(env.Provider("CONDUIT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CONDUIT_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
