// Package config loads factoryfloor settings from a TOML file.
//
// A missing file is not an error: every field has a default, and flags on
// the command line override whatever the file says.
//
//	[floor]
//	size = 10
//	divider = "\n"
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "file"
//	ttl = "24h"
//
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/factoryfloor/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "factoryfloor"

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "FACTORYFLOOR_CONFIG"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the config file.
type Config struct {
	Floor FloorConfig `toml:"floor"`
	Log   LogConfig   `toml:"log"`
	Cache CacheConfig `toml:"cache"`
}

// FloorConfig holds defaults for runs that don't state them.
type FloorConfig struct {
	Size    int    `toml:"size"`    // used when a script has no size line
	Divider string `toml:"divider"` // between positions in text output
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	Dir     string      `toml:"dir"` // empty means the XDG cache dir
	TTL     Duration    `toml:"ttl"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Duration is a time.Duration written as a string such as "90m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Floor: FloorConfig{Size: 10, Divider: "\n"},
		Log:   LogConfig{Level: "info"},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{24 * time.Hour},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: AppName + ":",
			},
		},
	}
}

// Load reads the TOML file at path on top of the defaults. An empty path
// means [DefaultPath]; a missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ferrors.New(ferrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Floor.Size < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "floor.size must not be negative, got %d", c.Floor.Size)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return ferrors.New(ferrors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
	}
	return nil
}

// DefaultPath returns $FACTORYFLOOR_CONFIG, or config.toml under the XDG
// config directory (~/.config/factoryfloor/).
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the configured cache directory, falling back to the XDG
// cache directory (~/.cache/factoryfloor/).
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
