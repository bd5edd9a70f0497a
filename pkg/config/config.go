// Package config loads the permrank TOML configuration file.
//
// Every field has a default, so a missing file is not an error. A file only
// needs the keys it changes:
//
//	[log]
//	level = "debug"
//
//	[defaults]
//	scheme = "myrvold"
//	alphabet = "abcd"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the configuration file.
type Config struct {
	Log      Log      `toml:"log"`
	Defaults Defaults `toml:"defaults"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Log configures the CLI and server logger.
type Log struct {
	Level string `toml:"level"`
}

// Defaults supplies request options that flags leave unset.
type Defaults struct {
	Scheme   string `toml:"scheme"`
	Alphabet string `toml:"alphabet"`
	K        int    `toml:"k"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty means the user cache dir.
	Dir string `toml:"dir"`

	// TTL overrides the per-entry lifetimes when positive.
	TTL time.Duration `toml:"ttl"`

	// Scope prefixes every cache key, separating deployments or datasets
	// that share a backend.
	Scope string `toml:"scope"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// Server configures `permrank serve`.
type Server struct {
	Addr string `toml:"addr"`

	// Timeouts are TOML strings such as "30s".
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log: Log{Level: "info"},
		Defaults: Defaults{
			Scheme:   scheme.Default,
			Alphabet: "abc",
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/permrank/config.toml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "permrank", "config.toml"), nil
}

// Load reads path over the defaults and validates the result. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return perrors.New(perrors.ErrCodeInvalidConfig, "log.level: %v", err)
	}
	if c.Defaults.Scheme != "" {
		if _, err := scheme.Get(c.Defaults.Scheme); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "defaults.scheme")
		}
	}
	if c.Defaults.Alphabet != "" {
		if _, err := scheme.ParseAlphabet(c.Defaults.Alphabet); err != nil {
			return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "defaults.alphabet")
		}
	}
	if c.Defaults.K < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "defaults.k must be non-negative, got %d", c.Defaults.K)
	}

	backends := []string{BackendFile, BackendRedis, BackendNone}
	if !slices.Contains(backends, c.Cache.Backend) {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
	}

	if c.Server.Addr == "" {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "server timeouts must be positive")
	}
	return nil
}

// CacheTTL returns the configured TTL, or fallback when none is set.
func (c *Config) CacheTTL(fallback time.Duration) time.Duration {
	if c.Cache.TTL > 0 {
		return c.Cache.TTL
	}
	return fallback
}
