package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}

	cfg, err = Load("")
	if err != nil || cfg.Server.Addr != ":8080" {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[defaults]
scheme = "myrvold"
alphabet = "abcd"

[cache]
backend = "redis"
ttl = "2h"
redis_addr = "cache:6379"
redis_db = 3

[server]
addr = "127.0.0.1:9000"
read_timeout = "5s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.Defaults.Scheme != "myrvold" || cfg.Defaults.Alphabet != "abcd" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" || cfg.Cache.RedisDB != 3 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if got := cfg.CacheTTL(time.Minute); got != 2*time.Hour {
		t.Errorf("CacheTTL() = %v, want 2h", got)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	// Unset keys keep their defaults.
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("WriteTimeout = %v, want default 60s", cfg.Server.WriteTimeout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `[log`},
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = \"red\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad scheme", "[defaults]\nscheme = \"gray\"\n"},
		{"bad alphabet", "[defaults]\nalphabet = \"aa\"\n"},
		{"negative k", "[defaults]\nk = -2\n"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\nredis_addr = \"\"\n"},
		{"empty server addr", "[server]\naddr = \"\"\n"},
		{"zero timeout", "[server]\nwrite_timeout = \"0s\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCacheTTLFallback(t *testing.T) {
	if got := Default().CacheTTL(time.Hour); got != time.Hour {
		t.Errorf("CacheTTL() = %v, want fallback", got)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no config dir: %v", err)
	}
	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "permrank" {
		t.Errorf("DefaultPath() = %q", path)
	}
}
