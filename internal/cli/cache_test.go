package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheCommandPath(t *testing.T) {
	isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheCommandClear(t *testing.T) {
	isolate(t)

	out, err := execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("clear on missing dir = %q", out)
	}

	if _, err := execute(t, "rank", "bca", "--alphabet", "abc"); err != nil {
		t.Fatalf("rank error: %v", err)
	}
	if _, err := execute(t, "unrank", "4", "--alphabet", "abc"); err != nil {
		t.Fatalf("unrank error: %v", err)
	}

	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out)
	}

	out, err = execute(t, "rank", "bca", "--alphabet", "abc", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"cached": false`) {
		t.Errorf("rank after clear should recompute: %q", out)
	}
}

func TestCacheCommandPathNonFileBackend(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "cache", "path"); err == nil {
		t.Error("cache path without a file backend should fail")
	}
	out, err := execute(t, "--config", path, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Caching is disabled") {
		t.Errorf("cache clear output = %q", out)
	}
}
