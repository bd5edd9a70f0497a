package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// isolate points the config and cache directories at temporary ones for the
// rest of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

// execute runs the root command with args and returns what was printed to
// stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootVersion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.Contains(out, "permrank version") {
		t.Errorf("--version output = %q", out)
	}
}

func TestRootConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[defaults]\nscheme = \"myrvold\"\nalphabet = \"abcd\"\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "count", "--json")
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if !strings.Contains(out, `"scheme": "myrvold"`) || !strings.Contains(out, `"count": 24`) {
		t.Errorf("count output = %q", out)
	}
}

func TestRootInvalidConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "schemes"); err == nil {
		t.Error("invalid config should fail")
	}
}
