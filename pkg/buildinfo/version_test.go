package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	if got := String(); !strings.Contains(got, "version: v9.9.9") {
		t.Errorf("String() = %q", got)
	}
	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", got)
	}
}
