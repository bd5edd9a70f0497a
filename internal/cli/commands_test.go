package cli

import (
	"strings"
	"testing"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

func TestRankCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "rank", "bca", "--alphabet", "abc", "--json")
	if err != nil {
		t.Fatalf("rank error: %v", err)
	}
	for _, want := range []string{`"rank": 3`, `"word": "bca"`, `"cached": false`} {
		if !strings.Contains(out, want) {
			t.Errorf("rank output missing %s:\n%s", want, out)
		}
	}

	out, err = execute(t, "rank", "bca", "--alphabet", "abc", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"cached": true`) {
		t.Errorf("second rank should hit the cache:\n%s", out)
	}

	out, err = execute(t, "rank", "bca", "--alphabet", "abc", "--json", "--refresh")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"cached": false`) {
		t.Errorf("--refresh should bypass the cache:\n%s", out)
	}

	out, err = execute(t, "rank", "ba", "--scheme", "bijective", "--alphabet", "ab", "-k", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "5") {
		t.Errorf("bijective rank of ba = %q", out)
	}

	_, err = execute(t, "rank", "ab", "--alphabet", "abc", "--no-cache")
	if !perrors.Is(err, perrors.ErrCodeLengthMismatch) {
		t.Errorf("short word error = %v, want LENGTH_MISMATCH", err)
	}
}

func TestUnrankCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "unrank", "4", "--alphabet", "abc", "--json")
	if err != nil {
		t.Fatalf("unrank error: %v", err)
	}
	if !strings.Contains(out, `"word": "cab"`) {
		t.Errorf("unrank 4 output:\n%s", out)
	}

	out, err = execute(t, "unrank", "5", "--alphabet", "red,green,blue", "-k", "2", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "blue,green") {
		t.Errorf("unrank over symbols = %q", out)
	}

	if _, err := execute(t, "unrank", "six", "--alphabet", "abc"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("non-numeric rank error = %v", err)
	}
	if _, err := execute(t, "unrank", "6", "--alphabet", "abc"); !perrors.Is(err, perrors.ErrCodeRangeViolation) {
		t.Errorf("rank 6 error = %v, want RANGE_VIOLATION", err)
	}
}

func TestCountCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "count", "--alphabet", "abcde", "-k", "2", "--json")
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if !strings.Contains(out, `"count": 20`) {
		t.Errorf("count output:\n%s", out)
	}

	out, err = execute(t, "count", "--alphabet", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "0 .. 5") {
		t.Errorf("count should print the rank range:\n%s", out)
	}
}

func TestIntervalCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "interval", "--alphabet", "ab", "-k", "3", "--json")
	if err != nil {
		t.Fatalf("interval error: %v", err)
	}
	for _, want := range []string{`"min": 3`, `"max": 6`, `"max": 14`} {
		if !strings.Contains(out, want) {
			t.Errorf("interval output missing %s:\n%s", want, out)
		}
	}
}

func TestNextCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "next", "aabb", "--alphabet", "ab", "-n", "3")
	if err != nil {
		t.Fatalf("next error: %v", err)
	}
	if out != "abab\nabba\nbaab\n" {
		t.Errorf("next output = %q", out)
	}

	out, err = execute(t, "next", "bca", "--alphabet", "abc", "--prev")
	if err != nil {
		t.Fatal(err)
	}
	if out != "bac\n" {
		t.Errorf("next --prev output = %q", out)
	}

	out, err = execute(t, "next", "cba", "--alphabet", "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "already the last") {
		t.Errorf("next at the end = %q", out)
	}

	if _, err := execute(t, "next", "abc", "--alphabet", "abc", "-n", "0"); err == nil {
		t.Error("zero steps should fail")
	}
}

func TestEnumerateCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "enumerate", "--alphabet", "abc", "--order", "heap")
	if err != nil {
		t.Fatalf("enumerate error: %v", err)
	}
	if out != "abc\nbac\ncab\nacb\nbca\ncba\n" {
		t.Errorf("heap order = %q", out)
	}

	out, err = execute(t, "enumerate", "--alphabet", "abcd", "--order", "lexicographic", "--limit", "2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "abcd\nabdc\n") || !strings.Contains(out, "showing 2 of 24") {
		t.Errorf("truncated enumerate = %q", out)
	}

	if _, err := execute(t, "enumerate", "--alphabet", "abc", "--order", "random"); err == nil {
		t.Error("unknown order should fail")
	}
}

func TestRenderCommandStdout(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	isolate(t)

	out, err := execute(t, "render", "--alphabet", "abc", "--no-cache", "-o", "-")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("render to stdout should write SVG, got %d bytes", len(out))
	}
}

func TestSchemesCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "schemes")
	if err != nil {
		t.Fatalf("schemes error: %v", err)
	}
	for _, name := range []string{"lexicographic", "lehmer", "myrvold", "bijective", "repetition"} {
		if !strings.Contains(out, name) {
			t.Errorf("schemes output missing %s", name)
		}
	}

	out, err = execute(t, "schemes", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"name": "myrvold"`) {
		t.Errorf("schemes --json output:\n%s", out)
	}
}
