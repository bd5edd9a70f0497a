package perm

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(Generate(3, 0), []string{"a", "b", "c"})

	// Check basic DOT structure
	if !strings.HasPrefix(dot, "digraph Permutations {") {
		t.Error("ToDOT() should start with 'digraph Permutations {'")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("ToDOT() should end with '}'")
	}

	expected := []string{
		"rankdir=LR",
		"bgcolor=\"transparent\"",
		"fontname=",
		`n0 [label="a b c"`,
		`n1 [label="b a c"`,
		"n0 -> n1",
		"n4 -> n5",
	}
	for _, exp := range expected {
		if !strings.Contains(dot, exp) {
			t.Errorf("ToDOT() missing %q", exp)
		}
	}
}

func TestToDOTSwapLabels(t *testing.T) {
	dot := ToDOT([][]int{{0, 1, 2}, {2, 1, 0}}, nil)

	if !strings.Contains(dot, `label="0↔2"`) {
		t.Errorf("ToDOT() should label a single swap, got:\n%s", dot)
	}
}

func TestToDOTSuffixLabels(t *testing.T) {
	// 1 2 3 0 -> 1 3 0 2 touches positions 1, 2 and 3
	dot := ToDOT([][]int{{1, 2, 3, 0}, {1, 3, 0, 2}}, nil)

	if !strings.Contains(dot, `label="1,2,3"`) {
		t.Errorf("ToDOT() should list every changed position, got:\n%s", dot)
	}
}

func TestToDOTNumericFallback(t *testing.T) {
	dot := ToDOT([][]int{{0, 1, 2}}, []string{"x"})

	if !strings.Contains(dot, `label="x 1 2"`) {
		t.Errorf("ToDOT() should fall back to numeric labels, got:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(nil, nil)

	// Should still produce valid DOT without crashing
	if !strings.Contains(dot, "digraph Permutations {") {
		t.Error("ToDOT() should produce valid DOT for empty input")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce no edges for empty input")
	}
}
