package perm

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of an enumeration: one node per
// permutation, chained in the order given, with each edge labelled by the
// positions that changed between the two permutations.
//
// For Heap's algorithm every edge names exactly one swap; for lexicographic
// order the edge shows the whole suffix touched by Algorithm L.
//
// The labels parameter maps index i to labels[i] when present, otherwise to
// the numeric index. Pass nil to use numeric labels. Neither perms nor labels
// is modified.
//
// Example:
//
//	perms := perm.Generate(3, 0)
//	dot := perm.ToDOT(perms, []string{"A", "B", "C"})
func ToDOT(perms [][]int, labels []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Permutations {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=10];\n\n")

	for i, p := range perms {
		fmt.Fprintf(&buf, "  n%d [label=%q, xlabel=\"%d\"];\n", i, formatPerm(p, labels), i)
	}
	for i := 1; i < len(perms); i++ {
		fmt.Fprintf(&buf, "  n%d -> n%d [label=%q];\n", i-1, i, changedPositions(perms[i-1], perms[i]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func formatPerm(p []int, labels []string) string {
	parts := make([]string, len(p))
	for i, v := range p {
		if v >= 0 && v < len(labels) {
			parts[i] = labels[v]
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, " ")
}

func changedPositions(a, b []int) string {
	var pos []string
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			pos = append(pos, fmt.Sprintf("%d", i))
		}
	}
	if len(pos) == 2 {
		return pos[0] + "↔" + pos[1]
	}
	return strings.Join(pos, ",")
}

// RenderSVG renders the enumeration as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it. The returned bytes are a complete SVG document.
//
// RenderSVG requires the Graphviz library (github.com/goccy/go-graphviz).
// Errors are returned if Graphviz cannot initialize, the DOT is malformed, or
// rendering fails, wrapped with %w.
func RenderSVG(ctx context.Context, perms [][]int, labels []string) ([]byte, error) {
	dot := ToDOT(perms, labels)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
