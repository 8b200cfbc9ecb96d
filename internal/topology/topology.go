// Package topology extracts diagram edges from a lab's raw connection
// entries and renders them as a Graphviz DOT document.
package topology

import (
	"strings"
)

// Edge is one directed connection between two node labels. Labels are
// kept verbatim, interface annotations included ("Router1 (G0/0)"); the
// diagram renderer treats the whole string as the node identity.
type Edge struct {
	Source string
	Target string
}

// Extract parses ordered "A -> B" connection entries into directed
// edges. Each entry is split on the first "->"; entries that do not
// yield two non-empty trimmed halves are dropped without error. The
// returned count reports how many entries were dropped, as a diagnostic
// only — malformed entries never fail the lab.
func Extract(connections []string) ([]Edge, int) {
	edges := make([]Edge, 0, len(connections))
	dropped := 0

	for _, conn := range connections {
		src, dst, ok := strings.Cut(conn, "->")
		if !ok {
			dropped++
			continue
		}

		src = strings.TrimSpace(src)
		dst = strings.TrimSpace(dst)
		if src == "" || dst == "" {
			dropped++
			continue
		}

		edges = append(edges, Edge{Source: src, Target: dst})
	}

	return edges, dropped
}

// DOT renders edges as a left-to-right directed graph for the
// browser-side Graphviz renderer.
func DOT(edges []Edge) string {
	var sb strings.Builder
	sb.WriteString("digraph topology {\n")
	sb.WriteString("    rankdir=LR;\n")
	sb.WriteString("    node [shape=box, style=rounded];\n")

	for _, e := range edges {
		sb.WriteString("    ")
		sb.WriteString(quote(e.Source))
		sb.WriteString(" -> ")
		sb.WriteString(quote(e.Target))
		sb.WriteString(";\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

// quote wraps a node label as a DOT double-quoted ID.
func quote(label string) string {
	escaped := strings.ReplaceAll(label, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
