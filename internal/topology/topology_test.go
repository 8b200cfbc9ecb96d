package topology

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	edges, dropped := Extract([]string{
		"RouterA (G0/0) -> SwitchA (G0/1)",
		"garbage-no-arrow",
		"SwitchA (F0/2) -> PC1",
	})

	want := []Edge{
		{Source: "RouterA (G0/0)", Target: "SwitchA (G0/1)"},
		{Source: "SwitchA (F0/2)", Target: "PC1"},
	}

	if !reflect.DeepEqual(edges, want) {
		t.Errorf("Extract returned %v, want %v", edges, want)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestExtractMalformed(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"no arrow", "Router1 Switch1"},
		{"empty source", "-> Switch1"},
		{"empty target", "Router1 ->"},
		{"only arrow", "->"},
		{"whitespace halves", "   ->   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, dropped := Extract([]string{tt.entry})
			if len(edges) != 0 {
				t.Errorf("expected no edges, got %v", edges)
			}
			if dropped != 1 {
				t.Errorf("dropped = %d, want 1", dropped)
			}
		})
	}
}

func TestExtractSplitsOnFirstArrow(t *testing.T) {
	edges, dropped := Extract([]string{"A -> B -> C"})
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if len(edges) != 1 || edges[0].Source != "A" || edges[0].Target != "B -> C" {
		t.Errorf("unexpected edges: %v", edges)
	}
}

func TestExtractEmpty(t *testing.T) {
	edges, dropped := Extract(nil)
	if len(edges) != 0 || dropped != 0 {
		t.Errorf("Extract(nil) = %v, %d", edges, dropped)
	}
}

func TestDOT(t *testing.T) {
	edges := []Edge{
		{Source: "Router1 (G0/0)", Target: "Switch1 (G0/1)"},
		{Source: "Switch1 (F0/1)", Target: "PC1"},
	}

	dot := DOT(edges)

	if !strings.HasPrefix(dot, "digraph topology {") {
		t.Errorf("unexpected DOT header: %q", dot)
	}
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("DOT should lay out left to right")
	}
	if !strings.Contains(dot, `"Router1 (G0/0)" -> "Switch1 (G0/1)";`) {
		t.Errorf("missing first edge in DOT:\n%s", dot)
	}
	if !strings.Contains(dot, `"Switch1 (F0/1)" -> "PC1";`) {
		t.Errorf("missing second edge in DOT:\n%s", dot)
	}
}

func TestDOTEscapesQuotes(t *testing.T) {
	dot := DOT([]Edge{{Source: `R"1`, Target: `PC\1`}})
	if !strings.Contains(dot, `"R\"1" -> "PC\\1";`) {
		t.Errorf("labels not escaped:\n%s", dot)
	}
}
