package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/codediagram/pkg/structure"
)

// captureOutput redirects status output to a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestStatusLines(t *testing.T) {
	out := captureOutput(t)

	printSuccess("Generated %s diagram", "box")
	printError("careful")
	printInfo("Found %d structural elements", 3)
	printFile("calc_structure.md")

	got := out.String()
	for _, want := range []string{iconSuccess, "Generated box diagram", "careful", "Found 3 structural elements", "calc_structure.md"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "\n"); n != 4 {
		t.Errorf("got %d lines, want 4", n)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		counts  map[structure.Kind]int
		cached  bool
		want    []string
		notWant []string
	}{
		{
			name:    "fresh",
			counts:  map[structure.Kind]int{structure.KindClass: 1, structure.KindMethod: 2},
			want:    []string{"1 classes", "2 methods", iconFresh},
			notWant: []string{"functions", "loops"},
		},
		{
			name:   "cached with control flow",
			counts: map[structure.Kind]int{structure.KindFunction: 1, structure.KindFor: 2},
			cached: true,
			want:   []string{"1 functions", "2 for loops", iconCached},
		},
		{
			name:    "empty",
			want:    []string{iconFresh},
			notWant: []string{"classes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.counts, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine missing %q: %q", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("statsLine should not contain %q: %q", w, got)
				}
			}
		})
	}
}
