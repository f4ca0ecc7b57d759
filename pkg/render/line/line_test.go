package line

import (
	"strings"
	"testing"

	"github.com/matzehuels/codediagram/pkg/structure"
)

func extract(t *testing.T, src string, cf bool) *structure.Node {
	t.Helper()
	root, err := structure.Extract([]byte(src), structure.Options{ModuleName: "demo.py", IncludeControlFlow: cf})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return root
}

func TestRender(t *testing.T) {
	src := "class A:\n    def m(self):\n        if x:\n            pass\n    def n(self):\n        pass\n\ndef f():\n    pass\n"
	got := New().Render(extract(t, src, true))
	want := "# Code Structure: demo.py\n\n```\n" +
		"╭─ [MODULE] demo.py\n" +
		"├── [CLASS] A\n" +
		"│   ├── [METHOD] m()\n" +
		"│   │   └── [IF] if x:\n" +
		"│   └── [METHOD] n()\n" +
		"└── [FUNCTION] f()\n" +
		"```\n"
	if got != want {
		t.Errorf("Render mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSingleFunction(t *testing.T) {
	got := New().Render(extract(t, "def foo():\n    return 1\n", false))

	if n := strings.Count(got, "foo"); n != 1 {
		t.Fatalf("foo appears %d times, want 1:\n%s", n, got)
	}
	lines := strings.Split(got, "\n")
	for i, l := range lines {
		if !strings.Contains(l, "foo") {
			continue
		}
		if l != "└── [FUNCTION] foo()" {
			t.Errorf("entry = %q, want a top-level corner entry", l)
		}
		if lines[i-1] != "╭─ [MODULE] demo.py" {
			t.Errorf("entry not directly under the module marker: %q", lines[i-1])
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	got := New().Render(extract(t, "", false))
	want := "# Code Structure: demo.py\n\n```\n╭─ [MODULE] demo.py\n```\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderOrderAndDeterminism(t *testing.T) {
	src := "def c():\n    pass\ndef a():\n    pass\ndef b():\n    pass\n"
	root := extract(t, src, false)
	first := New().Render(root)
	if second := New().Render(root); first != second {
		t.Error("repeated renders differ")
	}
	ia, ib, ic := strings.Index(first, "a()"), strings.Index(first, "b()"), strings.Index(first, "c()")
	if !(ic < ia && ia < ib) {
		t.Errorf("siblings not in source order:\n%s", first)
	}
}
