package structure

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
)

// dump renders a tree as indented "kind name" lines for comparison.
func dump(root *Node) string {
	var b strings.Builder
	root.Walk(func(n *Node) bool {
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", n.Depth), n.Kind, n.Name)
		return true
	})
	return b.String()
}

const sampleSource = `"""Module docstring.

class NotAClass:
    def not_a_method(self):
"""

import os


class Parser:
    """Parses things."""

    def __init__(self, path):
        self.path = path

    def parse(self):
        for line in open(self.path):
            if line.startswith("#"):
                continue
        return None


def main(argv):
    while argv:
        argv = argv[1:]
    if __debug__:
        print("debug")
    else:
        print("release")


async def fetch(url):
    async for chunk in stream(url):
        pass
`

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		want string
	}{
		{
			name: "empty file",
			src:  "",
			want: "module <module>\n",
		},
		{
			name: "only comments and blank lines",
			src:  "# header\n\n   \n# class Commented:\n",
			want: "module <module>\n",
		},
		{
			name: "module name",
			src:  "x = 1\n",
			opts: Options{ModuleName: "app.py"},
			want: "module app.py\n",
		},
		{
			name: "class without methods",
			src:  "class Empty:\n    pass\n",
			want: "module <module>\n  class Empty\n",
		},
		{
			name: "class with methods and a function",
			src: "class A:\n    def m(self):\n        pass\n\n    def n(self):\n        pass\n\n" +
				"def f():\n    pass\n",
			want: "module <module>\n  class A\n    method m\n    method n\n  function f\n",
		},
		{
			name: "nested functions",
			src:  "def outer():\n    def inner():\n        def innermost():\n            pass\n    return inner\n",
			want: "module <module>\n  function outer\n    function inner\n      function innermost\n",
		},
		{
			name: "def inside a method is a function",
			src:  "class A:\n    def m(self):\n        def helper():\n            pass\n",
			want: "module <module>\n  class A\n    method m\n      function helper\n",
		},
		{
			name: "nested class",
			src:  "class Outer:\n    class Inner:\n        def m(self):\n            pass\n    def n(self):\n        pass\n",
			want: "module <module>\n  class Outer\n    class Inner\n      method m\n    method n\n",
		},
		{
			name: "siblings at the same indentation are not nested",
			src:  "def a():\n    pass\ndef b():\n    pass\ndef c(): pass\n",
			want: "module <module>\n  function a\n  function b\n  function c\n",
		},
		{
			name: "decorators and async def",
			src:  "@cache\ndef cached():\n    pass\n\nasync def run():\n    pass\n",
			want: "module <module>\n  function cached\n  function run\n",
		},
		{
			name: "docstring content is ignored",
			src:  "def f():\n    \"\"\"\n    class Fake:\n        def nope(): pass\n    \"\"\"\n    return 1\n",
			want: "module <module>\n  function f\n",
		},
		{
			name: "multi-line header",
			src:  "def long(\n    a,\n  b,\n):\n    pass\nclass B(\n    Base):\n    pass\n",
			want: "module <module>\n  function long\n  class B\n",
		},
		{
			name: "backslash continuation",
			src:  "def f():\n    x = 1 + \\\n  2\n    def g():\n        pass\n",
			want: "module <module>\n  function f\n    function g\n",
		},
		{
			name: "control flow omitted by default",
			src:  "def f(x):\n    if x:\n        def g():\n            pass\n    for i in x:\n        pass\n",
			want: "module <module>\n  function f\n    function g\n",
		},
		{
			name: "control flow included",
			src: "def check(x):\n    if x > 0:\n        return 1\n    elif x < 0:\n        return -1\n    else:\n        return 0\n" +
				"    for i in range(3):\n        while i:\n            i -= 1\n",
			opts: Options{IncludeControlFlow: true},
			want: "module <module>\n  function check\n    if if x > 0:\n    if elif x < 0:\n    if else:\n" +
				"    for for i in range(3):\n      while while i:\n",
		},
		{
			name: "def under control flow",
			src:  "class A:\n    if FAST:\n        def run(self):\n            pass\n",
			opts: Options{IncludeControlFlow: true},
			want: "module <module>\n  class A\n    if if FAST:\n      function run\n",
		},
		{
			name: "def under an omitted block stays a method",
			src:  "class A:\n    if FAST:\n        def run(self):\n            pass\n",
			want: "module <module>\n  class A\n    method run\n",
		},
		{
			name: "conditional expression is not a header",
			src:  "def f(x):\n    y = 1 if x else 2\n    return y\n",
			opts: Options{IncludeControlFlow: true},
			want: "module <module>\n  function f\n",
		},
		{
			name: "long condition is truncated",
			src:  "if aaaaaaaaaa and bbbbbbbbbb and cccccccccc:\n    pass\n",
			opts: Options{IncludeControlFlow: true, LabelWidth: 20},
			want: "module <module>\n  if if aaaaaaaaaa and bb...:\n",
		},
		{
			name: "tab indentation used consistently",
			src:  "class A:\n\tdef m(self):\n\t\tpass\n\tdef n(self):\n\t\tpass\n",
			want: "module <module>\n  class A\n    method m\n    method n\n",
		},
		{
			name: "windows line endings",
			src:  "class A:\r\n    def m(self):\r\n        pass\r\n",
			want: "module <module>\n  class A\n    method m\n",
		},
		{
			name: "byte order mark",
			src:  "\ufeffclass A:\n    def m(self):\n        pass\n",
			opts: Options{IncludeControlFlow: true},
			want: "module <module>\n  class A\n    method m\n",
		},
		{
			name: "sample source",
			src:  sampleSource,
			opts: Options{ModuleName: "sample.py", IncludeControlFlow: true},
			want: "module sample.py\n" +
				"  class Parser\n" +
				"    method __init__\n" +
				"    method parse\n" +
				"      for for line in open(self.path):\n" +
				"        if if line.startswith(\"#\"):\n" +
				"  function main\n" +
				"    while while argv:\n" +
				"    if if __debug__:\n" +
				"    if else:\n" +
				"  function fetch\n" +
				"    for async for chunk in stream(url):\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Extract([]byte(tt.src), tt.opts)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got := dump(root); got != tt.want {
				t.Errorf("tree mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantIn   string
	}{
		{
			name:     "tab and space mismatch",
			src:      "def f():\n\tif x:\n        pass\n",
			wantLine: 3,
			wantIn:   "does not match any outer indentation level",
		},
		{
			name:     "dedent to unknown level",
			src:      "class A:\n    def m(self):\n        pass\n  def n(self):\n    pass\n",
			wantLine: 4,
			wantIn:   "does not match any outer indentation level",
		},
		{
			name:     "unterminated triple-quoted string",
			src:      "def f():\n    \"\"\"never closed\n    pass\n",
			wantLine: 2,
			wantIn:   "unterminated triple-quoted string",
		},
		{
			name:     "unterminated string",
			src:      "x = 'oops\ndef f():\n    pass\n",
			wantLine: 1,
			wantIn:   "unterminated string literal",
		},
		{
			name:     "unclosed bracket",
			src:      "def f(a,\n       b:\n    pass\n",
			wantLine: 1,
			wantIn:   "'(' was never closed",
		},
		{
			name:     "unmatched bracket",
			src:      "x = [1, 2)\n",
			wantLine: 1,
			wantIn:   "unmatched ')'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Extract([]byte(tt.src), Options{ModuleName: "bad.py"})
			if err == nil {
				t.Fatalf("expected error, got tree:\n%s", dump(root))
			}
			if root != nil {
				t.Error("no tree should be returned on failure")
			}
			if !apperrors.Is(err, apperrors.ErrCodeStructuralParse) {
				t.Errorf("error code = %s, want %s", apperrors.GetCode(err), apperrors.ErrCodeStructuralParse)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v does not wrap *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", perr.Line, tt.wantLine)
			}
			if !strings.Contains(perr.Reason, tt.wantIn) {
				t.Errorf("reason %q does not contain %q", perr.Reason, tt.wantIn)
			}
			if !strings.Contains(err.Error(), "bad.py") {
				t.Errorf("error %q should name the module", err.Error())
			}
		})
	}
}

func TestExtractInvariants(t *testing.T) {
	for _, cf := range []bool{false, true} {
		root, err := Extract([]byte(sampleSource), Options{IncludeControlFlow: cf})
		if err != nil {
			t.Fatalf("Extract(cf=%v): %v", cf, err)
		}

		if root.Kind != KindModule || root.Depth != 0 {
			t.Fatalf("root = %s depth %d, want module depth 0", root.Kind, root.Depth)
		}

		root.Walk(func(n *Node) bool {
			if n != root && n.Kind == KindModule {
				t.Errorf("module node %q below the root", n.Name)
			}
			if !cf && n.Kind.IsControlFlow() {
				t.Errorf("control-flow node %q present with inclusion off", n.Name)
			}
			prev := n.Line
			for _, c := range n.Children {
				if c.Depth != n.Depth+1 {
					t.Errorf("%q depth %d under %q depth %d", c.Name, c.Depth, n.Name, n.Depth)
				}
				if c.Kind == KindMethod && n.Kind != KindClass {
					t.Errorf("method %q under %s", c.Name, n.Kind)
				}
				if c.Line <= prev {
					t.Errorf("%q at line %d not after line %d", c.Name, c.Line, prev)
				}
				prev = c.Line
			}
			return true
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	for _, cf := range []bool{false, true} {
		opts := Options{ModuleName: "sample.py", IncludeControlFlow: cf}
		a, err := Extract([]byte(sampleSource), opts)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Extract([]byte(sampleSource), opts)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("repeated extraction differs (cf=%v)", cf)
		}
	}
}

var headerRe = regexp.MustCompile(`(?m)^[ \t]*(?:async[ \t]+)?(?:class|def)[ \t]`)

func TestExtractHeaderCount(t *testing.T) {
	// The sample's module docstring contains two header-looking lines.
	want := len(headerRe.FindAllString(sampleSource, -1)) - 2

	for _, cf := range []bool{false, true} {
		root, err := Extract([]byte(sampleSource), Options{IncludeControlFlow: cf})
		if err != nil {
			t.Fatal(err)
		}
		got := root.Count(KindClass) + root.Count(KindFunction) + root.Count(KindMethod)
		if got != want {
			t.Errorf("cf=%v: %d class/def nodes, want %d", cf, got, want)
		}
	}

	bom := "\ufeffclass A:\n    def m(self):\n        pass\n\ndef f():\n    pass\n"
	want = len(headerRe.FindAllString(strings.TrimPrefix(bom, "\ufeff"), -1))
	for _, cf := range []bool{false, true} {
		root, err := Extract([]byte(bom), Options{IncludeControlFlow: cf})
		if err != nil {
			t.Fatal(err)
		}
		got := root.Count(KindClass) + root.Count(KindFunction) + root.Count(KindMethod)
		if got != want {
			t.Errorf("bom cf=%v: %d class/def nodes, want %d", cf, got, want)
		}
	}
}

func TestExtractLineNumbers(t *testing.T) {
	root, err := Extract([]byte(sampleSource), Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"Parser": 10, "__init__": 13, "parse": 16, "main": 23, "fetch": 32}
	root.Walk(func(n *Node) bool {
		if n.Kind == KindModule {
			return true
		}
		if line, ok := want[n.Name]; !ok || n.Line != line {
			t.Errorf("%s %q at line %d, want %d", n.Kind, n.Name, n.Line, line)
		}
		return true
	})
}
