// Package mermaid renders a structural tree as GitHub-flavoured markdown:
// a count summary, a fenced mermaid flowchart, and a components list.
//
// Nodes are declared in pre-order as N0 (the module), N1, N2, ... and every
// parent/child pair becomes exactly one "-->" edge. Labels are quoted and
// markup characters are replaced by mermaid entity codes, so names such as
// "if a < b:" cannot break the graph block.
package mermaid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

var icons = map[structure.Kind]string{
	structure.KindModule:   "📄",
	structure.KindClass:    "📦",
	structure.KindFunction: "⚙️",
	structure.KindMethod:   "🔧",
	structure.KindIf:       "🔀",
	structure.KindFor:      "🔁",
	structure.KindWhile:    "🔄",
}

// shapes holds the opening and closing delimiters of each node shape.
var shapes = map[structure.Kind][2]string{
	structure.KindModule:   {`(["`, `"])`},
	structure.KindClass:    {`[/"`, `"/]`},
	structure.KindFunction: {`["`, `"]`},
	structure.KindMethod:   {`("`, `")`},
	structure.KindIf:       {`{"`, `"}`},
	structure.KindFor:      {`{"`, `"}`},
	structure.KindWhile:    {`{"`, `"}`},
}

var classDefs = []struct {
	kind  structure.Kind
	name  string
	style string
}{
	{structure.KindModule, "moduleNode", "fill:#eef4ff,stroke:#4d6480,stroke-width:2px"},
	{structure.KindClass, "classNode", "fill:#fff6e5,stroke:#b8860b,stroke-width:2px"},
	{structure.KindFunction, "functionNode", "fill:#f7fbff,stroke:#4d6480"},
	{structure.KindMethod, "methodNode", "fill:#f3fff3,stroke:#3c8c3c"},
}

// summary rows; optional rows are omitted when their count is zero.
var summary = []struct {
	kind     structure.Kind
	title    string
	optional bool
}{
	{structure.KindClass, "Classes", false},
	{structure.KindFunction, "Functions", false},
	{structure.KindMethod, "Methods", false},
	{structure.KindIf, "Conditionals", true},
	{structure.KindFor, "For loops", true},
	{structure.KindWhile, "While loops", true},
}

// Renderer draws the graph-markup document.
type Renderer struct{}

// New returns a mermaid renderer.
func New() Renderer { return Renderer{} }

// Render implements [render.Renderer].
func (Renderer) Render(root *structure.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 📋 Code Structure: `%s`\n\n", root.Name)

	b.WriteString("### 📊 Summary\n\n")
	counts := root.Counts()
	for _, row := range summary {
		if row.optional && counts[row.kind] == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s **%s:** %d\n", icons[row.kind], row.title, counts[row.kind])
	}

	b.WriteString("\n### 🗺️ Diagram\n\n")
	b.WriteString(Graph(root))

	b.WriteString("\n### 📚 Components\n\n")
	writeComponents(&b, root)
	return b.String()
}

// Graph returns only the fenced mermaid block for root.
func Graph(root *structure.Node) string {
	ids := make(map[*structure.Node]string)
	var order []*structure.Node
	root.Walk(func(n *structure.Node) bool {
		ids[n] = fmt.Sprintf("N%d", len(order))
		order = append(order, n)
		return true
	})

	var b strings.Builder
	b.WriteString("```mermaid\nflowchart TD\n")
	for _, n := range order {
		shape := shapes[n.Kind]
		fmt.Fprintf(&b, "    %s%s%s %s%s\n", ids[n], shape[0], icons[n.Kind], escapeLabel(render.Label(n)), shape[1])
	}
	for _, n := range order {
		for _, c := range n.Children {
			fmt.Fprintf(&b, "    %s --> %s\n", ids[n], ids[c])
		}
	}

	for _, def := range classDefs {
		var members []string
		for _, n := range order {
			if n.Kind == def.kind {
				members = append(members, ids[n])
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    classDef %s %s;\n", def.name, def.style)
		fmt.Fprintf(&b, "    class %s %s;\n", strings.Join(members, ","), def.name)
	}
	b.WriteString("```\n")
	return b.String()
}

func writeComponents(b *strings.Builder, root *structure.Node) {
	var classes, functions []*structure.Node
	root.Walk(func(n *structure.Node) bool {
		if n.Kind == structure.KindClass {
			classes = append(classes, n)
		}
		return true
	})
	for _, c := range root.Children {
		if c.Kind == structure.KindFunction {
			functions = append(functions, c)
		}
	}

	if len(classes) == 0 && len(functions) == 0 {
		b.WriteString("_No classes or functions found._\n")
		return
	}
	for _, cls := range classes {
		var methods []*structure.Node
		for _, c := range cls.Children {
			if c.Kind == structure.KindMethod {
				methods = append(methods, c)
			}
		}
		if len(methods) == 0 {
			fmt.Fprintf(b, "- **`%s`**\n", cls.Name)
			continue
		}
		fmt.Fprintf(b, "- **`%s`** - Contains %d method(s)\n", cls.Name, len(methods))
		for _, m := range methods {
			fmt.Fprintf(b, "  - `%s`\n", render.Label(m))
		}
	}
	for _, fn := range functions {
		fmt.Fprintf(b, "- `%s`\n", render.Label(fn))
	}
}

// labelEscaper replaces characters that carry meaning inside a mermaid
// label. Replacement is a single pass, so emitted entity codes are never
// escaped again.
var labelEscaper = strings.NewReplacer(
	"#", "#35;",
	`"`, "#quot;",
	"<", "#lt;",
	">", "#gt;",
	"|", "#124;",
	"`", "#96;",
)

func escapeLabel(s string) string {
	return labelEscaper.Replace(s)
}
