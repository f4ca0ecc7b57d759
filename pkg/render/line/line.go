// Package line renders a structural tree in the default line-tree notation.
//
//	╭─ [MODULE] app.py
//	├── [CLASS] Server
//	│   ├── [METHOD] start()
//	│   └── [METHOD] stop()
//	└── [FUNCTION] main()
package line

import (
	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

const (
	rootMarker = "╭─ "
	branch     = "├── "
	corner     = "└── "
	through    = "│   "
	blank      = "    "
)

// Renderer draws one line per node in pre-order.
type Renderer struct{}

// New returns a line renderer.
func New() Renderer { return Renderer{} }

// Render implements [render.Renderer].
func (Renderer) Render(root *structure.Node) string {
	lines := []string{rootMarker + render.TaggedLabel(root)}
	lines = appendChildren(lines, root, "")
	return render.Document(root.Name, lines)
}

func appendChildren(lines []string, n *structure.Node, prefix string) []string {
	for i, c := range n.Children {
		connector, next := branch, through
		if i == len(n.Children)-1 {
			connector, next = corner, blank
		}
		lines = append(lines, prefix+connector+render.TaggedLabel(c))
		lines = appendChildren(lines, c, prefix+next)
	}
	return lines
}
