// Package flow renders a structural tree as ASCII-art rows of depth.
//
// The root sits on the first row. Every node with children then gets a row of
// its own, emitted breadth-first: the children are laid out left to right,
// joined by "-->", and a "|"/"v" connector drops from the parent's column to
// the row, which starts under the parent.
package flow

import (
	"strings"

	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

const (
	bannerWidth = 60
	arrow       = " --> "
)

// Renderer draws the flow layout.
type Renderer struct{}

// New returns a flow renderer.
func New() Renderer { return Renderer{} }

// placed is a node and the column its box starts at.
type placed struct {
	node *structure.Node
	col  int
}

// Render implements [render.Renderer].
func (Renderer) Render(root *structure.Node) string {
	banner := strings.Repeat("-", bannerWidth)
	lines := []string{banner, "Code Flow:", banner, ""}

	rootRow, _ := row(0, []*structure.Node{root})
	lines = append(lines, rootRow...)

	queue := []placed{{node: root}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p.node.IsLeaf() {
			continue
		}

		drop := strings.Repeat(" ", p.col+2)
		lines = append(lines, drop+"|", drop+"v")

		rowLines, cols := row(p.col, p.node.Children)
		lines = append(lines, rowLines...)
		for i, c := range p.node.Children {
			queue = append(queue, placed{node: c, col: cols[i]})
		}
	}
	return render.Document(root.Name, lines)
}

// row lays nodes out left to right starting at col. It returns the three
// text lines of the row and the start column of every box.
func row(col int, nodes []*structure.Node) ([]string, []int) {
	var top, mid, bottom strings.Builder
	lead := strings.Repeat(" ", col)
	top.WriteString(lead)
	mid.WriteString(lead)
	bottom.WriteString(lead)

	gap := strings.Repeat(" ", len(arrow))
	cols := make([]int, len(nodes))
	x := col
	for i, n := range nodes {
		if i > 0 {
			top.WriteString(gap)
			mid.WriteString(arrow)
			bottom.WriteString(gap)
			x += len(arrow)
		}
		cols[i] = x

		label := render.TaggedLabel(n)
		edge := edgeFor(n, render.Width(label)+2)
		top.WriteString(edge)
		mid.WriteString("| " + label + " |")
		bottom.WriteString(edge)
		x += render.Width(edge)
	}
	return []string{top.String(), mid.String(), bottom.String()}, cols
}

// edgeFor returns the top and bottom border of a box: "+---+" for classes,
// "[---]" for everything else.
func edgeFor(n *structure.Node, width int) string {
	dashes := strings.Repeat("-", width)
	if n.Kind == structure.KindClass {
		return "+" + dashes + "+"
	}
	return "[" + dashes + "]"
}
