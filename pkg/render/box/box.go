// Package box renders a structural tree as nested bordered boxes.
//
// The module is a rounded header box followed by its top-level members,
// joined by downward arrows. Classes are double-line boxes holding their
// members as inner boxes; other nodes with children are single-line
// containers; leaves are single-line boxes.
package box

import (
	"strings"

	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

const (
	padding = 1    // spaces between a border and its label
	indent  = "  " // inset of inner boxes inside a container
	arrow   = indent + "↓"
)

type border struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	teeLeft, teeRight                          string
}

var (
	rounded = border{"╭", "╮", "╰", "╯", "─", "│", "├", "┤"}
	single  = border{"┌", "┐", "└", "┘", "─", "│", "├", "┤"}
	double  = border{"╔", "╗", "╚", "╝", "═", "║", "╠", "╣"}
)

// Renderer draws boxes.
type Renderer struct{}

// New returns a box renderer.
func New() Renderer { return Renderer{} }

// Render implements [render.Renderer].
func (Renderer) Render(root *structure.Node) string {
	lines := frame(rounded, render.TaggedLabel(root), nil)
	for _, c := range root.Children {
		lines = append(lines, arrow)
		lines = append(lines, block(c)...)
	}
	return render.Document(root.Name, lines)
}

// block draws n and its descendants.
func block(n *structure.Node) []string {
	b := single
	if n.Kind == structure.KindClass {
		b = double
	}
	var inner []string
	for i, c := range n.Children {
		if i > 0 {
			inner = append(inner, arrow)
		}
		inner = append(inner, block(c)...)
	}
	return frame(b, render.TaggedLabel(n), inner)
}

// frame draws a box around label and, below a divider, the inner lines.
// The box is as wide as the widest of the label and the inset inner lines.
func frame(b border, label string, inner []string) []string {
	width := render.Width(label) + 2*padding
	for _, l := range inner {
		if w := render.Width(l) + 2*len(indent); w > width {
			width = w
		}
	}

	rule := strings.Repeat(b.horizontal, width)
	space := strings.Repeat(" ", padding)
	lines := []string{
		b.topLeft + rule + b.topRight,
		b.vertical + space + render.Pad(label, width-2*padding) + space + b.vertical,
	}
	if len(inner) > 0 {
		lines = append(lines, b.teeLeft+rule+b.teeRight)
		for _, l := range inner {
			lines = append(lines, b.vertical+render.Pad(indent+l, width)+b.vertical)
		}
	}
	return append(lines, b.bottomLeft+rule+b.bottomRight)
}
