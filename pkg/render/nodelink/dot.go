package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the kind and source line to every node label.
	// When false, only the tagged label is shown.
	Detailed bool
}

var nodeAttrs = map[structure.Kind]string{
	structure.KindModule:   `shape=folder, fillcolor="#eef4ff"`,
	structure.KindClass:    `shape=box3d, fillcolor="#fff6e5"`,
	structure.KindFunction: `fillcolor=white`,
	structure.KindMethod:   `fillcolor="#f3fff3"`,
	structure.KindIf:       `shape=diamond, style=filled, fillcolor=lightgrey`,
	structure.KindFor:      `shape=hexagon, style=filled, fillcolor=lightgrey`,
	structure.KindWhile:    `shape=hexagon, style=filled, fillcolor=lightgrey`,
}

// ToDOT converts a structural tree to Graphviz DOT format. Node IDs follow
// pre-order (N0 is the module) and every parent/child pair is one edge.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(root *structure.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := make(map[*structure.Node]string)
	var order []*structure.Node
	root.Walk(func(n *structure.Node) bool {
		ids[n] = "N" + strconv.Itoa(len(order))
		order = append(order, n)
		return true
	})

	for _, n := range order {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)), nodeAttrs[n.Kind]}
		fmt.Fprintf(&buf, "  %s [%s];\n", ids[n], strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range order {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %s -> %s;\n", ids[n], ids[c])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *structure.Node, detailed bool) string {
	label := render.TaggedLabel(n)
	if !detailed || n.Kind == structure.KindModule {
		return label
	}
	return fmt.Sprintf("%s\n%s, line %d", label, n.Kind, n.Line)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales from a
// zero origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
