// Package nodelink renders structural trees as traditional node-link
// diagrams using Graphviz.
//
// # Usage
//
// Convert a tree to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0) // 2x scale
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB). Node shapes
// follow the node kind: a folder for the module, 3D boxes for classes,
// rounded boxes for functions and methods, and diamonds or hexagons for
// control flow. The DOT text can be saved and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
