// Package render turns a structural tree into diagram text.
//
// # Overview
//
// Every diagram style implements the single [Renderer] capability: a pure,
// deterministic function from a [structure.Node] tree to text. The styles
// live in subpackages and share the label and width helpers defined here:
//
//   - [line]: the default tree notation with box-drawing connectors
//   - [box]: nested bordered boxes joined by arrows
//   - [flow]: ASCII-art rows of depth, siblings joined by horizontal arrows
//   - [mermaid]: a count summary plus a fenced mermaid flowchart
//   - [nodelink]: Graphviz DOT and SVG export of the same tree
//
// # Style Selection
//
// [Style] is a single enumerated selection. [Select] folds any number of
// requested styles into exactly one, failing with INVALID_STYLE_SELECTION
// when two different styles are asked for:
//
//	style, err := render.Select(render.StyleBox)
//
// Renderers never re-derive structure from source text; the tree is the only
// contract between extraction and rendering.
//
// [line]: github.com/matzehuels/codediagram/pkg/render/line
// [box]: github.com/matzehuels/codediagram/pkg/render/box
// [flow]: github.com/matzehuels/codediagram/pkg/render/flow
// [mermaid]: github.com/matzehuels/codediagram/pkg/render/mermaid
// [nodelink]: github.com/matzehuels/codediagram/pkg/render/nodelink
package render
