package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/codediagram/pkg/io"
	"github.com/matzehuels/codediagram/pkg/render/nodelink"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// ExportOptions configures [Runner.Export].
type ExportOptions struct {
	// Detailed adds kind and line to node labels in graph formats.
	Detailed bool
	// Scale is the PNG resolution factor. Zero means 2.
	Scale float64
}

// Export encodes root in one of the export formats: the JSON tree document,
// Graphviz DOT, or an image rendered from the DOT graph.
func (r *Runner) Export(ctx context.Context, root *structure.Node, format string, opts ExportOptions) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	if format == FormatJSON {
		var buf bytes.Buffer
		if err := io.WriteJSON(root, &buf); err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		return buf.Bytes(), nil
	}

	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed})
	var data []byte
	var err error
	switch format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale <= 0 {
			scale = 2.0
		}
		data, err = nodelink.RenderPNG(ctx, dot, scale)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}

	r.Logger.Debug("exported structure", "format", format, "bytes", len(data))
	return data, nil
}
