// Package pipeline provides the extract → render pipeline shared by every
// codediagram command.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Extract: build the structural tree from source text ([structure.Extract])
//  2. Render: draw the tree in the selected style ([render.Renderer])
//
// The style is selected once, before extraction, so a conflicting selection
// never costs a parse. Rendered output is cached by source hash and options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{
//	    Styles:     []render.Style{render.StyleBox},
//	    ModuleName: "app.py",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(result.Output)
//
// Run individual stages:
//
//	root, err := runner.Extract(ctx, src, opts)
//	text, err := runner.Render(ctx, root, render.StyleLine)
//	svg, err := runner.Export(ctx, root, pipeline.FormatSVG)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// Format constants for export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Styles holds every style the caller asked for. Zero entries select the
	// line style; two different entries are an INVALID_STYLE_SELECTION.
	Styles []render.Style `json:"-"`

	// Extract options
	IncludeControlFlow bool   `json:"include_control_flow,omitempty"`
	ModuleName         string `json:"module_name,omitempty"`
	LabelWidth         int    `json:"label_width,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// style is the selected style, set by ValidateAndSetDefaults.
	style     render.Style
	validated bool
}

// Style returns the selected style. It is only meaningful after
// ValidateAndSetDefaults succeeded.
func (o *Options) Style() render.Style {
	return o.style
}

// ValidateAndSetDefaults selects the style and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	style, err := render.Select(o.Styles...)
	if err != nil {
		return err
	}
	o.style = style
	o.SetExtractDefaults()
	o.validated = true
	return nil
}

// SetExtractDefaults fills in the module name and label width.
func (o *Options) SetExtractDefaults() {
	if o.ModuleName == "" {
		o.ModuleName = structure.DefaultModuleName
	}
	if o.LabelWidth <= 0 {
		o.LabelWidth = structure.DefaultLabelWidth
	}
}

func (o Options) extractOptions() structure.Options {
	return structure.Options{
		IncludeControlFlow: o.IncludeControlFlow,
		ModuleName:         o.ModuleName,
		LabelWidth:         o.LabelWidth,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the extracted structure. It is nil when the output came from
	// the cache.
	Tree *structure.Node

	// Output is the rendered diagram.
	Output string

	// Style is the style Output was rendered in.
	Style render.Style

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Elements    int                    // structural elements below the module root
	Counts      map[structure.Kind]int // nodes per kind, root excluded
	ExtractTime time.Duration
	RenderTime  time.Duration
}

// ValidateFormat checks that an export format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot, svg, pdf, png)", format)
	}
	return nil
}
