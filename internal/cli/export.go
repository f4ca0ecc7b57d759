package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/io"
	"github.com/matzehuels/codediagram/pkg/pipeline"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// exportOpts holds the command-line flags of export.
type exportOpts struct {
	output             string
	format             string
	detailed           bool
	scale              float64
	includeControlFlow bool
	labelWidth         int
}

func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: pipeline.FormatSVG, scale: 2.0}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the structure tree as JSON, DOT or an image",
		Long: `Export writes the structural tree of a Python file in a machine-readable or
graphical form:

  json  the tree with per-kind counts (readable by generate and preview)
  dot   Graphviz source
  svg   node-link diagram rendered with Graphviz
  pdf   as svg, converted with rsvg-convert
  png   as svg, converted with rsvg-convert`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := apperrors.ValidateOutputPath(opts.output); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("include-control-flow") {
				opts.includeControlFlow = cfg.IncludeControlFlow
			}
			if !cmd.Flags().Changed("label-width") {
				opts.labelWidth = cfg.LabelWidth
			}
			return c.runExport(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <name>.<format>)")
	f.StringVarP(&opts.format, "format", "f", opts.format, "output format: json, dot, svg, pdf, png")
	f.BoolVar(&opts.detailed, "detailed", false, "add kind and line number to graph node labels")
	f.Float64Var(&opts.scale, "scale", opts.scale, "png resolution factor")
	f.BoolVar(&opts.includeControlFlow, "include-control-flow", false, "include if/for/while blocks")
	f.IntVar(&opts.labelWidth, "label-width", 0, "maximum condition length in control-flow labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, opts exportOpts) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	data, err := readInput(input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	var root *structure.Node
	if isTreeInput(input) {
		if root, err = io.ReadJSON(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("load tree %s: %w", input, err)
		}
	} else {
		root, err = runner.Extract(ctx, data, pipeline.Options{
			IncludeControlFlow: opts.includeControlFlow,
			ModuleName:         filepath.Base(input),
			LabelWidth:         opts.labelWidth,
		})
		if err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Extracted %d elements", root.Elements()))

	var out []byte
	if opts.format == pipeline.FormatJSON || opts.format == pipeline.FormatDOT {
		out, err = runner.Export(ctx, root, opts.format, pipeline.ExportOptions{Detailed: opts.detailed})
	} else {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
		spinner.Start()
		out, err = runner.Export(ctx, root, opts.format, pipeline.ExportOptions{
			Detailed: opts.detailed,
			Scale:    opts.scale,
		})
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	path := exportPath(input, opts.output, opts.format)
	if filepath.Clean(path) == filepath.Clean(input) {
		return apperrors.New(apperrors.ErrCodeInvalidPath, "refusing to overwrite input %s; pass -o", input)
	}
	if err := io.WriteFileAtomic(path, out, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", path)
	}

	printSuccess("Exported %s", opts.format)
	printFile(path)
	return nil
}
