package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/codediagram/internal/config"
	"github.com/matzehuels/codediagram/pkg/cache"
	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/io"
	"github.com/matzehuels/codediagram/pkg/pipeline"
	"github.com/matzehuels/codediagram/pkg/render"
)

// generateOpts holds the command-line flags of generate.
type generateOpts struct {
	output             string
	line               bool // -l/--line
	box                bool // -b/--box
	asciiArt           bool // -a/--ascii-art
	github             bool // -g/--github
	style              string
	includeControlFlow bool
	labelWidth         int
	noCache            bool
	watch              bool
}

// generateJob is a fully resolved generate invocation.
type generateJob struct {
	input   string
	output  string
	opts    pipeline.Options
	noCache bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:     "generate <file>",
		Aliases: []string{"gen"},
		Short:   "Write a Markdown structure diagram for a Python file",
		Long: `Generate extracts the classes, functions and methods of a Python file and
writes them as a Markdown diagram to <name>_structure.md next to the input.

At most one style may be chosen:
  -l, --line       line tree (default)
  -b, --box        nested boxes
  -a, --ascii-art  ASCII flow chart
  -g, --github     GitHub Mermaid flowchart

A .json file written by "codediagram export --format json" is accepted as
input and rendered without parsing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			job, err := opts.resolve(cmd.Flags().Changed, cfg, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if !apperrors.IsSourceFile(job.input) && !isTreeInput(job.input) {
				logger.Warnf("%s does not end in %s; parsing it as Python anyway", job.input, apperrors.SourceExtension)
			}

			runner := c.newRunner(job.noCache)
			defer runner.Cache.Close()

			if !opts.watch {
				return runGenerate(ctx, runner, job)
			}
			if err := runGenerate(ctx, runner, job); err != nil {
				printError("%s", apperrors.UserMessage(err))
			}
			return watchFile(ctx, job.input, watchDebounce, func() error {
				return runGenerate(ctx, runner, job)
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default <name>"+config.DefaultOutputSuffix+")")
	f.BoolVarP(&opts.line, "line", "l", false, "line tree style")
	f.BoolVarP(&opts.box, "box", "b", false, "nested box style")
	f.BoolVarP(&opts.asciiArt, "ascii-art", "a", false, "ASCII flow chart style")
	f.BoolVarP(&opts.github, "github", "g", false, "GitHub Mermaid flowchart style")
	f.StringVar(&opts.style, "style", "", "style by name: "+strings.Join(render.StyleNames(), ", "))
	f.BoolVar(&opts.includeControlFlow, "include-control-flow", false, "include if/for/while blocks")
	f.IntVar(&opts.labelWidth, "label-width", 0, "maximum condition length in control-flow labels")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the diagram cache")
	f.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever the input changes")

	return cmd
}

// styles returns the styles requested by flags, in flag order. The config
// style is used only when no flag asks for one.
func (o *generateOpts) styles(cfg *config.Config) ([]render.Style, error) {
	var styles []render.Style
	for _, f := range []struct {
		set   bool
		style render.Style
	}{
		{o.line, render.StyleLine},
		{o.box, render.StyleBox},
		{o.asciiArt, render.StyleASCIIArt},
		{o.github, render.StyleGraphMarkup},
	} {
		if f.set {
			styles = append(styles, f.style)
		}
	}
	if o.style != "" {
		s, err := render.ParseStyle(o.style)
		if err != nil {
			return nil, err
		}
		styles = append(styles, s)
	}
	if len(styles) == 0 {
		styles = append(styles, cfg.ParsedStyle())
	}
	return styles, nil
}

// resolve merges flags over cfg and selects the style. A conflicting
// style selection fails here, before the input is read.
func (o *generateOpts) resolve(changed func(flag string) bool, cfg *config.Config, input string) (generateJob, error) {
	if err := apperrors.ValidateInputPath(input); err != nil {
		return generateJob{}, err
	}
	if err := apperrors.ValidateOutputPath(o.output); err != nil {
		return generateJob{}, err
	}

	styles, err := o.styles(cfg)
	if err != nil {
		return generateJob{}, err
	}

	job := generateJob{
		input:   input,
		output:  outputPath(input, o.output, cfg.OutputSuffix),
		noCache: o.noCache || !cfg.CacheEnabled(),
		opts: pipeline.Options{
			Styles:             styles,
			IncludeControlFlow: cfg.IncludeControlFlow,
			ModuleName:         filepath.Base(input),
			LabelWidth:         cfg.LabelWidth,
		},
	}
	if filepath.Clean(job.output) == filepath.Clean(input) {
		return generateJob{}, apperrors.New(apperrors.ErrCodeInvalidPath, "refusing to overwrite input %s; pass a different -o", input)
	}
	if changed("include-control-flow") {
		job.opts.IncludeControlFlow = o.includeControlFlow
	}
	if changed("label-width") {
		job.opts.LabelWidth = o.labelWidth
	}

	if err := job.opts.ValidateAndSetDefaults(); err != nil {
		return generateJob{}, err
	}
	return job, nil
}

// runGenerate renders job.input and writes the diagram atomically.
func runGenerate(ctx context.Context, runner *pipeline.Runner, job generateJob) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	logger.Infof("Generating %s diagram for %s", job.opts.Style(), job.input)

	data, err := readInput(job.input)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if isTreeInput(job.input) {
		root, err := io.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("load tree %s: %w", job.input, err)
		}
		res, err = runner.ExecuteTree(ctx, root, job.opts)
		if err != nil {
			return err
		}
	} else {
		logger.Debug("read source", "bytes", len(data), "hash", cache.Hash(data)[:12])
		res, err = runner.Execute(ctx, data, job.opts)
		if err != nil {
			return err
		}
	}

	if err := io.WriteFileAtomic(job.output, []byte(res.Output), 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "write %s", job.output)
	}
	prog.done(fmt.Sprintf("Rendered %s", job.output))

	printSuccess("Generated %s diagram", res.Style)
	printFile(job.output)
	printStats(res.Stats.Counts, res.CacheHit)
	printInfo("Found %s structural elements", StyleNumber.Render(fmt.Sprint(res.Stats.Elements)))
	return nil
}
