package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codediagram/pkg/cache"
	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/observability"
	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/render/box"
	"github.com/matzehuels/codediagram/pkg/render/flow"
	"github.com/matzehuels/codediagram/pkg/render/line"
	"github.com/matzehuels/codediagram/pkg/render/mermaid"
	"github.com/matzehuels/codediagram/pkg/structure"
)

const cacheKeyType = "diagram"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RendererFor returns the renderer of a style.
func RendererFor(style render.Style) (render.Renderer, error) {
	switch style {
	case render.StyleLine:
		return line.New(), nil
	case render.StyleBox:
		return box.New(), nil
	case render.StyleASCIIArt:
		return flow.New(), nil
	case render.StyleGraphMarkup:
		return mermaid.New(), nil
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidStyle, "no renderer for style %s", style)
}

// cachedDiagram is what the cache stores per key.
type cachedDiagram struct {
	Output   string                 `json:"output"`
	Elements int                    `json:"elements"`
	Counts   map[structure.Kind]int `json:"counts"`
}

// Execute selects the style, extracts the tree once and renders it.
//
// Style selection happens before anything else: a conflicting selection
// fails without reading the cache or touching the source.
func (r *Runner) Execute(ctx context.Context, source []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		observability.Pipeline().OnSelectFailed(ctx, styleNames(opts.Styles), err)
		return nil, err
	}
	logger := r.logger(opts)
	style := opts.Style()

	key := r.Keyer.DiagramKey(cache.Hash(source), cache.DiagramKeyOpts{
		Style:              style.String(),
		IncludeControlFlow: opts.IncludeControlFlow,
		ModuleName:         opts.ModuleName,
		LabelWidth:         opts.LabelWidth,
	})
	if res, ok := r.fromCache(ctx, key, style, logger); ok {
		return res, nil
	}

	extractStart := time.Now()
	root, err := r.Extract(ctx, source, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tree:  root,
		Style: style,
		Stats: Stats{
			Elements:    root.Elements(),
			Counts:      elementCounts(root),
			ExtractTime: time.Since(extractStart),
		},
	}

	renderStart := time.Now()
	if result.Output, err = r.Render(ctx, root, style); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.toCache(ctx, key, result, logger)
	return result, nil
}

// ExecuteTree renders a tree that was extracted earlier, for example one
// read back from a JSON export. Style selection follows Execute; the
// result is not cached.
func (r *Runner) ExecuteTree(ctx context.Context, root *structure.Node, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		observability.Pipeline().OnSelectFailed(ctx, styleNames(opts.Styles), err)
		return nil, err
	}
	result := &Result{
		Tree:  root,
		Style: opts.Style(),
		Stats: Stats{
			Elements: root.Elements(),
			Counts:   elementCounts(root),
		},
	}
	start := time.Now()
	out, err := r.Render(ctx, root, result.Style)
	if err != nil {
		return nil, err
	}
	result.Output = out
	result.Stats.RenderTime = time.Since(start)
	return result, nil
}

// Extract builds the structural tree for source and reports the stage to
// the pipeline hooks.
func (r *Runner) Extract(ctx context.Context, source []byte, opts Options) (*structure.Node, error) {
	opts.SetExtractDefaults()
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	hooks.OnExtractStart(ctx, opts.ModuleName)
	begin := time.Now()
	root, err := structure.Extract(source, opts.extractOptions())
	elapsed := time.Since(begin)

	elements := 0
	if root != nil {
		elements = root.Elements()
	}
	hooks.OnExtractComplete(ctx, opts.ModuleName, elements, elapsed, err)
	if err != nil {
		return nil, err
	}

	logger.Debug("extracted structure",
		"module", opts.ModuleName,
		"elements", elements,
		"control_flow", opts.IncludeControlFlow,
		"duration", elapsed)
	return root, nil
}

// Render draws root in style.
func (r *Runner) Render(ctx context.Context, root *structure.Node, style render.Style) (string, error) {
	renderer, err := RendererFor(style)
	if err != nil {
		return "", err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, style.String())
	begin := time.Now()
	out := renderer.Render(root)
	hooks.OnRenderComplete(ctx, style.String(), len(out), time.Since(begin))
	return out, nil
}

func (r *Runner) fromCache(ctx context.Context, key string, style render.Style, logger *log.Logger) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}

	var cached cachedDiagram
	if err := json.Unmarshal(data, &cached); err != nil {
		logger.Debug("discarding unreadable cache entry", "error", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	logger.Debug("diagram served from cache", "style", style)
	return &Result{
		Output:   cached.Output,
		Style:    style,
		Stats:    Stats{Elements: cached.Elements, Counts: cached.Counts},
		CacheHit: true,
	}, true
}

func (r *Runner) toCache(ctx context.Context, key string, res *Result, logger *log.Logger) {
	data, err := json.Marshal(cachedDiagram{
		Output:   res.Output,
		Elements: res.Stats.Elements,
		Counts:   res.Stats.Counts,
	})
	if err != nil {
		logger.Warn("cache encode failed", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func elementCounts(root *structure.Node) map[structure.Kind]int {
	counts := root.Counts()
	delete(counts, structure.KindModule)
	return counts
}

func styleNames(styles []render.Style) []string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return names
}
