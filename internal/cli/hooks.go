package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codediagram/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level. It is
// installed by --verbose.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnSelectFailed(_ context.Context, requested []string, err error) {
	h.logger.Debug("style selection failed", "requested", requested, "error", err)
}

func (h *logHooks) OnExtractStart(_ context.Context, module string) {
	h.logger.Debug("extract start", "module", module)
}

func (h *logHooks) OnExtractComplete(_ context.Context, module string, elements int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("extract failed", "module", module, "duration", d, "error", err)
		return
	}
	h.logger.Debug("extract done", "module", module, "elements", elements, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, style string) {
	h.logger.Debug("render start", "style", style)
}

func (h *logHooks) OnRenderComplete(_ context.Context, style string, size int, d time.Duration) {
	h.logger.Debug("render done", "style", style, "bytes", size, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
