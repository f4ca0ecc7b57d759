package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codediagram/internal/config"
	"github.com/matzehuels/codediagram/pkg/buildinfo"
	"github.com/matzehuels/codediagram/pkg/cache"
	"github.com/matzehuels/codediagram/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "codediagram"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads --config, or .codediagram.toml from the working
// directory when present.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Discover(c.configPath, "")
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build so an upgrade never serves diagrams from an older renderer.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return pipeline.NewRunner(c.newCache(noCache), keyer, c.Logger)
}

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return fc
}
