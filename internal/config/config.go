// Package config loads the optional .codediagram.toml project file.
//
// Every key is optional; flags given on the command line take precedence
// over values from the file.
//
//	style = "box"
//	include_control_flow = true
//	label_width = 50
//	output_suffix = "_structure.md"
//	cache = true
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// FileName is the config file looked up in the working directory.
const FileName = ".codediagram.toml"

// DefaultOutputSuffix is appended to the input stem when no output path is given.
const DefaultOutputSuffix = "_structure.md"

// Config holds project-level defaults for the CLI.
type Config struct {
	Style              string `toml:"style"`
	IncludeControlFlow bool   `toml:"include_control_flow"`
	LabelWidth         int    `toml:"label_width"`
	OutputSuffix       string `toml:"output_suffix"`
	Cache              *bool  `toml:"cache"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// CacheEnabled reports whether rendered output should be cached.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// ParsedStyle returns the configured style. Only call after Load or Default.
func (c *Config) ParsedStyle() render.Style {
	s, err := render.ParseStyle(c.Style)
	if err != nil {
		return render.StyleLine
	}
	return s
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover loads explicit when set. Otherwise it loads FileName from dir
// if present and falls back to Default.
func Discover(explicit, dir string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Style) == "" {
		cfg.Style = render.StyleLine.String()
	}
	if cfg.LabelWidth == 0 {
		cfg.LabelWidth = structure.DefaultLabelWidth
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = DefaultOutputSuffix
	}
}

func validate(cfg *Config) error {
	if _, err := render.ParseStyle(cfg.Style); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config %s: style", cfg.Path)
	}
	if cfg.LabelWidth < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"config %s: label_width must not be negative, got %d", cfg.Path, cfg.LabelWidth)
	}
	if err := apperrors.ValidateOutputSuffix(cfg.OutputSuffix); err != nil {
		return err
	}
	return nil
}
