// Package config loads viewer settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "POLYVIEW_"

// Config is the complete viewer configuration.
type Config struct {
	Verbose bool         `toml:"verbose"`
	Cache   CacheConfig  `toml:"cache"`
	Search  SearchConfig `toml:"search"`
	UI      UIConfig     `toml:"ui"`
	// Theme maps a highlight class name to "fg:bg". Either color may be
	// empty to keep the base style's.
	Theme map[string]string `toml:"theme"`
}

type CacheConfig struct {
	// Capacity bounds the label cache; 0 selects the viewer default.
	Capacity int `toml:"capacity"`
	// WarmBatch is the number of offsets warmed between input events.
	WarmBatch int `toml:"warm_batch"`
}

type SearchConfig struct {
	CaseSensitive bool `toml:"case_sensitive"`
}

type UIConfig struct {
	ShowReadable    bool `toml:"show_readable"`
	LabelPanelWidth int  `toml:"label_panel_width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{WarmBatch: 64},
		UI: UIConfig{
			ShowReadable:    true,
			LabelPanelWidth: 32,
		},
		Theme: map[string]string{
			"cursor":           "#ffffff:#005fff",
			"highlighted":      ":#5f5f00",
			"searchresult":     "#000000:#ffaf00",
			"manually-focused": ":#870087",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/polyview/config.toml, falling back to
// the platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "polyview", "config.toml"), nil
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads path over the defaults without consulting the environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML data over the defaults. Theme entries not present in
// data keep their default styles.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	theme := cfg.Theme
	cfg.Theme = nil
	if err := toml.Unmarshal(data, &cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			pe.Line, pe.Column = decodeErr.Position()
		}
		return Default(), pe
	}
	for class, style := range cfg.Theme {
		theme[class] = style
	}
	cfg.Theme = theme
	if err := cfg.Validate(); err != nil {
		return Default(), &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// Validate rejects settings no component can honor.
func (c Config) Validate() error {
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative, got %d", c.Cache.Capacity)
	}
	if c.Cache.WarmBatch < 0 {
		return fmt.Errorf("cache.warm_batch must not be negative, got %d", c.Cache.WarmBatch)
	}
	if c.UI.LabelPanelWidth < 0 {
		return fmt.Errorf("ui.label_panel_width must not be negative, got %d", c.UI.LabelPanelWidth)
	}
	for class, style := range c.Theme {
		if strings.Count(style, ":") != 1 {
			return fmt.Errorf("theme.%s must be \"fg:bg\", got %q", class, style)
		}
	}
	return nil
}

// ApplyEnv overrides cfg from POLYVIEW_ variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		EnvPrefix + "CACHE_CAPACITY":    &cfg.Cache.Capacity,
		EnvPrefix + "WARM_BATCH":        &cfg.Cache.WarmBatch,
		EnvPrefix + "LABEL_PANEL_WIDTH": &cfg.UI.LabelPanelWidth,
	}
	for name, dst := range ints {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		EnvPrefix + "CASE_SENSITIVE": &cfg.Search.CaseSensitive,
		EnvPrefix + "SHOW_READABLE":  &cfg.UI.ShowReadable,
		EnvPrefix + "VERBOSE":        &cfg.Verbose,
	}
	for name, dst := range bools {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return cfg.Validate()
}
