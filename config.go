package petal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the window options. Zero fields keep the
// defaults; unknown keys are ignored.
type Config struct {
	Title          string `toml:"title" yaml:"title" json:"title"`
	Background     string `toml:"background" yaml:"background" json:"background"`
	Width          int    `toml:"width" yaml:"width" json:"width"`
	Height         int    `toml:"height" yaml:"height" json:"height"`
	ViewportWidth  int    `toml:"viewport_width" yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int    `toml:"viewport_height" yaml:"viewport_height" json:"viewport_height"`
	Resizable      bool   `toml:"resizable" yaml:"resizable" json:"resizable"`
	Borderless     bool   `toml:"borderless" yaml:"borderless" json:"borderless"`
	Fullscreen     bool   `toml:"fullscreen" yaml:"fullscreen" json:"fullscreen"`
	HighDPI        bool   `toml:"highdpi" yaml:"highdpi" json:"highdpi"`
	FPSCap         int    `toml:"fps_cap" yaml:"fps_cap" json:"fps_cap"`
	VSync          *bool  `toml:"vsync" yaml:"vsync" json:"vsync"`
	Icon           string `toml:"icon" yaml:"icon" json:"icon"`
	Diagnostics    bool   `toml:"diagnostics" yaml:"diagnostics" json:"diagnostics"`
	ScreenshotDir  string `toml:"screenshot_dir" yaml:"screenshot_dir" json:"screenshot_dir"`
}

// LoadConfig reads a .toml, .yaml/.yml or .json window config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("petal: read config: %w", err)
	}
	return ParseConfig(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// ParseConfig decodes data in the named format: "toml", "yaml", "yml" or
// "json".
func ParseConfig(data []byte, format string) (*Config, error) {
	var cfg Config
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &cfg)
	case "json":
		err = json.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("petal: unknown config format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("petal: parse %s config: %w", format, err)
	}
	return &cfg, nil
}

// Options converts the config into window options. The background may be
// any color ParseColor accepts.
func (c *Config) Options() ([]Option, error) {
	var opts []Option
	if c.Title != "" {
		opts = append(opts, Title(c.Title))
	}
	if c.Background != "" {
		bg, err := ParseColor(c.Background)
		if err != nil {
			return nil, fmt.Errorf("petal: config background: %w", err)
		}
		opts = append(opts, Background(bg))
	}
	opts = append(opts,
		Size(c.Width, c.Height),
		ViewportSize(c.ViewportWidth, c.ViewportHeight),
		Resizable(c.Resizable),
		Borderless(c.Borderless),
		Fullscreen(c.Fullscreen),
		HighDPI(c.HighDPI),
		FPSCap(c.FPSCap),
		Diagnostics(c.Diagnostics),
	)
	if c.VSync != nil {
		opts = append(opts, VSync(*c.VSync))
	}
	if c.Icon != "" {
		opts = append(opts, Icon(c.Icon))
	}
	if c.ScreenshotDir != "" {
		dir := c.ScreenshotDir
		opts = append(opts, func(w *Window) { w.SetScreenshotDir(dir) })
	}
	return opts, nil
}
