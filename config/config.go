// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the declarative application manifest: which
// windows to open at startup, their initial state, and the optional
// tray. The manifest is YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/unit"
)

// Config is the root of the manifest.
type Config struct {
	App     AppConfig      `yaml:"app"`
	Windows []WindowConfig `yaml:"windows"`
	Tray    *TrayConfig    `yaml:"tray"`
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`
}

// SlogLevel maps the configured log level to slog. Unknown or empty
// values mean Info.
func (a AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(a.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WindowConfig describes one startup window. Pointer fields
// distinguish "absent" from the zero value; absent means the
// runtime default.
type WindowConfig struct {
	Label string `yaml:"label"`
	Title string `yaml:"title"`

	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`

	MinWidth  *float64 `yaml:"min_width"`
	MinHeight *float64 `yaml:"min_height"`
	MaxWidth  *float64 `yaml:"max_width"`
	MaxHeight *float64 `yaml:"max_height"`

	Resizable   *bool  `yaml:"resizable"`
	Fullscreen  bool   `yaml:"fullscreen"`
	Maximized   bool   `yaml:"maximized"`
	Visible     *bool  `yaml:"visible"`
	Decorations *bool  `yaml:"decorations"`
	AlwaysOnTop bool   `yaml:"always_on_top"`
	SkipTaskbar bool   `yaml:"skip_taskbar"`
	Center      bool   `yaml:"center"`
	Transparent bool   `yaml:"transparent"`
	Theme       string `yaml:"theme"`
	Icon        string `yaml:"icon"`

	URL       string `yaml:"url"`
	UserAgent string `yaml:"user_agent"`
	DevTools  bool   `yaml:"devtools"`
}

// TrayConfig describes the tray.
type TrayConfig struct {
	Icon    string `yaml:"icon"`
	Title   string `yaml:"title"`
	Tooltip string `yaml:"tooltip"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool)
	for i, w := range c.Windows {
		if w.Label == "" {
			return fmt.Errorf("config: windows[%d]: label required", i)
		}
		if seen[w.Label] {
			return fmt.Errorf("config: duplicate window label %q", w.Label)
		}
		seen[w.Label] = true
		switch w.Theme {
		case "", "light", "dark":
		default:
			return fmt.Errorf("config: window %q: unknown theme %q", w.Label, w.Theme)
		}
	}
	return nil
}

// Options translates the window description into creation options.
// Icon paths are resolved relative to the working directory.
func (w WindowConfig) Options() ([]app.Option, error) {
	var opts []app.Option
	if w.Title != "" {
		opts = append(opts, app.Title(w.Title))
	}
	if w.Width > 0 && w.Height > 0 {
		opts = append(opts, app.Size(unit.LogicalSize{Width: w.Width, Height: w.Height}))
	}
	if w.X != nil && w.Y != nil {
		opts = append(opts, app.Position(unit.LogicalPosition{X: *w.X, Y: *w.Y}))
	}
	if w.MinWidth != nil && w.MinHeight != nil {
		opts = append(opts, app.MinSize(unit.LogicalSize{Width: *w.MinWidth, Height: *w.MinHeight}))
	}
	if w.MaxWidth != nil && w.MaxHeight != nil {
		opts = append(opts, app.MaxSize(unit.LogicalSize{Width: *w.MaxWidth, Height: *w.MaxHeight}))
	}
	if w.Resizable != nil {
		opts = append(opts, app.Resizable(*w.Resizable))
	}
	if w.Fullscreen {
		opts = append(opts, app.Fullscreen(true))
	}
	if w.Maximized {
		opts = append(opts, app.Maximized(true))
	}
	if w.Visible != nil {
		opts = append(opts, app.Visible(*w.Visible))
	}
	if w.Decorations != nil {
		opts = append(opts, app.Decorated(*w.Decorations))
	}
	if w.AlwaysOnTop {
		opts = append(opts, app.AlwaysOnTop(true))
	}
	if w.SkipTaskbar {
		opts = append(opts, app.SkipTaskbar(true))
	}
	if w.Center {
		opts = append(opts, app.Centered())
	}
	if w.Transparent {
		opts = append(opts, app.Transparent(true))
	}
	switch w.Theme {
	case "light":
		opts = append(opts, app.ForcedTheme(system.ThemeLight))
	case "dark":
		opts = append(opts, app.ForcedTheme(system.ThemeDark))
	}
	if w.Icon != "" {
		ic, err := icon.FromFile(w.Icon)
		if err != nil {
			return nil, fmt.Errorf("config: window %q: %w", w.Label, err)
		}
		opts = append(opts, app.WithIcon(ic))
	}
	if w.URL != "" {
		opts = append(opts, app.URL(w.URL))
	}
	if w.UserAgent != "" {
		opts = append(opts, app.UserAgent(w.UserAgent))
	}
	if w.DevTools {
		opts = append(opts, app.DevTools(true))
	}
	return opts, nil
}

// Options translates the tray description.
func (t TrayConfig) Options() (app.TrayOptions, error) {
	opts := app.TrayOptions{Title: t.Title, Tooltip: t.Tooltip}
	if t.Icon != "" {
		ic, err := icon.FromFile(t.Icon)
		if err != nil {
			return app.TrayOptions{}, fmt.Errorf("config: tray: %w", err)
		}
		opts.Icon = ic
	}
	return opts, nil
}
