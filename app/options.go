// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// WindowOptions describes the initial state of a window.
type WindowOptions struct {
	Title       string
	Size        unit.Size
	MinSize     unit.Size
	MaxSize     unit.Size
	Position    unit.Position
	Center      bool
	Resizable   bool
	Fullscreen  bool
	Maximized   bool
	Visible     bool
	Decorations bool
	AlwaysOnTop bool
	SkipTaskbar bool
	Focused     bool
	Transparent bool
	Theme       *system.Theme
	Icon        icon.Icon
	Menu        *menu.Menu

	Webview WebviewOptions
}

// WebviewOptions describes the webview attached to a window. A window
// gets a webview only when URL is non-empty.
type WebviewOptions struct {
	URL             string
	UserAgent       string
	InitScripts     []string
	FileDropEnabled bool
	DevTools        bool
	DataDirectory   string
}

// TrayOptions describes a system tray.
type TrayOptions struct {
	Icon            icon.Icon
	IconAsTemplate  bool
	Title           string
	Tooltip         string
	Menu            *menu.Menu
	MenuOnLeftClick bool
}

func defaultWindowOptions() WindowOptions {
	return WindowOptions{
		Size:        unit.LogicalSize{Width: 800, Height: 600},
		Resizable:   true,
		Visible:     true,
		Decorations: true,
		Focused:     true,
		Webview:     WebviewOptions{FileDropEnabled: true},
	}
}

// Option configures a window at creation time.
type Option func(*WindowOptions)

// Title sets the window title.
func Title(t string) Option {
	return func(o *WindowOptions) { o.Title = t }
}

// Size sets the initial inner size.
func Size(s unit.Size) Option {
	return func(o *WindowOptions) { o.Size = s }
}

// MinSize constrains the minimum inner size.
func MinSize(s unit.Size) Option {
	return func(o *WindowOptions) { o.MinSize = s }
}

// MaxSize constrains the maximum inner size.
func MaxSize(s unit.Size) Option {
	return func(o *WindowOptions) { o.MaxSize = s }
}

// Position sets the initial outer position.
func Position(p unit.Position) Option {
	return func(o *WindowOptions) { o.Position = p }
}

// Centered centers the window on its monitor, overriding Position.
func Centered() Option {
	return func(o *WindowOptions) { o.Center = true }
}

// Resizable controls whether the user can resize the window.
func Resizable(r bool) Option {
	return func(o *WindowOptions) { o.Resizable = r }
}

// Fullscreen starts the window in fullscreen.
func Fullscreen(f bool) Option {
	return func(o *WindowOptions) { o.Fullscreen = f }
}

// Maximized starts the window maximized.
func Maximized(m bool) Option {
	return func(o *WindowOptions) { o.Maximized = m }
}

// Visible controls whether the window is shown on creation.
func Visible(v bool) Option {
	return func(o *WindowOptions) { o.Visible = v }
}

// Decorated controls the native title bar and borders.
func Decorated(d bool) Option {
	return func(o *WindowOptions) { o.Decorations = d }
}

// AlwaysOnTop keeps the window above normal windows.
func AlwaysOnTop(t bool) Option {
	return func(o *WindowOptions) { o.AlwaysOnTop = t }
}

// SkipTaskbar hides the window from the taskbar.
func SkipTaskbar(s bool) Option {
	return func(o *WindowOptions) { o.SkipTaskbar = s }
}

// Focused controls whether the window takes focus on creation.
func Focused(f bool) Option {
	return func(o *WindowOptions) { o.Focused = f }
}

// Transparent enables a transparent window background.
func Transparent(t bool) Option {
	return func(o *WindowOptions) { o.Transparent = t }
}

// ForcedTheme pins the window to a theme instead of following the
// system.
func ForcedTheme(t system.Theme) Option {
	return func(o *WindowOptions) { o.Theme = &t }
}

// WithIcon sets the window icon.
func WithIcon(ic icon.Icon) Option {
	return func(o *WindowOptions) { o.Icon = ic }
}

// WithMenu attaches a menu bar.
func WithMenu(m menu.Menu) Option {
	return func(o *WindowOptions) { o.Menu = &m }
}

// URL loads the given URL in a webview attached to the window.
func URL(u string) Option {
	return func(o *WindowOptions) { o.Webview.URL = u }
}

// UserAgent overrides the webview user agent.
func UserAgent(ua string) Option {
	return func(o *WindowOptions) { o.Webview.UserAgent = ua }
}

// InitScript adds a script evaluated before every page load.
func InitScript(js string) Option {
	return func(o *WindowOptions) { o.Webview.InitScripts = append(o.Webview.InitScripts, js) }
}

// FileDrop controls the webview's native file drop handler.
func FileDrop(enabled bool) Option {
	return func(o *WindowOptions) { o.Webview.FileDropEnabled = enabled }
}

// DevTools enables the webview developer tools.
func DevTools(enabled bool) Option {
	return func(o *WindowOptions) { o.Webview.DevTools = enabled }
}

// DataDirectory sets the webview's profile directory.
func DataDirectory(dir string) Option {
	return func(o *WindowOptions) { o.Webview.DataDirectory = dir }
}
