// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"sync"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// CursorState is the cursor configuration a window was last given.
type CursorState struct {
	Icon     app.CursorIcon
	Visible  bool
	Grabbed  bool
	Position unit.PhysicalPosition
}

// Window is an in-memory native window. The exported methods beyond
// the app.NativeWindow interface are test hooks that synthesize the
// events a platform window would produce.
type Window struct {
	d  *Driver
	id app.NativeWindowID

	mu          sync.Mutex
	title       string
	scale       float64
	innerSize   unit.PhysicalSize
	position    unit.PhysicalPosition
	minSize     unit.Size
	maxSize     unit.Size
	resizable   bool
	decorated   bool
	alwaysOnTop bool
	fullscreen  bool
	maximized   bool
	minimized   bool
	visible     bool
	skipTaskbar bool
	focused     bool
	theme       system.Theme
	forcedTheme *system.Theme
	cursor      CursorState
	icon        icon.Icon
	menuVisible bool
	items       map[menu.ItemID]*MenuItem
	webview     *Webview
	attention   []app.UserAttention
	redraws     int
	dragging    bool
	destroyed   bool
}

func newWindow(d *Driver, id app.NativeWindowID, scale float64, opts app.WindowOptions) *Window {
	w := &Window{
		d:           d,
		id:          id,
		title:       opts.Title,
		scale:       scale,
		resizable:   opts.Resizable,
		decorated:   opts.Decorations,
		alwaysOnTop: opts.AlwaysOnTop,
		fullscreen:  opts.Fullscreen,
		maximized:   opts.Maximized,
		visible:     opts.Visible,
		skipTaskbar: opts.SkipTaskbar,
		focused:     opts.Focused,
		forcedTheme: opts.Theme,
		icon:        opts.Icon,
		minSize:     opts.MinSize,
		maxSize:     opts.MaxSize,
		cursor:      CursorState{Visible: true},
	}
	if opts.Size != nil {
		w.innerSize = opts.Size.Physical(scale)
	}
	if opts.Position != nil {
		w.position = opts.Position.Physical(scale)
	}
	return w
}

func (w *Window) ID() app.NativeWindowID { return w.id }

func (w *Window) ScaleFactor() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scale
}

func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *Window) SetTitle(t string) {
	w.mu.Lock()
	w.title = t
	w.mu.Unlock()
}

func (w *Window) InnerSize() unit.PhysicalSize {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.innerSize
}

// OuterSize reports the inner size; a headless window has no
// decorations to add.
func (w *Window) OuterSize() unit.PhysicalSize {
	return w.InnerSize()
}

func (w *Window) InnerPosition() (unit.PhysicalPosition, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position, nil
}

func (w *Window) OuterPosition() (unit.PhysicalPosition, error) {
	return w.InnerPosition()
}

func (w *Window) SetSize(s unit.Size) {
	w.mu.Lock()
	w.innerSize = s.Physical(w.scale)
	size := w.innerSize
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.ResizedEvent{Size: size}})
}

func (w *Window) SetMinSize(s unit.Size) {
	w.mu.Lock()
	w.minSize = s
	w.mu.Unlock()
}

func (w *Window) SetMaxSize(s unit.Size) {
	w.mu.Lock()
	w.maxSize = s
	w.mu.Unlock()
}

func (w *Window) SetPosition(p unit.Position) {
	w.mu.Lock()
	w.position = p.Physical(w.scale)
	pos := w.position
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.MovedEvent{Position: pos}})
}

// Center moves the window to the origin; a headless display has no
// monitor geometry.
func (w *Window) Center() {
	w.mu.Lock()
	w.position = unit.PhysicalPosition{}
	w.mu.Unlock()
}

func (w *Window) SetResizable(r bool) {
	w.mu.Lock()
	w.resizable = r
	w.mu.Unlock()
}

func (w *Window) IsResizable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resizable
}

func (w *Window) SetDecorations(d bool) {
	w.mu.Lock()
	w.decorated = d
	w.mu.Unlock()
}

func (w *Window) IsDecorated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decorated
}

func (w *Window) SetAlwaysOnTop(t bool) {
	w.mu.Lock()
	w.alwaysOnTop = t
	w.mu.Unlock()
}

func (w *Window) SetFullscreen(f bool) {
	w.mu.Lock()
	w.fullscreen = f
	w.mu.Unlock()
}

func (w *Window) IsFullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

func (w *Window) Maximize() {
	w.mu.Lock()
	w.maximized = true
	w.mu.Unlock()
}

func (w *Window) Unmaximize() {
	w.mu.Lock()
	w.maximized = false
	w.mu.Unlock()
}

func (w *Window) IsMaximized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.maximized
}

func (w *Window) Minimize() {
	w.mu.Lock()
	w.minimized = true
	w.mu.Unlock()
}

func (w *Window) Unminimize() {
	w.mu.Lock()
	w.minimized = false
	w.mu.Unlock()
}

func (w *Window) IsMinimized() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minimized
}

func (w *Window) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()
}

func (w *Window) Hide() {
	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
}

func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Window) Focus() {
	w.mu.Lock()
	w.focused = true
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.FocusedEvent{Focused: true}})
}

func (w *Window) RequestUserAttention(a app.UserAttention) {
	w.mu.Lock()
	w.attention = append(w.attention, a)
	w.mu.Unlock()
}

func (w *Window) SetSkipTaskbar(s bool) {
	w.mu.Lock()
	w.skipTaskbar = s
	w.mu.Unlock()
}

func (w *Window) SetIcon(ic icon.Icon) {
	w.mu.Lock()
	w.icon = ic
	w.mu.Unlock()
}

func (w *Window) Theme() system.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.forcedTheme != nil {
		return *w.forcedTheme
	}
	return w.theme
}

// displaySize is the logical size of the synthetic display the monitor
// getters describe.
var displaySize = unit.LogicalSize{Width: 1920, Height: 1080}

func (w *Window) monitor() app.Monitor {
	w.mu.Lock()
	scale := w.scale
	w.mu.Unlock()
	return app.Monitor{
		Name:        "headless",
		Size:        displaySize.Physical(scale),
		ScaleFactor: scale,
	}
}

// CurrentMonitor reports the single synthetic display.
func (w *Window) CurrentMonitor() *app.Monitor {
	m := w.monitor()
	return &m
}

func (w *Window) PrimaryMonitor() *app.Monitor {
	m := w.monitor()
	return &m
}

func (w *Window) AvailableMonitors() []app.Monitor {
	return []app.Monitor{w.monitor()}
}

func (w *Window) SetCursorIcon(c app.CursorIcon) {
	w.mu.Lock()
	w.cursor.Icon = c
	w.mu.Unlock()
}

func (w *Window) SetCursorVisible(v bool) {
	w.mu.Lock()
	w.cursor.Visible = v
	w.mu.Unlock()
}

func (w *Window) SetCursorGrab(g bool) {
	w.mu.Lock()
	w.cursor.Grabbed = g
	w.mu.Unlock()
}

func (w *Window) SetCursorPosition(p unit.Position) {
	w.mu.Lock()
	w.cursor.Position = p.Physical(w.scale)
	w.mu.Unlock()
}

// Cursor returns the current cursor state.
func (w *Window) Cursor() CursorState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
}

func (w *Window) StartDragging() {
	w.mu.Lock()
	w.dragging = true
	w.mu.Unlock()
}

func (w *Window) SetMenu(m menu.Menu) map[menu.ItemID]app.NativeMenuItem {
	items := make(map[menu.ItemID]*MenuItem)
	m.Walk(func(it *menu.Item) {
		items[it.ID] = &MenuItem{title: it.Title, enabled: it.Enabled, selected: it.Selected}
	})
	native := make(map[menu.ItemID]app.NativeMenuItem, len(items))
	for id, it := range items {
		native[id] = it
	}
	w.mu.Lock()
	w.items = items
	w.menuVisible = true
	w.mu.Unlock()
	return native
}

func (w *Window) ShowMenu() {
	w.mu.Lock()
	w.menuVisible = true
	w.mu.Unlock()
}

func (w *Window) HideMenu() {
	w.mu.Lock()
	w.menuVisible = false
	w.mu.Unlock()
}

func (w *Window) IsMenuVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.menuVisible
}

// Destroy implements app.NativeWindow. The destroy confirmation is
// emitted once, matching platforms that report destruction
// asynchronously.
func (w *Window) Destroy() {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.mu.Unlock()
	w.d.dropWindow(w.id)
	w.d.emit(app.DestroyedNativeEvent{Window: w.id})
}

// RequestClose synthesizes the user closing the window, for example
// from the title bar button.
func (w *Window) RequestClose() {
	w.d.emit(app.CloseRequestNativeEvent{Window: w.id})
}

// Resize synthesizes a user resize.
func (w *Window) Resize(size unit.PhysicalSize) {
	w.mu.Lock()
	w.innerSize = size
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.ResizedEvent{Size: size}})
}

// Move synthesizes a user move.
func (w *Window) Move(pos unit.PhysicalPosition) {
	w.mu.Lock()
	w.position = pos
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.MovedEvent{Position: pos}})
}

// FocusChange synthesizes a focus change.
func (w *Window) FocusChange(focused bool) {
	w.mu.Lock()
	w.focused = focused
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.FocusedEvent{Focused: focused}})
}

// ChangeTheme synthesizes a system theme change.
func (w *Window) ChangeTheme(t system.Theme) {
	w.mu.Lock()
	w.theme = t
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.ThemeChangedEvent{Theme: t}})
}

// ChangeScaleFactor synthesizes the window moving to a display with a
// different scale factor.
func (w *Window) ChangeScaleFactor(scale float64, newSize unit.PhysicalSize) {
	w.mu.Lock()
	w.scale = scale
	w.innerSize = newSize
	w.mu.Unlock()
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.ScaleFactorChangedEvent{ScaleFactor: scale, NewSize: newSize}})
}

// DropFiles synthesizes files dropped onto the window.
func (w *Window) DropFiles(paths ...string) {
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.FileDropEvent{Kind: system.FileDropDropped, Paths: paths}})
}

// HoverFiles synthesizes files dragged over the window.
func (w *Window) HoverFiles(paths ...string) {
	w.d.emit(app.WindowNativeEvent{Window: w.id, Event: system.FileDropEvent{Kind: system.FileDropHovered, Paths: paths}})
}

// ClickMenu synthesizes a click on a menu bar item of this window.
func (w *Window) ClickMenu(item menu.ItemID) {
	w.d.emit(app.MenuNativeEvent{Window: w.id, Item: item})
}

// MenuItemState returns the current state of a custom menu item, or
// false when the item is unknown.
func (w *Window) MenuItemState(id menu.ItemID) (MenuItemState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.items[id]
	if !ok {
		return MenuItemState{}, false
	}
	return it.state(), true
}

// Webview returns the attached webview, or nil.
func (w *Window) Webview() *Webview {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.webview
}

// AttentionRequests returns the recorded RequestUserAttention calls.
func (w *Window) AttentionRequests() []app.UserAttention {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]app.UserAttention(nil), w.attention...)
}
