// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// WindowID identifies a window and its webview for the lifetime of the
// process. Ids are allocated from a counter and never reused.
type WindowID uint64

// TrayID identifies a system tray instance.
type TrayID uint64

// NativeWindowID is the driver's own handle for a window. The runtime
// keeps a mapping from native ids back to WindowIDs for routing native
// events.
type NativeWindowID uint64

// Driver abstracts the platform windowing backend. All methods are
// called on the GUI thread only; the Events channel is read by the
// event loop and written by the driver from wherever its native
// callbacks fire.
type Driver interface {
	// CreateWindow builds a native window. The returned window is not
	// yet registered; the runtime does that after creation succeeds.
	CreateWindow(opts WindowOptions) (NativeWindow, error)

	// CreateWebview attaches a webview to a previously created window.
	CreateWebview(w NativeWindow, opts WebviewOptions) (NativeWebview, error)

	// CreateTray builds a system tray. Click and menu events must be
	// reported on the Events channel carrying the given id.
	CreateTray(id TrayID, opts TrayOptions) (NativeTray, error)

	// Events delivers native events in the order they occurred. The
	// driver closes the channel after Stop.
	Events() <-chan NativeEvent

	// Stop releases driver resources. Called once, after the loop has
	// destroyed all windows and trays.
	Stop()
}

// NativeWindow is a live platform window. Methods are called on the
// GUI thread only.
type NativeWindow interface {
	ID() NativeWindowID

	ScaleFactor() float64
	Title() string
	SetTitle(string)
	InnerSize() unit.PhysicalSize
	OuterSize() unit.PhysicalSize
	InnerPosition() (unit.PhysicalPosition, error)
	OuterPosition() (unit.PhysicalPosition, error)
	SetSize(unit.Size)
	// SetMinSize and SetMaxSize clear the constraint when given nil.
	SetMinSize(unit.Size)
	SetMaxSize(unit.Size)
	SetPosition(unit.Position)
	Center()

	SetResizable(bool)
	IsResizable() bool
	SetDecorations(bool)
	IsDecorated() bool
	SetAlwaysOnTop(bool)
	SetFullscreen(bool)
	IsFullscreen() bool
	Maximize()
	Unmaximize()
	IsMaximized() bool
	Minimize()
	Unminimize()
	IsMinimized() bool
	Show()
	Hide()
	IsVisible() bool
	Focus()
	RequestUserAttention(UserAttention)
	SetSkipTaskbar(bool)
	SetIcon(icon.Icon)
	SetCursorIcon(CursorIcon)
	SetCursorVisible(bool)
	SetCursorGrab(bool)
	SetCursorPosition(unit.Position)
	Theme() system.Theme
	RequestRedraw()
	StartDragging()

	// CurrentMonitor and PrimaryMonitor return nil when the platform
	// cannot resolve a monitor.
	CurrentMonitor() *Monitor
	PrimaryMonitor() *Monitor
	AvailableMonitors() []Monitor

	// SetMenu replaces the window menu bar and returns the native
	// handles of the custom items, keyed by their ids.
	SetMenu(menu.Menu) map[menu.ItemID]NativeMenuItem
	ShowMenu()
	HideMenu()
	IsMenuVisible() bool

	// Destroy tears the window down. The driver confirms by emitting
	// DestroyedNativeEvent; the runtime keeps the id registered until
	// that confirmation arrives.
	Destroy()
}

// NativeWebview is a live webview attached to a window.
type NativeWebview interface {
	EvalScript(js string) error
	URL() string
	Print() error
	OpenDevTools()
	CloseDevTools()
	IsDevToolsOpen() bool
}

// NativeMenuItem is a live custom menu item, owned by a window menu
// bar or a tray menu.
type NativeMenuItem interface {
	SetTitle(string)
	SetEnabled(bool)
	SetSelected(bool)
}

// NativeTray is a live system tray.
type NativeTray interface {
	SetIcon(icon.Icon)
	SetMenu(menu.Menu) map[menu.ItemID]NativeMenuItem
	SetTooltip(string)
	SetTitle(string)
	Destroy()
}

// TrayBackend builds trays for drivers that delegate the status area
// to a separate integration, such as the systrayhost package.
type TrayBackend interface {
	CreateTray(id TrayID, opts TrayOptions, emit func(NativeEvent)) (NativeTray, error)
}

// Monitor describes a connected display.
type Monitor struct {
	// Name is empty when the platform does not name displays.
	Name        string
	Size        unit.PhysicalSize
	Position    unit.PhysicalPosition
	ScaleFactor float64
}

// CursorIcon names a platform cursor shape.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorCrosshair
	CursorHand
	CursorMove
	CursorText
	CursorWait
	CursorHelp
	CursorProgress
	CursorNotAllowed
	CursorColResize
	CursorRowResize
)

// UserAttention is the urgency of a RequestUserAttention call.
type UserAttention uint8

const (
	// AttentionInformational is a passive hint, such as a bouncing
	// dock icon that stops on its own.
	AttentionInformational UserAttention = iota
	// AttentionCritical keeps demanding attention until the window is
	// focused.
	AttentionCritical
)

// NativeEvent is an event reported by a Driver. It is one of
// WindowNativeEvent, CloseRequestNativeEvent, DestroyedNativeEvent,
// MenuNativeEvent or TrayNativeEvent.
type NativeEvent interface {
	implementsNativeEvent()
}

// WindowNativeEvent carries a generic per-window event such as a
// resize or focus change.
type WindowNativeEvent struct {
	Window NativeWindowID
	Event  system.WindowEvent
}

// CloseRequestNativeEvent reports that the user asked to close a
// window, for example through the title bar button. The runtime gives
// listeners a chance to veto before destroying the window.
type CloseRequestNativeEvent struct {
	Window NativeWindowID
}

// DestroyedNativeEvent confirms that a window's native resources are
// gone, either after Destroy or because the platform tore it down.
type DestroyedNativeEvent struct {
	Window NativeWindowID
}

// MenuNativeEvent reports a click on a custom menu item. Context is
// true for tray context menus; otherwise the item belongs to a window
// menu bar and Window carries the native id of the focused window, or
// zero when the platform could not resolve one.
type MenuNativeEvent struct {
	Window  NativeWindowID
	Item    menu.ItemID
	Context bool
}

// TrayNativeEvent reports a click on the tray icon itself.
type TrayNativeEvent struct {
	Tray     TrayID
	Kind     TrayClickKind
	Position unit.PhysicalPosition
	Size     unit.PhysicalSize
}

func (WindowNativeEvent) implementsNativeEvent()       {}
func (CloseRequestNativeEvent) implementsNativeEvent() {}
func (DestroyedNativeEvent) implementsNativeEvent()    {}
func (MenuNativeEvent) implementsNativeEvent()         {}
func (TrayNativeEvent) implementsNativeEvent()         {}

// TrayClickKind distinguishes tray icon clicks.
type TrayClickKind uint8

const (
	TrayLeftClick TrayClickKind = iota
	TrayRightClick
	TrayDoubleClick
)
