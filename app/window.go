// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/event"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// Window addresses a window from any thread. Setters are
// fire-and-forget: they return an error only when the loop is gone,
// and are silently dropped when the window has already been destroyed.
// Getters block for the loop's answer; on the GUI thread both execute
// immediately.
type Window struct {
	id    WindowID
	label string
	cx    *loopContext
}

// ID returns the window id.
func (w *Window) ID() WindowID { return w.id }

// Label returns the window label.
func (w *Window) Label() string { return w.label }

func (w *Window) command(f func(*windowRecord)) error {
	return w.cx.sendOrRun(windowCommand{id: w.id, f: f})
}

func (w *Window) webviewCommand(f func(NativeWebview)) error {
	return w.cx.sendOrRun(webviewCommand{id: w.id, f: f})
}

type queryResult[T any] struct {
	v   T
	err error
}

// windowGetter runs f against the window record on the GUI thread and
// returns its result. The loop answers every query exactly once; if it
// exits with the request in flight the caller gets
// ErrFailedToReceiveMessage instead of blocking forever.
func windowGetter[T any](w *Window, f func(*windowRecord) (T, error)) (T, error) {
	var zero T
	if w.cx.onMainThread() {
		rec := w.cx.windows.get(w.id)
		if rec == nil || rec.native == nil {
			return zero, ErrWindowNotFound
		}
		return f(rec)
	}
	resp := make(chan queryResult[T], 1)
	q := windowQuery{id: w.id, f: func(rec *windowRecord) {
		if rec == nil {
			resp <- queryResult[T]{err: ErrWindowNotFound}
			return
		}
		v, err := f(rec)
		resp <- queryResult[T]{v: v, err: err}
	}}
	if err := w.cx.send(q); err != nil {
		return zero, err
	}
	select {
	case r := <-resp:
		return r.v, r.err
	case <-w.cx.done:
		return zero, ErrFailedToReceiveMessage
	}
}

// CreateWindow builds a sibling window on the same loop. Equivalent to
// Handle.CreateWindow; provided so window-scoped code can spawn
// windows without holding a Handle.
func (w *Window) CreateWindow(label string, opts ...Option) (*Window, error) {
	h := Handle{cx: w.cx}
	return h.CreateWindow(label, opts...)
}

// Close destroys the window without consulting close listeners. A
// DestroyedEvent follows once the native teardown is confirmed.
func (w *Window) Close() error {
	return w.cx.send(closeWindowMessage{id: w.id})
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) error {
	return w.command(func(rec *windowRecord) { rec.native.SetTitle(title) })
}

// Show makes the window visible.
func (w *Window) Show() error {
	return w.command(func(rec *windowRecord) { rec.native.Show() })
}

// Hide hides the window without destroying it.
func (w *Window) Hide() error {
	return w.command(func(rec *windowRecord) { rec.native.Hide() })
}

// SetSize resizes the window's inner area.
func (w *Window) SetSize(s unit.Size) error {
	return w.command(func(rec *windowRecord) { rec.native.SetSize(s) })
}

// SetMinSize constrains the minimum inner size; nil clears it.
func (w *Window) SetMinSize(s unit.Size) error {
	return w.command(func(rec *windowRecord) { rec.native.SetMinSize(s) })
}

// SetMaxSize constrains the maximum inner size; nil clears it.
func (w *Window) SetMaxSize(s unit.Size) error {
	return w.command(func(rec *windowRecord) { rec.native.SetMaxSize(s) })
}

// SetPosition moves the window.
func (w *Window) SetPosition(p unit.Position) error {
	return w.command(func(rec *windowRecord) { rec.native.SetPosition(p) })
}

// Center centers the window on its monitor.
func (w *Window) Center() error {
	return w.command(func(rec *windowRecord) { rec.native.Center() })
}

// SetResizable controls user resizing.
func (w *Window) SetResizable(r bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetResizable(r) })
}

// SetDecorations toggles the native title bar and borders.
func (w *Window) SetDecorations(d bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetDecorations(d) })
}

// SetAlwaysOnTop keeps the window above normal windows.
func (w *Window) SetAlwaysOnTop(t bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetAlwaysOnTop(t) })
}

// SetFullscreen enters or leaves fullscreen.
func (w *Window) SetFullscreen(f bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetFullscreen(f) })
}

// Maximize maximizes the window.
func (w *Window) Maximize() error {
	return w.command(func(rec *windowRecord) { rec.native.Maximize() })
}

// Unmaximize restores a maximized window.
func (w *Window) Unmaximize() error {
	return w.command(func(rec *windowRecord) { rec.native.Unmaximize() })
}

// Minimize minimizes the window.
func (w *Window) Minimize() error {
	return w.command(func(rec *windowRecord) { rec.native.Minimize() })
}

// Unminimize restores a minimized window.
func (w *Window) Unminimize() error {
	return w.command(func(rec *windowRecord) { rec.native.Unminimize() })
}

// Focus brings the window to the foreground.
func (w *Window) Focus() error {
	return w.command(func(rec *windowRecord) { rec.native.Focus() })
}

// RequestUserAttention asks the platform to draw attention to the
// window, such as bouncing the dock icon.
func (w *Window) RequestUserAttention(a UserAttention) error {
	return w.command(func(rec *windowRecord) { rec.native.RequestUserAttention(a) })
}

// SetSkipTaskbar hides the window from the taskbar.
func (w *Window) SetSkipTaskbar(s bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetSkipTaskbar(s) })
}

// SetIcon replaces the window icon.
func (w *Window) SetIcon(ic icon.Icon) error {
	return w.command(func(rec *windowRecord) { rec.native.SetIcon(ic) })
}

// SetCursorIcon changes the cursor shown over the window.
func (w *Window) SetCursorIcon(c CursorIcon) error {
	return w.command(func(rec *windowRecord) { rec.native.SetCursorIcon(c) })
}

// SetCursorVisible shows or hides the cursor over the window.
func (w *Window) SetCursorVisible(v bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetCursorVisible(v) })
}

// SetCursorGrab confines the cursor to the window.
func (w *Window) SetCursorGrab(g bool) error {
	return w.command(func(rec *windowRecord) { rec.native.SetCursorGrab(g) })
}

// SetCursorPosition warps the cursor to a window-relative position.
func (w *Window) SetCursorPosition(p unit.Position) error {
	return w.command(func(rec *windowRecord) { rec.native.SetCursorPosition(p) })
}

// RequestRedraw schedules a repaint.
func (w *Window) RequestRedraw() error {
	return w.command(func(rec *windowRecord) { rec.native.RequestRedraw() })
}

// StartDragging begins a window move drag, for custom title bars.
func (w *Window) StartDragging() error {
	return w.command(func(rec *windowRecord) { rec.native.StartDragging() })
}

// SetMenu replaces the window menu bar.
func (w *Window) SetMenu(m menu.Menu) error {
	return w.command(func(rec *windowRecord) { rec.menuItems = rec.native.SetMenu(m) })
}

// ShowMenu shows the menu bar.
func (w *Window) ShowMenu() error {
	return w.command(func(rec *windowRecord) { rec.native.ShowMenu() })
}

// HideMenu hides the menu bar.
func (w *Window) HideMenu() error {
	return w.command(func(rec *windowRecord) { rec.native.HideMenu() })
}

// UpdateMenuItem applies updates to a custom item of the menu bar.
// Updates to unknown items are dropped.
func (w *Window) UpdateMenuItem(id menu.ItemID, updates ...menu.Update) error {
	return w.command(func(rec *windowRecord) {
		item, ok := rec.menuItems[id]
		if !ok {
			return
		}
		applyMenuUpdates(item, updates)
	})
}

// AttachWebview adds a webview to a window created without one.
// Fire-and-forget; creation failures are logged by the loop.
func (w *Window) AttachWebview(opts WebviewOptions) error {
	return w.cx.sendOrRun(createWebviewMessage{id: w.id, opts: opts})
}

// EvalScript evaluates JavaScript in the window's webview.
func (w *Window) EvalScript(js string) error {
	return w.webviewCommand(func(wv NativeWebview) { wv.EvalScript(js) })
}

// Print opens the webview print dialog.
func (w *Window) Print() error {
	return w.webviewCommand(func(wv NativeWebview) { wv.Print() })
}

// OpenDevTools opens the webview developer tools.
func (w *Window) OpenDevTools() error {
	return w.webviewCommand(func(wv NativeWebview) { wv.OpenDevTools() })
}

// CloseDevTools closes the webview developer tools.
func (w *Window) CloseDevTools() error {
	return w.webviewCommand(func(wv NativeWebview) { wv.CloseDevTools() })
}

// ScaleFactor returns the window's DPI scale factor.
func (w *Window) ScaleFactor() (float64, error) {
	return windowGetter(w, func(rec *windowRecord) (float64, error) {
		return rec.native.ScaleFactor(), nil
	})
}

// Title returns the window title.
func (w *Window) Title() (string, error) {
	return windowGetter(w, func(rec *windowRecord) (string, error) {
		return rec.native.Title(), nil
	})
}

// InnerSize returns the size of the window's content area in device
// pixels.
func (w *Window) InnerSize() (unit.PhysicalSize, error) {
	return windowGetter(w, func(rec *windowRecord) (unit.PhysicalSize, error) {
		return rec.native.InnerSize(), nil
	})
}

// OuterSize returns the size of the window including decorations.
func (w *Window) OuterSize() (unit.PhysicalSize, error) {
	return windowGetter(w, func(rec *windowRecord) (unit.PhysicalSize, error) {
		return rec.native.OuterSize(), nil
	})
}

// InnerPosition returns the position of the content area.
func (w *Window) InnerPosition() (unit.PhysicalPosition, error) {
	return windowGetter(w, func(rec *windowRecord) (unit.PhysicalPosition, error) {
		return rec.native.InnerPosition()
	})
}

// OuterPosition returns the position of the window's top-left corner.
func (w *Window) OuterPosition() (unit.PhysicalPosition, error) {
	return windowGetter(w, func(rec *windowRecord) (unit.PhysicalPosition, error) {
		return rec.native.OuterPosition()
	})
}

// IsFullscreen reports whether the window is fullscreen.
func (w *Window) IsFullscreen() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsFullscreen(), nil
	})
}

// IsMaximized reports whether the window is maximized.
func (w *Window) IsMaximized() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsMaximized(), nil
	})
}

// IsMinimized reports whether the window is minimized.
func (w *Window) IsMinimized() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsMinimized(), nil
	})
}

// IsVisible reports whether the window is visible.
func (w *Window) IsVisible() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsVisible(), nil
	})
}

// IsDecorated reports whether the window has native decorations.
func (w *Window) IsDecorated() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsDecorated(), nil
	})
}

// IsResizable reports whether the user can resize the window.
func (w *Window) IsResizable() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsResizable(), nil
	})
}

// IsMenuVisible reports whether the menu bar is shown.
func (w *Window) IsMenuVisible() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		return rec.native.IsMenuVisible(), nil
	})
}

// CurrentMonitor returns the monitor the window is on, or nil when the
// platform cannot tell.
func (w *Window) CurrentMonitor() (*Monitor, error) {
	return windowGetter(w, func(rec *windowRecord) (*Monitor, error) {
		return rec.native.CurrentMonitor(), nil
	})
}

// PrimaryMonitor returns the primary monitor, or nil when the platform
// has no such notion.
func (w *Window) PrimaryMonitor() (*Monitor, error) {
	return windowGetter(w, func(rec *windowRecord) (*Monitor, error) {
		return rec.native.PrimaryMonitor(), nil
	})
}

// AvailableMonitors returns all connected monitors.
func (w *Window) AvailableMonitors() ([]Monitor, error) {
	return windowGetter(w, func(rec *windowRecord) ([]Monitor, error) {
		return rec.native.AvailableMonitors(), nil
	})
}

// Theme returns the theme the window renders with.
func (w *Window) Theme() (system.Theme, error) {
	return windowGetter(w, func(rec *windowRecord) (system.Theme, error) {
		return rec.native.Theme(), nil
	})
}

// URL returns the current webview URL.
func (w *Window) URL() (string, error) {
	return windowGetter(w, func(rec *windowRecord) (string, error) {
		if rec.webview == nil {
			return "", ErrNoWebview
		}
		return rec.webview.URL(), nil
	})
}

// IsDevToolsOpen reports whether the webview developer tools are open.
func (w *Window) IsDevToolsOpen() (bool, error) {
	return windowGetter(w, func(rec *windowRecord) (bool, error) {
		if rec.webview == nil {
			return false, ErrNoWebview
		}
		return rec.webview.IsDevToolsOpen(), nil
	})
}

// Peers returns the labels of the other windows this one currently
// knows about. Destroyed windows disappear from the set.
func (w *Window) Peers() ([]string, error) {
	return windowGetter(w, func(rec *windowRecord) ([]string, error) {
		return rec.peerLabels(), nil
	})
}

// OnWindowEvent registers a listener for this window's events.
// Listeners run on the GUI thread, before the run callback sees the
// same event.
func (w *Window) OnWindowEvent(f func(system.WindowEvent)) (event.ListenerID, error) {
	store := w.cx.windows.windowListenersFor(w.id)
	if store == nil {
		return event.ListenerID{}, ErrWindowNotFound
	}
	return store.add(f), nil
}

// RemoveWindowListener removes a listener registered with
// OnWindowEvent.
func (w *Window) RemoveWindowListener(id event.ListenerID) {
	if store := w.cx.windows.windowListenersFor(w.id); store != nil {
		store.remove(id)
	}
}

// OnMenuEvent registers a listener for clicks on this window's menu
// bar.
func (w *Window) OnMenuEvent(f func(menu.Event)) (event.ListenerID, error) {
	store := w.cx.windows.menuListenersFor(w.id)
	if store == nil {
		return event.ListenerID{}, ErrWindowNotFound
	}
	return store.add(f), nil
}

// RemoveMenuListener removes a listener registered with OnMenuEvent.
func (w *Window) RemoveMenuListener(id event.ListenerID) {
	if store := w.cx.windows.menuListenersFor(w.id); store != nil {
		store.remove(id)
	}
}
