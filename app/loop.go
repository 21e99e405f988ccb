// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
)

// handleUserMessage executes one dispatched message against the
// main-thread state. It runs either inside the event loop or directly
// on the GUI thread through the fast path; both callers have already
// established thread affinity. Messages that alter loop control flow
// (close, exit, user events) never come through here.
func handleUserMessage(ms *mainThreadState, msg message) {
	cx := ms.cx
	switch m := msg.(type) {
	case taskMessage:
		m.f()
	case windowCommand:
		rec := cx.windows.get(m.id)
		if rec == nil || rec.native == nil {
			cx.log.Debug("window command dropped", "window", m.id)
			return
		}
		m.f(rec)
	case windowQuery:
		rec := cx.windows.get(m.id)
		if rec == nil || rec.native == nil {
			m.f(nil)
			return
		}
		m.f(rec)
	case webviewCommand:
		rec := cx.windows.get(m.id)
		if rec == nil || rec.webview == nil {
			cx.log.Debug("webview command dropped", "window", m.id)
			return
		}
		m.f(rec.webview)
	case createWindowMessage:
		m.resp <- createWindowOnMain(ms, m)
	case createWebviewMessage:
		if err := attachWebviewOnMain(ms, m); err != nil {
			cx.log.Error("webview attach failed", "window", m.id, "err", err)
		}
	case trayCommand:
		rec := cx.trays.get(m.id)
		if rec == nil || rec.native == nil {
			cx.log.Debug("tray command dropped", "tray", m.id)
			return
		}
		m.f(rec)
	case createTrayMessage:
		m.resp <- createTrayOnMain(ms, m)
	case destroyTrayMessage:
		m.resp <- destroyTrayOnMain(ms, m)
	default:
		cx.log.Warn("message not executable outside the loop", "type", fmt.Sprintf("%T", msg))
	}
}

func createWindowOnMain(ms *mainThreadState, m createWindowMessage) error {
	cx := ms.cx
	if _, ok := cx.windows.findByLabel(m.label); ok {
		return fmt.Errorf("%w: %q", ErrLabelInUse, m.label)
	}
	native, err := ms.driver.CreateWindow(m.opts)
	if err != nil {
		return fmt.Errorf("create window %q: %w", m.label, err)
	}
	rec := newWindowRecord(m.id, m.label)
	rec.native = native
	rec.nativeID = native.ID()
	if m.opts.Menu != nil {
		rec.menuItems = native.SetMenu(*m.opts.Menu)
	}
	if m.opts.Webview.URL != "" {
		wv, err := ms.driver.CreateWebview(native, m.opts.Webview)
		if err != nil {
			native.Destroy()
			return fmt.Errorf("create webview for %q: %w", m.label, err)
		}
		rec.webview = wv
	}
	others := cx.windows.snapshot()
	if err := cx.windows.insert(rec); err != nil {
		native.Destroy()
		return fmt.Errorf("%w: %q", err, m.label)
	}
	for _, other := range others {
		other.peers[rec.label] = struct{}{}
		rec.peers[other.label] = struct{}{}
	}
	cx.log.Debug("window created", "label", m.label, "window", m.id)
	return nil
}

func attachWebviewOnMain(ms *mainThreadState, m createWebviewMessage) error {
	cx := ms.cx
	rec := cx.windows.get(m.id)
	if rec == nil || rec.native == nil {
		return ErrWindowNotFound
	}
	if rec.webview != nil {
		return fmt.Errorf("window %q already has a webview", rec.label)
	}
	wv, err := ms.driver.CreateWebview(rec.native, m.opts)
	if err != nil {
		return err
	}
	rec.webview = wv
	return nil
}

func createTrayOnMain(ms *mainThreadState, m createTrayMessage) error {
	cx := ms.cx
	native, err := ms.driver.CreateTray(m.id, m.opts)
	if err != nil {
		return fmt.Errorf("create tray: %w", err)
	}
	rec := &trayRecord{id: m.id, native: native, listeners: newListenerStore[TrayEvent]()}
	if m.opts.Menu != nil {
		rec.items = native.SetMenu(*m.opts.Menu)
	}
	cx.trays.insert(rec)
	cx.log.Debug("tray created", "tray", m.id)
	return nil
}

func destroyTrayOnMain(ms *mainThreadState, m destroyTrayMessage) error {
	rec := ms.cx.trays.remove(m.id)
	if rec == nil {
		return ErrTrayNotFound
	}
	if rec.native != nil {
		rec.native.Destroy()
		rec.native = nil
	}
	return nil
}

// handleMessage processes one dispatched message inside the loop.
// Unlike handleUserMessage it may touch loop control flow.
func (rt *Runtime) handleMessage(msg message) {
	switch m := msg.(type) {
	case closeWindowMessage:
		rt.destroyWindow(m.id)
	case exitMessage:
		rt.requestExit()
	case userEventMessage:
		rt.callback(UserEvent{Data: m.data})
	default:
		handleUserMessage(rt.cx.main, msg)
	}
}

// handleNative processes one driver event. Delivery order is fixed:
// loop bookkeeping first, then the window's own listeners, then the
// run callback.
func (rt *Runtime) handleNative(ev NativeEvent) {
	cx := rt.cx
	switch e := ev.(type) {
	case WindowNativeEvent:
		id, ok := cx.windows.byNativeID(e.Window)
		if !ok {
			cx.log.Debug("native event for unknown window", "native", e.Window)
			return
		}
		rec := cx.windows.get(id)
		if rec == nil {
			return
		}
		rec.windowListeners.dispatch(e.Event)
		rt.callback(WindowEvent{Label: rec.label, Event: e.Event})

	case CloseRequestNativeEvent:
		if id, ok := cx.windows.byNativeID(e.Window); ok {
			rt.closeRequested(id)
		}

	case DestroyedNativeEvent:
		id, ok := cx.windows.byNativeID(e.Window)
		if !ok {
			cx.log.Debug("destroy confirmation for unknown window", "native", e.Window)
			return
		}
		rt.destroyed(id)

	case MenuNativeEvent:
		if e.Context {
			rt.trayMenuClicked(e.Item)
			return
		}
		rt.menuClicked(e)

	case TrayNativeEvent:
		ev := TrayIconClickEvent{Kind: e.Kind, Position: e.Position, Size: e.Size}
		if store := cx.trays.listenersFor(e.Tray); store != nil {
			store.dispatch(TrayEvent(ev))
		}
		cx.trays.global.dispatch(globalTrayEvent{tray: e.Tray, ev: ev})
	}
}

// closeRequested runs the cancellable first phase of a window close.
// Listeners and the callback see the same CloseRequestedEvent; any of
// them may prevent the teardown.
func (rt *Runtime) closeRequested(id WindowID) {
	cx := rt.cx
	rec := cx.windows.get(id)
	if rec == nil || rec.native == nil {
		return
	}
	sig := system.NewCloseSignal()
	ev := system.CloseRequestedEvent{Signal: sig}
	rec.windowListeners.dispatch(system.WindowEvent(ev))
	rt.callback(WindowEvent{Label: rec.label, Event: ev})
	if sig.Prevented() {
		cx.log.Debug("close prevented", "label", rec.label)
		return
	}
	rt.destroyWindow(id)
}

// destroyWindow drops the native window. The record stays registered
// until the driver confirms with DestroyedNativeEvent.
func (rt *Runtime) destroyWindow(id WindowID) {
	rec := rt.cx.windows.get(id)
	if rec == nil || rec.native == nil {
		rt.cx.log.Debug("close for unknown window", "window", id)
		return
	}
	native := rec.native
	rec.native = nil
	rec.webview = nil
	rec.menuItems = nil
	native.Destroy()
}

// destroyed finishes a window teardown: the id is unregistered, other
// windows drop their reference, and the non-cancellable Destroyed
// notification goes out. Destroying the last window asks the loop to
// exit.
func (rt *Runtime) destroyed(id WindowID) {
	cx := rt.cx
	rec := cx.windows.remove(id)
	if rec == nil {
		return
	}
	for _, other := range cx.windows.snapshot() {
		other.forgetPeer(rec.label)
	}
	rec.windowListeners.dispatch(system.WindowEvent(system.DestroyedEvent{}))
	rt.callback(WindowEvent{Label: rec.label, Event: system.DestroyedEvent{}})
	cx.log.Debug("window destroyed", "label", rec.label)
	if cx.windows.len() == 0 {
		rt.requestExit()
	}
}

// menuClicked routes a menu bar click to the owning window's menu
// listeners. Some platforms report menu clicks without a focused
// window, for example while the application is minimized; those fall
// back to the first known window.
func (rt *Runtime) menuClicked(e MenuNativeEvent) {
	cx := rt.cx
	id, ok := cx.windows.byNativeID(e.Window)
	if !ok {
		id, ok = cx.windows.firstID()
		if !ok {
			cx.log.Debug("menu click with no windows", "item", e.Item)
			return
		}
		cx.log.Warn("menu click without resolvable window, using first window", "item", e.Item)
	}
	if store := cx.windows.menuListenersFor(id); store != nil {
		store.dispatch(menu.Event{ItemID: e.Item})
	}
}

// trayMenuClicked routes a tray context menu click to the tray whose
// item map contains the item, then to the global tray listeners.
func (rt *Runtime) trayMenuClicked(item menu.ItemID) {
	cx := rt.cx
	rec := cx.trays.ownerOfItem(item)
	if rec == nil {
		cx.log.Debug("tray menu click with no owning tray", "item", item)
		return
	}
	ev := TrayMenuItemClickEvent{ItemID: item}
	rec.listeners.dispatch(TrayEvent(ev))
	cx.trays.global.dispatch(globalTrayEvent{tray: rec.id, ev: ev})
}
