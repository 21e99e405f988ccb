// SPDX-License-Identifier: Unlicense OR MIT

/*
Package headless implements an in-memory app.Driver without any
platform dependency. It backs the dispatch tests and lets applications
run their window logic in environments without a display server.

The driver exposes hooks that synthesize the native events a platform
would produce: closing a window from the title bar, resizing, menu and
tray clicks. Hooks are safe to call from any goroutine; the events they
produce are delivered in call order.
*/
package headless

import (
	"sync"
	"sync/atomic"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// Driver is an in-memory windowing backend.
type Driver struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []app.NativeEvent
	stopped bool

	out  chan app.NativeEvent
	quit chan struct{}

	windows map[app.NativeWindowID]*Window
	order   []app.NativeWindowID
	trays   map[app.TrayID]*Tray
	nextID  atomic.Uint64

	scale       float64
	trayBackend app.TrayBackend
}

// Option configures a Driver.
type Option func(*Driver)

// WithScaleFactor sets the scale factor new windows report. The
// default is 1.
func WithScaleFactor(scale float64) Option {
	return func(d *Driver) { d.scale = scale }
}

// WithTrayBackend delegates tray creation to a real status area
// integration, such as the systrayhost package.
func WithTrayBackend(b app.TrayBackend) Option {
	return func(d *Driver) { d.trayBackend = b }
}

// New returns a started driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		out:     make(chan app.NativeEvent, 64),
		quit:    make(chan struct{}),
		windows: make(map[app.NativeWindowID]*Window),
		trays:   make(map[app.TrayID]*Tray),
		scale:   1,
	}
	d.cond = sync.NewCond(&d.mu)
	for _, o := range opts {
		o(d)
	}
	go d.pump()
	return d
}

// Events implements app.Driver.
func (d *Driver) Events() <-chan app.NativeEvent {
	return d.out
}

// Stop implements app.Driver. Events not yet consumed are dropped.
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.quit)
		d.cond.Signal()
	}
	d.mu.Unlock()
}

// emit queues ev for delivery. The queue is unbounded so native
// callbacks, including ones triggered by the loop itself such as
// destroy confirmations, can never deadlock against a busy loop.
func (d *Driver) emit(ev app.NativeEvent) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, ev)
	d.cond.Signal()
	d.mu.Unlock()
}

func (d *Driver) pump() {
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.stopped {
			d.cond.Wait()
		}
		if d.stopped {
			d.mu.Unlock()
			close(d.out)
			return
		}
		ev := d.queue[0]
		d.queue = d.queue[1:]
		d.mu.Unlock()
		select {
		case d.out <- ev:
		case <-d.quit:
			close(d.out)
			return
		}
	}
}

// CreateWindow implements app.Driver.
func (d *Driver) CreateWindow(opts app.WindowOptions) (app.NativeWindow, error) {
	w := newWindow(d, app.NativeWindowID(d.nextID.Add(1)), d.scale, opts)
	d.mu.Lock()
	d.windows[w.id] = w
	d.order = append(d.order, w.id)
	d.mu.Unlock()
	return w, nil
}

// CreateWebview implements app.Driver.
func (d *Driver) CreateWebview(nw app.NativeWindow, opts app.WebviewOptions) (app.NativeWebview, error) {
	w := nw.(*Window)
	wv := &Webview{url: opts.URL, devTools: opts.DevTools, scripts: append([]string(nil), opts.InitScripts...)}
	w.mu.Lock()
	w.webview = wv
	w.mu.Unlock()
	return wv, nil
}

// CreateTray implements app.Driver. With a tray backend configured the
// call is delegated to it.
func (d *Driver) CreateTray(id app.TrayID, opts app.TrayOptions) (app.NativeTray, error) {
	if d.trayBackend != nil {
		return d.trayBackend.CreateTray(id, opts, d.emit)
	}
	t := &Tray{d: d, id: id, icon: opts.Icon, tooltip: opts.Tooltip, title: opts.Title}
	d.mu.Lock()
	d.trays[id] = t
	d.mu.Unlock()
	return t, nil
}

func (d *Driver) dropWindow(id app.NativeWindowID) {
	d.mu.Lock()
	delete(d.windows, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.mu.Unlock()
}

// Windows returns the live native windows in creation order.
func (d *Driver) Windows() []*Window {
	d.mu.Lock()
	defer d.mu.Unlock()
	ws := make([]*Window, 0, len(d.order))
	for _, id := range d.order {
		ws = append(ws, d.windows[id])
	}
	return ws
}

// Tray returns the live tray with the given id, or nil.
func (d *Driver) Tray(id app.TrayID) *Tray {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.trays[id]
}

// ClickTrayMenu synthesizes a click on a tray context menu item.
func (d *Driver) ClickTrayMenu(item menu.ItemID) {
	d.emit(app.MenuNativeEvent{Item: item, Context: true})
}

// ClickTray synthesizes a click on a tray icon.
func (d *Driver) ClickTray(id app.TrayID, kind app.TrayClickKind, pos unit.PhysicalPosition, size unit.PhysicalSize) {
	d.emit(app.TrayNativeEvent{Tray: id, Kind: kind, Position: pos, Size: size})
}

// ClickMenuUnresolved synthesizes a menu bar click whose source window
// the platform could not determine.
func (d *Driver) ClickMenuUnresolved(item menu.ItemID) {
	d.emit(app.MenuNativeEvent{Item: item})
}
