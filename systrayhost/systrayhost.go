// SPDX-License-Identifier: Unlicense OR MIT

/*
Package systrayhost backs app trays with a real status area icon.

It implements app.TrayBackend on top of fyne.io/systray, which talks
StatusNotifierItem over D-Bus on Linux, the notification area on
Windows and NSStatusItem on macOS. The underlying status item is a
process-global resource, so at most one tray can be active at a time;
creating a second one fails until the first is destroyed.
*/
package systrayhost

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"runtime"
	"sync"

	"fyne.io/systray"
	ico "github.com/Kodeworks/golang-image-ico"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/menu"
)

// ErrTrayActive is returned when a status item is already registered.
var ErrTrayActive = errors.New("systrayhost: a tray is already active")

// Backend creates status area trays. The zero value is ready to use.
type Backend struct {
	mu     sync.Mutex
	active bool
}

// New returns a Backend.
func New() *Backend {
	return &Backend{}
}

// CreateTray implements app.TrayBackend. It blocks until the status
// item is registered with the desktop.
func (b *Backend) CreateTray(id app.TrayID, opts app.TrayOptions, emit func(app.NativeEvent)) (app.NativeTray, error) {
	b.mu.Lock()
	if b.active {
		b.mu.Unlock()
		return nil, ErrTrayActive
	}
	b.active = true
	b.mu.Unlock()

	t := &tray{b: b, id: id, emit: emit, stop: make(chan struct{})}
	ready := make(chan struct{})
	start, end := systray.RunWithExternalLoop(func() { close(ready) }, func() {})
	t.end = end
	start()
	<-ready

	if !opts.Icon.Empty() {
		t.SetIcon(opts.Icon)
	}
	if opts.Title != "" {
		systray.SetTitle(opts.Title)
	}
	if opts.Tooltip != "" {
		systray.SetTooltip(opts.Tooltip)
	}
	return t, nil
}

type tray struct {
	b    *Backend
	id   app.TrayID
	emit func(app.NativeEvent)
	end  func()

	mu sync.Mutex
	// stop tears down the click forwarding goroutines of the current
	// menu generation. SetMenu replaces it.
	stop      chan struct{}
	destroyed bool
}

func (t *tray) SetIcon(ic icon.Icon) {
	data, err := encodeIcon(ic)
	if err != nil {
		return
	}
	systray.SetIcon(data)
}

func (t *tray) SetMenu(m menu.Menu) map[menu.ItemID]app.NativeMenuItem {
	t.mu.Lock()
	close(t.stop)
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	systray.ResetMenu()
	items := make(map[menu.ItemID]app.NativeMenuItem)
	t.addEntries(m.Items, nil, items, stop)
	return items
}

func (t *tray) addEntries(entries []menu.Entry, parent *systray.MenuItem, items map[menu.ItemID]app.NativeMenuItem, stop chan struct{}) {
	for _, entry := range entries {
		switch e := entry.(type) {
		case *menu.Item:
			mi := t.addItem(e.Title, parent)
			if !e.Enabled {
				mi.Disable()
			}
			if e.Selected {
				mi.Check()
			}
			items[e.ID] = &trayItem{mi: mi}
			go t.forwardClicks(e.ID, mi, stop)
		case menu.Native:
			// Only the separator has a status area equivalent; window
			// roles like Minimize or Copy do not apply here.
			if e.Kind == menu.Separator && parent == nil {
				systray.AddSeparator()
			}
		case menu.Submenu:
			mi := t.addItem(e.Title, parent)
			if !e.Enabled {
				mi.Disable()
			}
			t.addEntries(e.Menu.Items, mi, items, stop)
		}
	}
}

func (t *tray) addItem(title string, parent *systray.MenuItem) *systray.MenuItem {
	if parent != nil {
		return parent.AddSubMenuItem(title, title)
	}
	return systray.AddMenuItem(title, title)
}

func (t *tray) forwardClicks(id menu.ItemID, mi *systray.MenuItem, stop chan struct{}) {
	for {
		select {
		case _, ok := <-mi.ClickedCh:
			if !ok {
				return
			}
			t.emit(app.MenuNativeEvent{Item: id, Context: true})
		case <-stop:
			return
		}
	}
}

func (t *tray) SetTooltip(tip string) {
	systray.SetTooltip(tip)
}

func (t *tray) SetTitle(title string) {
	systray.SetTitle(title)
}

func (t *tray) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	close(t.stop)
	t.mu.Unlock()

	t.end()
	t.b.mu.Lock()
	t.b.active = false
	t.b.mu.Unlock()
}

// trayItem adapts a systray menu item to app.NativeMenuItem.
type trayItem struct {
	mi *systray.MenuItem
}

func (it *trayItem) SetTitle(t string) {
	it.mi.SetTitle(t)
}

func (it *trayItem) SetEnabled(e bool) {
	if e {
		it.mi.Enable()
	} else {
		it.mi.Disable()
	}
}

func (it *trayItem) SetSelected(s bool) {
	if s {
		it.mi.Check()
	} else {
		it.mi.Uncheck()
	}
}

// encodeIcon serializes ic in the format the platform status area
// expects: ICO on Windows, PNG elsewhere.
func encodeIcon(ic icon.Icon) ([]byte, error) {
	if err := ic.Validate(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if runtime.GOOS == "windows" {
		if err := ico.Encode(&buf, ic.Image()); err != nil {
			return nil, fmt.Errorf("systrayhost: encode ico: %w", err)
		}
	} else {
		if err := png.Encode(&buf, ic.Image()); err != nil {
			return nil, fmt.Errorf("systrayhost: encode png: %w", err)
		}
	}
	return buf.Bytes(), nil
}
