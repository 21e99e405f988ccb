// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"

	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/io/event"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

// TrayEvent is delivered to tray listeners. It is one of
// TrayMenuItemClickEvent or TrayIconClickEvent.
type TrayEvent interface {
	implementsTrayEvent()
}

// TrayMenuItemClickEvent reports a click on a custom item of a tray
// context menu.
type TrayMenuItemClickEvent struct {
	ItemID menu.ItemID
}

// TrayIconClickEvent reports a click on the tray icon itself.
type TrayIconClickEvent struct {
	Kind     TrayClickKind
	Position unit.PhysicalPosition
	Size     unit.PhysicalSize
}

func (TrayMenuItemClickEvent) implementsTrayEvent() {}
func (TrayIconClickEvent) implementsTrayEvent()     {}

// trayRecord is the loop-side state of one tray. native and items are
// touched on the GUI thread only.
type trayRecord struct {
	id        TrayID
	native    NativeTray
	items     map[menu.ItemID]NativeMenuItem
	listeners *listenerStore[TrayEvent]
}

// trayManager holds the live trays and the global tray listeners.
// Structural mutation happens on the GUI thread; listener registration
// is safe from any thread.
type trayManager struct {
	mu     sync.Mutex
	trays  map[TrayID]*trayRecord
	global *listenerStore[globalTrayEvent]
}

type globalTrayEvent struct {
	tray TrayID
	ev   TrayEvent
}

func newTrayManager() *trayManager {
	return &trayManager{
		trays:  make(map[TrayID]*trayRecord),
		global: newListenerStore[globalTrayEvent](),
	}
}

func (m *trayManager) insert(rec *trayRecord) {
	m.mu.Lock()
	m.trays[rec.id] = rec
	m.mu.Unlock()
}

func (m *trayManager) get(id TrayID) *trayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trays[id]
}

func (m *trayManager) remove(id TrayID) *trayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.trays[id]
	if !ok {
		return nil
	}
	delete(m.trays, id)
	return rec
}

// ownerOfItem scans the tray item maps for the tray whose context menu
// contains the item. GUI thread only.
func (m *trayManager) ownerOfItem(item menu.ItemID) *trayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.trays {
		if _, ok := rec.items[item]; ok {
			return rec
		}
	}
	return nil
}

func (m *trayManager) listenersFor(id TrayID) *listenerStore[TrayEvent] {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.trays[id]; ok {
		return rec.listeners
	}
	return nil
}

func (m *trayManager) snapshot() []*trayRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := make([]*trayRecord, 0, len(m.trays))
	for _, rec := range m.trays {
		recs = append(recs, rec)
	}
	return recs
}

// Tray addresses a system tray from any thread.
type Tray struct {
	id TrayID
	cx *loopContext
}

// ID returns the tray id.
func (t *Tray) ID() TrayID { return t.id }

func (t *Tray) command(f func(*trayRecord)) error {
	return t.cx.sendOrRun(trayCommand{id: t.id, f: f})
}

// SetIcon replaces the tray icon.
func (t *Tray) SetIcon(ic icon.Icon) error {
	return t.command(func(rec *trayRecord) { rec.native.SetIcon(ic) })
}

// SetMenu replaces the tray context menu.
func (t *Tray) SetMenu(m menu.Menu) error {
	return t.command(func(rec *trayRecord) { rec.items = rec.native.SetMenu(m) })
}

// SetTooltip replaces the tray tooltip.
func (t *Tray) SetTooltip(tip string) error {
	return t.command(func(rec *trayRecord) { rec.native.SetTooltip(tip) })
}

// SetTitle replaces the tray title, shown next to the icon on
// platforms that support it.
func (t *Tray) SetTitle(title string) error {
	return t.command(func(rec *trayRecord) { rec.native.SetTitle(title) })
}

// UpdateItem applies updates to a custom item of the tray menu.
func (t *Tray) UpdateItem(id menu.ItemID, updates ...menu.Update) error {
	return t.command(func(rec *trayRecord) {
		item, ok := rec.items[id]
		if !ok {
			return
		}
		applyMenuUpdates(item, updates)
	})
}

// OnEvent registers a listener for this tray's events. The returned
// token removes it again via RemoveListener.
func (t *Tray) OnEvent(f func(TrayEvent)) (event.ListenerID, error) {
	store := t.cx.trays.listenersFor(t.id)
	if store == nil {
		return event.ListenerID{}, ErrTrayNotFound
	}
	return store.add(f), nil
}

// RemoveListener removes a listener registered with OnEvent.
func (t *Tray) RemoveListener(id event.ListenerID) {
	if store := t.cx.trays.listenersFor(t.id); store != nil {
		store.remove(id)
	}
}

// Destroy removes the tray. It blocks until the loop confirms.
func (t *Tray) Destroy() error {
	resp := make(chan error, 1)
	msg := destroyTrayMessage{id: t.id, resp: resp}
	if err := t.cx.sendOrRun(msg); err != nil {
		return err
	}
	return t.cx.awaitError(resp)
}

func applyMenuUpdates(item NativeMenuItem, updates []menu.Update) {
	for _, u := range updates {
		switch u := u.(type) {
		case menu.SetTitle:
			item.SetTitle(string(u))
		case menu.SetEnabled:
			item.SetEnabled(bool(u))
		case menu.SetSelected:
			item.SetSelected(bool(u))
		}
	}
}
