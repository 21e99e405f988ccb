// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"sync"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/icon"
	"github.com/vitrine-app/vitrine/menu"
)

// Tray is an in-memory system tray.
type Tray struct {
	d  *Driver
	id app.TrayID

	mu      sync.Mutex
	icon    icon.Icon
	tooltip string
	title   string
	items   map[menu.ItemID]*MenuItem
}

func (t *Tray) SetIcon(ic icon.Icon) {
	t.mu.Lock()
	t.icon = ic
	t.mu.Unlock()
}

func (t *Tray) SetMenu(m menu.Menu) map[menu.ItemID]app.NativeMenuItem {
	items := make(map[menu.ItemID]*MenuItem)
	m.Walk(func(it *menu.Item) {
		items[it.ID] = &MenuItem{title: it.Title, enabled: it.Enabled, selected: it.Selected}
	})
	native := make(map[menu.ItemID]app.NativeMenuItem, len(items))
	for id, it := range items {
		native[id] = it
	}
	t.mu.Lock()
	t.items = items
	t.mu.Unlock()
	return native
}

func (t *Tray) SetTooltip(tip string) {
	t.mu.Lock()
	t.tooltip = tip
	t.mu.Unlock()
}

func (t *Tray) SetTitle(title string) {
	t.mu.Lock()
	t.title = title
	t.mu.Unlock()
}

func (t *Tray) Destroy() {
	t.d.mu.Lock()
	delete(t.d.trays, t.id)
	t.d.mu.Unlock()
}

// Tooltip returns the current tooltip.
func (t *Tray) Tooltip() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tooltip
}

// MenuItemState returns the current state of a custom menu item, or
// false when the item is unknown.
func (t *Tray) MenuItemState(id menu.ItemID) (MenuItemState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	it, ok := t.items[id]
	if !ok {
		return MenuItemState{}, false
	}
	return it.state(), true
}

// MenuItem is an in-memory native menu item.
type MenuItem struct {
	mu       sync.Mutex
	title    string
	enabled  bool
	selected bool
}

func (it *MenuItem) SetTitle(t string) {
	it.mu.Lock()
	it.title = t
	it.mu.Unlock()
}

func (it *MenuItem) SetEnabled(e bool) {
	it.mu.Lock()
	it.enabled = e
	it.mu.Unlock()
}

func (it *MenuItem) SetSelected(s bool) {
	it.mu.Lock()
	it.selected = s
	it.mu.Unlock()
}

// MenuItemState is a snapshot of a menu item for assertions.
type MenuItemState struct {
	Title    string
	Enabled  bool
	Selected bool
}

func (it *MenuItem) state() MenuItemState {
	it.mu.Lock()
	defer it.mu.Unlock()
	return MenuItemState{Title: it.title, Enabled: it.enabled, Selected: it.selected}
}
