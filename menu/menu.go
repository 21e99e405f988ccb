// SPDX-License-Identifier: Unlicense OR MIT

// Package menu describes window and tray menus.
//
// A Menu is a plain description: building one has no native side
// effects. Menus become native objects when attached to a window or a
// tray, at which point custom items can be addressed by their ItemID
// for updates and click events.
package menu

import "sync/atomic"

// ItemID identifies a custom menu item across the process.
type ItemID uint32

var nextItemID atomic.Uint32

// NextItemID allocates a fresh item id. Ids are never reused.
func NextItemID() ItemID {
	return ItemID(nextItemID.Add(1))
}

// Menu is an ordered list of entries.
type Menu struct {
	Items []Entry
}

// Entry is one of Item, Native or Submenu.
type Entry interface {
	implementsEntry()
}

// Item is an application-defined menu item.
type Item struct {
	ID       ItemID
	Title    string
	Enabled  bool
	Selected bool
	// Accelerator is a platform-interpreted shortcut such as
	// "CmdOrCtrl+Q". Empty means none.
	Accelerator string
}

// NewItem returns an enabled item with a fresh id.
func NewItem(title string) *Item {
	return &Item{ID: NextItemID(), Title: title, Enabled: true}
}

// Native is a platform-provided menu item.
type Native struct {
	Kind NativeKind
}

// Submenu nests a menu under a title.
type Submenu struct {
	Title   string
	Enabled bool
	Menu    Menu
}

func (*Item) implementsEntry()   {}
func (Native) implementsEntry()  {}
func (Submenu) implementsEntry() {}

// NativeKind enumerates platform menu items. Platforms that lack a
// native equivalent ignore the entry.
type NativeKind uint8

const (
	Separator NativeKind = iota
	Quit
	CloseWindow
	Hide
	HideOthers
	ShowAll
	Minimize
	Zoom
	Copy
	Cut
	Paste
	Undo
	Redo
	SelectAll
	EnterFullScreen
	Services
)

// Update is a mutation applied to a live custom item. It is one of
// SetTitle, SetEnabled or SetSelected.
type Update interface {
	implementsUpdate()
}

// SetTitle replaces the item title.
type SetTitle string

// SetEnabled enables or disables the item.
type SetEnabled bool

// SetSelected sets the item check mark.
type SetSelected bool

func (SetTitle) implementsUpdate()    {}
func (SetEnabled) implementsUpdate()  {}
func (SetSelected) implementsUpdate() {}

// Event reports a click on a custom item.
type Event struct {
	ItemID ItemID
}

func (Event) ImplementsEvent() {}

// Walk visits every custom item in m, including items in submenus.
func (m Menu) Walk(f func(*Item)) {
	for _, entry := range m.Items {
		switch e := entry.(type) {
		case *Item:
			f(e)
		case Submenu:
			e.Menu.Walk(f)
		}
	}
}
