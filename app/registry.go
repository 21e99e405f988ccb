// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sort"
	"sync"

	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
)

// windowRecord is the loop-side state of one window. The native,
// webview, menuItems and peers fields are touched on the GUI thread
// only; label and id are immutable and the listener stores carry their
// own locks, so registry readers on other threads may hand them out.
type windowRecord struct {
	id    WindowID
	label string

	// nativeID outlives native: teardown nils native first and the
	// driver's destroy confirmation is routed by native id afterwards.
	nativeID  NativeWindowID
	native    NativeWindow
	webview   NativeWebview
	menuItems map[menu.ItemID]NativeMenuItem

	// peers holds the labels of the other windows alive when this
	// record last synced, so applications can observe stale references
	// being dropped on destruction.
	peers map[string]struct{}

	windowListeners *listenerStore[system.WindowEvent]
	menuListeners   *listenerStore[menu.Event]
}

func newWindowRecord(id WindowID, label string) *windowRecord {
	return &windowRecord{
		id:              id,
		label:           label,
		peers:           make(map[string]struct{}),
		windowListeners: newListenerStore[system.WindowEvent](),
		menuListeners:   newListenerStore[menu.Event](),
	}
}

func (rec *windowRecord) forgetPeer(label string) {
	delete(rec.peers, label)
}

func (rec *windowRecord) peerLabels() []string {
	labels := make([]string, 0, len(rec.peers))
	for l := range rec.peers {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// windowRegistry maps window ids to records and native ids back to
// window ids. Structural mutation happens on the GUI thread only;
// other threads read through the locked accessors and never touch the
// native fields of a record.
type windowRegistry struct {
	mu       sync.Mutex
	windows  map[WindowID]*windowRecord
	byNative map[NativeWindowID]WindowID
	order    []WindowID
}

func newWindowRegistry() *windowRegistry {
	return &windowRegistry{
		windows:  make(map[WindowID]*windowRecord),
		byNative: make(map[NativeWindowID]WindowID),
	}
}

// insert registers rec under its id and native id. It fails when the
// label is already taken, leaving the registry untouched.
func (r *windowRegistry) insert(rec *windowRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.windows {
		if other.label == rec.label {
			return ErrLabelInUse
		}
	}
	r.windows[rec.id] = rec
	r.byNative[rec.nativeID] = rec.id
	r.order = append(r.order, rec.id)
	return nil
}

// get returns the record for id, or nil. GUI thread only: the caller
// will touch native fields.
func (r *windowRegistry) get(id WindowID) *windowRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows[id]
}

// remove unregisters id and returns the removed record, or nil.
func (r *windowRegistry) remove(id WindowID) *windowRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.windows[id]
	if !ok {
		return nil
	}
	delete(r.windows, id)
	delete(r.byNative, rec.nativeID)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return rec
}

// byNativeID resolves a driver window handle.
func (r *windowRegistry) byNativeID(nid NativeWindowID) (WindowID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byNative[nid]
	return id, ok
}

// firstID returns the earliest registered window, the fallback target
// for menu events whose source window cannot be resolved.
func (r *windowRegistry) firstID() (WindowID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.order) == 0 {
		return 0, false
	}
	return r.order[0], true
}

func (r *windowRegistry) findByLabel(label string) (WindowID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.windows {
		if rec.label == label {
			return id, true
		}
	}
	return 0, false
}

// labels returns the registered labels, sorted. Safe from any thread.
func (r *windowRegistry) labels() []string {
	r.mu.Lock()
	labels := make([]string, 0, len(r.windows))
	for _, rec := range r.windows {
		labels = append(labels, rec.label)
	}
	r.mu.Unlock()
	sort.Strings(labels)
	return labels
}

func (r *windowRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// snapshot returns the current records. GUI thread only.
func (r *windowRegistry) snapshot() []*windowRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := make([]*windowRecord, 0, len(r.order))
	for _, id := range r.order {
		recs = append(recs, r.windows[id])
	}
	return recs
}

// windowListenersFor returns the listener store for id, usable from
// any thread, or nil when the window is unknown.
func (r *windowRegistry) windowListenersFor(id WindowID) *listenerStore[system.WindowEvent] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.windows[id]; ok {
		return rec.windowListeners
	}
	return nil
}

func (r *windowRegistry) menuListenersFor(id WindowID) *listenerStore[menu.Event] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.windows[id]; ok {
		return rec.menuListeners
	}
	return nil
}
