// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/vitrine-app/vitrine/io/event"
)

// Handle is the cloneable, thread-safe entry point to a running
// Runtime. Every facade handed out by a Handle shares the same loop
// context, so all of them observe the same window set.
type Handle struct {
	cx *loopContext
}

// CreateWindow builds a window with the given unique label, blocking
// until the loop confirms. On the GUI thread the window is created
// immediately, which keeps creation usable from within event
// callbacks.
func (h *Handle) CreateWindow(label string, opts ...Option) (*Window, error) {
	wopts := defaultWindowOptions()
	for _, o := range opts {
		o(&wopts)
	}
	id := h.cx.allocWindowID()
	resp := make(chan error, 1)
	msg := createWindowMessage{id: id, label: label, opts: wopts, resp: resp}
	if err := h.cx.sendOrRun(msg); err != nil {
		return nil, err
	}
	if err := h.cx.awaitError(resp); err != nil {
		return nil, err
	}
	return &Window{id: id, label: label, cx: h.cx}, nil
}

// Window returns a facade for the window with the given label.
func (h *Handle) Window(label string) (*Window, bool) {
	id, ok := h.cx.windows.findByLabel(label)
	if !ok {
		return nil, false
	}
	return &Window{id: id, label: label, cx: h.cx}, true
}

// Windows returns the labels of all registered windows, sorted.
func (h *Handle) Windows() []string {
	return h.cx.windows.labels()
}

// CreateProxy returns a sender for user events.
func (h *Handle) CreateProxy() *EventProxy {
	return &EventProxy{cx: h.cx}
}

// RunOnMain executes f on the GUI thread. Called from the GUI thread
// it runs f synchronously; otherwise f is queued and runs in order
// with other dispatched work.
func (h *Handle) RunOnMain(f func()) error {
	return h.cx.sendOrRun(taskMessage{f: f})
}

// OnMainThread reports whether the caller runs on the GUI thread.
func (h *Handle) OnMainThread() bool {
	return h.cx.onMainThread()
}

// RunThreaded calls f with main-thread state when the caller is
// already on the GUI thread, and with nil otherwise. It lets callers
// take a zero-cost path when thread affinity happens to line up.
func (h *Handle) RunThreaded(f func(*MainThread)) {
	h.cx.runThreaded(func(ms *mainThreadState) {
		if ms == nil {
			f(nil)
			return
		}
		f(&MainThread{ms: ms})
	})
}

// MainThread exposes state that may only be touched on the GUI
// thread. Values must not be retained past the RunThreaded call.
type MainThread struct {
	ms *mainThreadState
}

// Driver returns the platform driver.
func (mt *MainThread) Driver() Driver {
	return mt.ms.driver
}

// SystemTray builds a system tray, blocking until the loop confirms.
func (h *Handle) SystemTray(opts TrayOptions) (*Tray, error) {
	id := h.cx.allocTrayID()
	resp := make(chan error, 1)
	msg := createTrayMessage{id: id, opts: opts, resp: resp}
	if err := h.cx.sendOrRun(msg); err != nil {
		return nil, err
	}
	if err := h.cx.awaitError(resp); err != nil {
		return nil, err
	}
	return &Tray{id: id, cx: h.cx}, nil
}

// OnTrayEvent registers a global listener receiving the events of
// every tray, alongside the tray's own listeners.
func (h *Handle) OnTrayEvent(f func(TrayID, TrayEvent)) event.ListenerID {
	return h.cx.trays.global.add(func(g globalTrayEvent) { f(g.tray, g.ev) })
}

// RemoveTrayListener removes a listener registered with OnTrayEvent.
func (h *Handle) RemoveTrayListener(id event.ListenerID) {
	h.cx.trays.global.remove(id)
}

// RequestExit asks the loop to exit. The run callback receives an
// ExitRequestedEvent and may prevent it. Called from the GUI thread
// the request is queued and handled after the current event completes.
func (h *Handle) RequestExit() error {
	return h.cx.send(exitMessage{})
}
