// SPDX-License-Identifier: Unlicense OR MIT

package app

// message is the dispatch protocol between application threads and the
// event loop. Commands are fire-and-forget; queries and creation
// requests carry a single-use buffered response channel and the loop
// answers each exactly once.
type message interface {
	implementsMessage()
}

// taskMessage runs an arbitrary closure on the GUI thread.
type taskMessage struct {
	f func()
}

// windowCommand mutates a window. Dropped with a debug log when the
// window is gone.
type windowCommand struct {
	id WindowID
	f  func(*windowRecord)
}

// windowQuery reads window state. The loop calls f with nil when the
// window is not registered or already closed; f must send exactly one
// response either way.
type windowQuery struct {
	id WindowID
	f  func(*windowRecord)
}

// webviewCommand mutates the webview of a window. Dropped when the
// window or its webview is gone.
type webviewCommand struct {
	id WindowID
	f  func(NativeWebview)
}

// createWindowMessage builds and registers a window. The loop answers
// with nil or the creation error.
type createWindowMessage struct {
	id    WindowID
	label string
	opts  WindowOptions
	resp  chan error
}

// createWebviewMessage attaches a webview to an existing window.
// Fire-and-forget; failures are logged.
type createWebviewMessage struct {
	id   WindowID
	opts WebviewOptions
}

// closeWindowMessage destroys a window without consulting close
// listeners. Always routed through the loop, never the fast path,
// because teardown changes loop bookkeeping.
type closeWindowMessage struct {
	id WindowID
}

// trayCommand mutates a tray. Dropped when the tray is gone.
type trayCommand struct {
	id TrayID
	f  func(*trayRecord)
}

// createTrayMessage builds and registers a tray.
type createTrayMessage struct {
	id   TrayID
	opts TrayOptions
	resp chan error
}

// destroyTrayMessage removes a tray.
type destroyTrayMessage struct {
	id   TrayID
	resp chan error
}

// userEventMessage carries an EventProxy payload to the callback.
type userEventMessage struct {
	data any
}

// exitMessage asks the loop to exit, subject to the ExitRequested
// veto.
type exitMessage struct{}

func (taskMessage) implementsMessage()          {}
func (windowCommand) implementsMessage()        {}
func (windowQuery) implementsMessage()          {}
func (webviewCommand) implementsMessage()       {}
func (createWindowMessage) implementsMessage()  {}
func (createWebviewMessage) implementsMessage() {}
func (closeWindowMessage) implementsMessage()   {}
func (trayCommand) implementsMessage()          {}
func (createTrayMessage) implementsMessage()    {}
func (destroyTrayMessage) implementsMessage()   {}
func (userEventMessage) implementsMessage()     {}
func (exitMessage) implementsMessage()          {}
