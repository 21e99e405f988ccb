// SPDX-License-Identifier: Unlicense OR MIT

package app

import "errors"

// Errors returned by dispatch operations. Callers match them with
// errors.Is; wrapped forms carry the offending label or id.
var (
	// ErrEventLoopClosed is returned by sends that arrive after the
	// event loop stopped accepting messages.
	ErrEventLoopClosed = errors.New("app: event loop closed")

	// ErrFailedToReceiveMessage is returned by getters whose response
	// never arrived, because the loop exited while the request was in
	// flight.
	ErrFailedToReceiveMessage = errors.New("app: no response from event loop")

	// ErrWindowNotFound is returned when the addressed window is not
	// registered or its native resources are already gone.
	ErrWindowNotFound = errors.New("app: window not found")

	// ErrNoWebview is returned by webview operations on a window that
	// was created without one.
	ErrNoWebview = errors.New("app: window has no webview")

	// ErrTrayNotFound is returned when the addressed tray is not
	// registered or already destroyed.
	ErrTrayNotFound = errors.New("app: tray not found")

	// ErrLabelInUse rejects window creation with a label that is
	// already registered.
	ErrLabelInUse = errors.New("app: window label already in use")
)
