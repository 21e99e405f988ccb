// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the window event taxonomy delivered to
// per-window listeners and to the application callback.
package system

import (
	"github.com/vitrine-app/vitrine/io/event"
	"github.com/vitrine-app/vitrine/unit"
)

// WindowEvent is the interface implemented by all per-window events.
type WindowEvent interface {
	event.Event
	ImplementsWindowEvent()
}

// ResizedEvent reports the new inner size of a window.
type ResizedEvent struct {
	Size unit.PhysicalSize
}

// MovedEvent reports the new outer position of a window.
type MovedEvent struct {
	Position unit.PhysicalPosition
}

// CloseRequestedEvent is delivered when a close of the window was
// requested but not yet performed. Any listener may call
// Signal.Prevent to veto the close; otherwise the window is destroyed
// after all listeners and the application callback have run.
type CloseRequestedEvent struct {
	Signal *CloseSignal
}

// DestroyedEvent is the last event delivered for a window. The native
// resources are gone and the window id is no longer registered.
type DestroyedEvent struct{}

// FocusedEvent reports a change of keyboard focus.
type FocusedEvent struct {
	Focused bool
}

// ScaleFactorChangedEvent reports a DPI change, usually from the
// window moving to a different monitor.
type ScaleFactorChangedEvent struct {
	ScaleFactor float64
	NewSize     unit.PhysicalSize
}

// ThemeChangedEvent reports a change of the system theme.
type ThemeChangedEvent struct {
	Theme Theme
}

// FileDropEvent reports files dragged over or dropped onto a window.
type FileDropEvent struct {
	Kind  FileDropKind
	Paths []string
}

// FileDropKind is the phase of a file drag operation.
type FileDropKind uint8

const (
	// FileDropHovered means files are hovering over the window.
	FileDropHovered FileDropKind = iota
	// FileDropDropped means files were dropped onto the window.
	FileDropDropped
	// FileDropCancelled means the drag left the window without a drop.
	FileDropCancelled
)

// Theme is the system appearance.
type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// CloseSignal carries the veto for a CloseRequestedEvent. It is shared
// by every listener of the event; the first Prevent wins and later
// calls are no-ops.
type CloseSignal struct {
	c chan bool
}

// NewCloseSignal returns a signal ready to hand to listeners.
func NewCloseSignal() *CloseSignal {
	return &CloseSignal{c: make(chan bool, 1)}
}

// Prevent vetoes the pending close.
func (s *CloseSignal) Prevent() {
	select {
	case s.c <- true:
	default:
	}
}

// Prevented reports whether any listener vetoed the close. It consumes
// the signal and is called once, after all listeners have run.
func (s *CloseSignal) Prevented() bool {
	select {
	case v := <-s.c:
		return v
	default:
		return false
	}
}

func (ResizedEvent) ImplementsEvent()            {}
func (ResizedEvent) ImplementsWindowEvent()      {}
func (MovedEvent) ImplementsEvent()              {}
func (MovedEvent) ImplementsWindowEvent()        {}
func (CloseRequestedEvent) ImplementsEvent()     {}
func (CloseRequestedEvent) ImplementsWindowEvent() {}
func (DestroyedEvent) ImplementsEvent()          {}
func (DestroyedEvent) ImplementsWindowEvent()    {}
func (FocusedEvent) ImplementsEvent()            {}
func (FocusedEvent) ImplementsWindowEvent()      {}
func (ScaleFactorChangedEvent) ImplementsEvent() {}
func (ScaleFactorChangedEvent) ImplementsWindowEvent() {}
func (ThemeChangedEvent) ImplementsEvent()       {}
func (ThemeChangedEvent) ImplementsWindowEvent() {}
func (FileDropEvent) ImplementsEvent()           {}
func (FileDropEvent) ImplementsWindowEvent()     {}
