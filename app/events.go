// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/vitrine-app/vitrine/io/system"
)

// RunEvent is delivered to the callback passed to Run or RunIteration.
// It is one of ReadyEvent, ResumedEvent, MainEventsClearedEvent,
// WindowEvent, UserEvent, ExitRequestedEvent or ExitEvent.
type RunEvent interface {
	implementsRunEvent()
}

// ReadyEvent is the first event of a run, delivered once before any
// other event.
type ReadyEvent struct{}

// ResumedEvent is delivered by RunIteration at the start of every
// invocation after the first, marking the wake of an externally driven
// loop. Run never delivers it.
type ResumedEvent struct{}

// MainEventsClearedEvent is delivered after a batch of pending messages
// and native events has been fully processed.
type MainEventsClearedEvent struct{}

// WindowEvent wraps a per-window event for the callback. The same
// event was already delivered to the window's listeners.
type WindowEvent struct {
	Label string
	Event system.WindowEvent
}

// UserEvent carries a payload sent through an EventProxy.
type UserEvent struct {
	Data any
}

// ExitRequestedEvent is delivered when the loop is about to exit,
// either because the last window was destroyed or because exit was
// requested explicitly. Calling Response.Prevent keeps the loop
// running.
type ExitRequestedEvent struct {
	Response *ExitResponse
}

// ExitEvent is the last event of a run. The loop no longer accepts
// messages.
type ExitEvent struct{}

func (ReadyEvent) implementsRunEvent()             {}
func (ResumedEvent) implementsRunEvent()           {}
func (MainEventsClearedEvent) implementsRunEvent() {}
func (WindowEvent) implementsRunEvent()            {}
func (UserEvent) implementsRunEvent()              {}
func (ExitRequestedEvent) implementsRunEvent()     {}
func (ExitEvent) implementsRunEvent()              {}

// ExitResponse carries the veto for an ExitRequestedEvent. The first
// Prevent wins; later calls are no-ops.
type ExitResponse struct {
	c chan bool
}

func newExitResponse() *ExitResponse {
	return &ExitResponse{c: make(chan bool, 1)}
}

// Prevent vetoes the pending exit and keeps the loop running.
func (r *ExitResponse) Prevent() {
	select {
	case r.c <- true:
	default:
	}
}

func (r *ExitResponse) prevented() bool {
	select {
	case v := <-r.c:
		return v
	default:
		return false
	}
}

// IterationStats summarizes one RunIteration step.
type IterationStats struct {
	// WindowCount is the number of registered windows after the step.
	WindowCount int
}
