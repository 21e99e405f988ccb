// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types shared by the event delivery machinery.
package event

import "github.com/google/uuid"

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// ListenerID identifies one registered listener. Tokens are opaque and
// process-unique; callers keep them only to remove the listener later.
type ListenerID uuid.UUID

// NewListenerID returns a fresh listener token.
func NewListenerID() ListenerID {
	return ListenerID(uuid.New())
}

func (id ListenerID) String() string {
	return uuid.UUID(id).String()
}
