// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"sync"

	"github.com/vitrine-app/vitrine/io/event"
)

// listenerStore holds listeners of one event type. Registration and
// removal may happen on any thread; dispatch clones the handlers out
// under the lock and invokes them unlocked, so a handler may register
// or remove listeners without deadlocking.
type listenerStore[E any] struct {
	mu sync.Mutex
	m  map[event.ListenerID]func(E)
}

func newListenerStore[E any]() *listenerStore[E] {
	return &listenerStore[E]{m: make(map[event.ListenerID]func(E))}
}

func (s *listenerStore[E]) add(f func(E)) event.ListenerID {
	id := event.NewListenerID()
	s.mu.Lock()
	s.m[id] = f
	s.mu.Unlock()
	return id
}

func (s *listenerStore[E]) remove(id event.ListenerID) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

func (s *listenerStore[E]) snapshot() []func(E) {
	s.mu.Lock()
	fs := make([]func(E), 0, len(s.m))
	for _, f := range s.m {
		fs = append(fs, f)
	}
	s.mu.Unlock()
	return fs
}

func (s *listenerStore[E]) dispatch(ev E) {
	for _, f := range s.snapshot() {
		f(ev)
	}
}
