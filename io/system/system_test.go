// SPDX-License-Identifier: Unlicense OR MIT

package system

import "testing"

func TestCloseSignalDefault(t *testing.T) {
	s := NewCloseSignal()
	if s.Prevented() {
		t.Error("fresh signal reports prevented")
	}
}

func TestCloseSignalPrevent(t *testing.T) {
	s := NewCloseSignal()
	s.Prevent()
	if !s.Prevented() {
		t.Error("prevent not observed")
	}
	// Prevented consumes the signal.
	if s.Prevented() {
		t.Error("second read still prevented")
	}
}

func TestCloseSignalPreventIdempotent(t *testing.T) {
	s := NewCloseSignal()
	for i := 0; i < 3; i++ {
		s.Prevent()
	}
	if !s.Prevented() {
		t.Error("prevent not observed")
	}
}
