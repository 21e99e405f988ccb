// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryInsertRejectsDuplicateLabel(t *testing.T) {
	r := newWindowRegistry()
	a := newWindowRecord(1, "main")
	a.nativeID = 11
	if err := r.insert(a); err != nil {
		t.Fatal(err)
	}
	dup := newWindowRecord(2, "main")
	dup.nativeID = 12
	if err := r.insert(dup); !errors.Is(err, ErrLabelInUse) {
		t.Fatalf("err = %v", err)
	}
	if got := r.len(); got != 1 {
		t.Errorf("len = %d after rejected insert", got)
	}
	if _, ok := r.byNativeID(12); ok {
		t.Error("rejected record reachable by native id")
	}
}

func TestRegistryLookups(t *testing.T) {
	r := newWindowRegistry()
	for i, label := range []string{"b", "a", "c"} {
		rec := newWindowRecord(WindowID(i+1), label)
		rec.nativeID = NativeWindowID(i + 100)
		if err := r.insert(rec); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, r.labels()); diff != "" {
		t.Errorf("labels (-want +got):\n%s", diff)
	}
	if id, ok := r.findByLabel("a"); !ok || id != 2 {
		t.Errorf("findByLabel(a) = %v, %v", id, ok)
	}
	if _, ok := r.findByLabel("nope"); ok {
		t.Error("found unknown label")
	}
	if id, ok := r.byNativeID(101); !ok || id != 2 {
		t.Errorf("byNativeID(101) = %v, %v", id, ok)
	}
	// First id follows insertion order, not label order.
	if id, ok := r.firstID(); !ok || id != 1 {
		t.Errorf("firstID = %v, %v", id, ok)
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newWindowRegistry()
	rec := newWindowRecord(1, "main")
	rec.nativeID = 11
	if err := r.insert(rec); err != nil {
		t.Fatal(err)
	}
	if got := r.remove(1); got != rec {
		t.Fatalf("remove returned %v", got)
	}
	if r.remove(1) != nil {
		t.Error("second remove returned a record")
	}
	if _, ok := r.byNativeID(11); ok {
		t.Error("native id still mapped after remove")
	}
	if _, ok := r.firstID(); ok {
		t.Error("firstID on empty registry")
	}
	// The label is free again.
	again := newWindowRecord(2, "main")
	again.nativeID = 12
	if err := r.insert(again); err != nil {
		t.Fatal(err)
	}
}

func TestRecordPeers(t *testing.T) {
	rec := newWindowRecord(1, "main")
	rec.peers["a"] = struct{}{}
	rec.peers["b"] = struct{}{}
	if diff := cmp.Diff([]string{"a", "b"}, rec.peerLabels()); diff != "" {
		t.Errorf("peers (-want +got):\n%s", diff)
	}
	rec.forgetPeer("a")
	if diff := cmp.Diff([]string{"b"}, rec.peerLabels()); diff != "" {
		t.Errorf("peers (-want +got):\n%s", diff)
	}
}
