// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

type nullDriver struct {
	events chan NativeEvent
}

func newNullDriver() *nullDriver {
	return &nullDriver{events: make(chan NativeEvent)}
}

func (d *nullDriver) CreateWindow(WindowOptions) (NativeWindow, error) {
	return nil, errors.New("null driver")
}

func (d *nullDriver) CreateWebview(NativeWindow, WebviewOptions) (NativeWebview, error) {
	return nil, errors.New("null driver")
}

func (d *nullDriver) CreateTray(TrayID, TrayOptions) (NativeTray, error) {
	return nil, errors.New("null driver")
}

func (d *nullDriver) Events() <-chan NativeEvent { return d.events }
func (d *nullDriver) Stop()                      {}

func newTestContext() *loopContext {
	return newLoopContext(newNullDriver(), slog.Default())
}

func TestSendAfterClose(t *testing.T) {
	cx := newTestContext()
	cx.close()
	if err := cx.send(userEventMessage{data: 1}); !errors.Is(err, ErrEventLoopClosed) {
		t.Fatalf("err = %v", err)
	}
}

func TestSendQueues(t *testing.T) {
	cx := newTestContext()
	if err := cx.send(taskMessage{f: func() {}}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-cx.msgs:
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestSendNeverBlocks(t *testing.T) {
	cx := newTestContext()
	// No reader on cx.msgs; every send must still return immediately.
	for i := 0; i < 10000; i++ {
		if err := cx.send(userEventMessage{data: i}); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAwaitErrorDelivered(t *testing.T) {
	cx := newTestContext()
	resp := make(chan error, 1)
	resp <- ErrWindowNotFound
	if err := cx.awaitError(resp); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAwaitErrorLoopGone(t *testing.T) {
	cx := newTestContext()
	cx.close()
	resp := make(chan error, 1)
	if err := cx.awaitError(resp); !errors.Is(err, ErrFailedToReceiveMessage) {
		t.Fatalf("err = %v", err)
	}
}

func TestIDAllocation(t *testing.T) {
	cx := newTestContext()
	if a, b := cx.allocWindowID(), cx.allocWindowID(); a == b {
		t.Errorf("window ids collide: %d", a)
	}
	if a, b := cx.allocTrayID(), cx.allocTrayID(); a == b {
		t.Errorf("tray ids collide: %d", a)
	}
}

func TestExitResponse(t *testing.T) {
	r := newExitResponse()
	if r.prevented() {
		t.Error("fresh response prevented")
	}
	r = newExitResponse()
	r.Prevent()
	r.Prevent()
	if !r.prevented() {
		t.Error("prevent not observed")
	}
}
