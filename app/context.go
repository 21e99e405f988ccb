// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vitrine-app/vitrine/app/internal/mainthread"
)

// loopContext is the shared dispatch state between the event loop and
// the facades handed to application threads. It is safe to use from
// any thread; the main field is dereferenced on the GUI thread only.
type loopContext struct {
	mainTID uint64
	// msgs is the pump output, read only by the loop.
	msgs chan message
	// done is closed when the loop stops accepting messages. Response
	// waits select against it so they fail instead of blocking forever.
	done chan struct{}
	log  *slog.Logger

	// qmu guards queue and closed. Senders append and return; the pump
	// goroutine moves messages to msgs in order. The queue is unbounded
	// so dispatch never blocks the sender, in particular not a
	// GUI-thread listener posting a close or exit while application
	// threads are flooding the loop.
	qmu    sync.Mutex
	qcond  *sync.Cond
	queue  []message
	closed bool

	nextWindowID atomic.Uint64
	nextTrayID   atomic.Uint64

	windows *windowRegistry
	trays   *trayManager

	// main is the state only the GUI thread may touch. The fast path
	// checks thread identity before dereferencing it.
	main *mainThreadState
}

// mainThreadState is what a message handler needs besides the loop
// callback. Fast-path execution uses it directly, without a channel
// round trip, which also makes dispatch reentrant from within
// listeners and the run callback.
type mainThreadState struct {
	driver Driver
	cx     *loopContext
}

func newLoopContext(d Driver, log *slog.Logger) *loopContext {
	cx := &loopContext{
		mainTID: mainthread.Current(),
		msgs:    make(chan message, 64),
		done:    make(chan struct{}),
		log:     log,
		windows: newWindowRegistry(),
		trays:   newTrayManager(),
	}
	cx.qcond = sync.NewCond(&cx.qmu)
	cx.main = &mainThreadState{driver: d, cx: cx}
	go cx.pump()
	return cx
}

// onMainThread reports whether the calling goroutine runs on the GUI
// thread. Platforms without thread identity report false, disabling
// the fast path but never its correctness.
func (cx *loopContext) onMainThread() bool {
	return cx.mainTID != 0 && mainthread.Current() == cx.mainTID
}

// runThreaded calls f with the main-thread state when already on the
// GUI thread, and with nil otherwise.
func (cx *loopContext) runThreaded(f func(*mainThreadState)) {
	if cx.onMainThread() {
		f(cx.main)
	} else {
		f(nil)
	}
}

// send queues msg for the loop without blocking. It fails with
// ErrEventLoopClosed once the loop has stopped.
func (cx *loopContext) send(msg message) error {
	cx.qmu.Lock()
	if cx.closed {
		cx.qmu.Unlock()
		return ErrEventLoopClosed
	}
	cx.queue = append(cx.queue, msg)
	cx.qcond.Signal()
	cx.qmu.Unlock()
	return nil
}

// pump moves queued messages to the loop's channel in FIFO order.
func (cx *loopContext) pump() {
	for {
		cx.qmu.Lock()
		for len(cx.queue) == 0 && !cx.closed {
			cx.qcond.Wait()
		}
		if cx.closed {
			cx.qmu.Unlock()
			return
		}
		msg := cx.queue[0]
		cx.queue = cx.queue[1:]
		cx.qmu.Unlock()
		select {
		case cx.msgs <- msg:
		case <-cx.done:
			return
		}
	}
}

// close stops dispatch. Messages still queued are dropped.
func (cx *loopContext) close() {
	close(cx.done)
	cx.qmu.Lock()
	cx.closed = true
	cx.queue = nil
	cx.qcond.Signal()
	cx.qmu.Unlock()
}

// sendOrRun executes msg directly when called on the GUI thread and
// queues it otherwise. Only messages that do not touch loop control
// flow may go through here; close, exit and user events always queue.
func (cx *loopContext) sendOrRun(msg message) error {
	if cx.onMainThread() {
		handleUserMessage(cx.main, msg)
		return nil
	}
	return cx.send(msg)
}

// awaitError collects a response, giving up when the loop stops with
// the request still in flight.
func (cx *loopContext) awaitError(resp <-chan error) error {
	select {
	case err := <-resp:
		return err
	case <-cx.done:
		return ErrFailedToReceiveMessage
	}
}

func (cx *loopContext) allocWindowID() WindowID {
	return WindowID(cx.nextWindowID.Add(1))
}

func (cx *loopContext) allocTrayID() TrayID {
	return TrayID(cx.nextTrayID.Add(1))
}
