// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"log/slog"

	"github.com/vitrine-app/vitrine/app/internal/mainthread"
)

type loopState uint8

const (
	stateNotStarted loopState = iota
	stateRunning
	stateExiting
	stateStopped
)

// Runtime owns the event loop. It must be created and run on the same
// goroutine, which New pins to its OS thread; that thread becomes the
// GUI thread for all dispatch.
type Runtime struct {
	cx     *loopContext
	driver Driver

	// nativeEvents is nil once the driver closed its channel.
	nativeEvents <-chan NativeEvent
	callback     func(RunEvent)
	state        loopState
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	log *slog.Logger
}

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(c *runtimeConfig) { c.log = l }
}

// New builds a Runtime on the calling goroutine and locks it to its OS
// thread.
func New(d Driver, opts ...RuntimeOption) *Runtime {
	cfg := runtimeConfig{log: slog.Default()}
	for _, o := range opts {
		o(&cfg)
	}
	mainthread.Lock()
	return &Runtime{
		cx:           newLoopContext(d, cfg.log),
		driver:       d,
		nativeEvents: d.Events(),
	}
}

// Handle returns a thread-safe handle to the runtime. Handles stay
// valid across the whole run; operations after exit fail with
// ErrEventLoopClosed.
func (rt *Runtime) Handle() *Handle {
	return &Handle{cx: rt.cx}
}

var errAlreadyStarted = errors.New("app: runtime already started")

func (rt *Runtime) start(cb func(RunEvent)) error {
	if rt.state != stateNotStarted {
		return errAlreadyStarted
	}
	rt.callback = cb
	rt.state = stateRunning
	rt.callback(ReadyEvent{})
	return nil
}

// Run drives the event loop until exit. cb receives ReadyEvent first,
// then window, user and lifecycle events, and finally ExitEvent. Run
// must be called on the goroutine that called New.
func (rt *Runtime) Run(cb func(RunEvent)) error {
	if err := rt.start(cb); err != nil {
		return err
	}
	for rt.state == stateRunning {
		rt.wait()
		rt.drain()
	}
	rt.shutdown()
	return nil
}

// RunIteration processes the currently pending messages and native
// events without blocking, for callers embedding the loop in an
// externally driven cycle. The first call delivers ReadyEvent, later
// calls ResumedEvent. After the loop exits it fails with
// ErrEventLoopClosed.
func (rt *Runtime) RunIteration(cb func(RunEvent)) (IterationStats, error) {
	switch rt.state {
	case stateNotStarted:
		if err := rt.start(cb); err != nil {
			return IterationStats{}, err
		}
	case stateRunning:
		rt.callback = cb
		rt.callback(ResumedEvent{})
	default:
		return IterationStats{}, ErrEventLoopClosed
	}
	rt.drain()
	if rt.state == stateExiting {
		rt.shutdown()
	}
	return IterationStats{WindowCount: rt.cx.windows.len()}, nil
}

// wait blocks for the next message or native event.
func (rt *Runtime) wait() {
	if rt.nativeEvents == nil {
		rt.handleMessage(<-rt.cx.msgs)
		return
	}
	select {
	case msg := <-rt.cx.msgs:
		rt.handleMessage(msg)
	case ev, ok := <-rt.nativeEvents:
		if !ok {
			rt.nativeEvents = nil
			return
		}
		rt.handleNative(ev)
	}
}

// drain processes everything already queued, then reports the batch
// boundary with MainEventsClearedEvent.
func (rt *Runtime) drain() {
	for rt.state == stateRunning {
		if rt.nativeEvents == nil {
			select {
			case msg := <-rt.cx.msgs:
				rt.handleMessage(msg)
			default:
				rt.callback(MainEventsClearedEvent{})
				return
			}
			continue
		}
		select {
		case msg := <-rt.cx.msgs:
			rt.handleMessage(msg)
		case ev, ok := <-rt.nativeEvents:
			if !ok {
				rt.nativeEvents = nil
			} else {
				rt.handleNative(ev)
			}
		default:
			rt.callback(MainEventsClearedEvent{})
			return
		}
	}
}

// requestExit runs the exit veto. Without a veto the loop leaves the
// running state and shuts down after the current batch.
func (rt *Runtime) requestExit() {
	if rt.state != stateRunning {
		return
	}
	resp := newExitResponse()
	rt.callback(ExitRequestedEvent{Response: resp})
	if resp.prevented() {
		rt.cx.log.Debug("exit prevented")
		return
	}
	rt.state = stateExiting
}

// shutdown tears down the remaining windows and trays, delivers
// ExitEvent and stops dispatch. Messages still queued are dropped;
// senders blocked on responses get ErrFailedToReceiveMessage.
func (rt *Runtime) shutdown() {
	rt.state = stateExiting
	cx := rt.cx
	for _, rec := range cx.windows.snapshot() {
		if rec.native != nil {
			native := rec.native
			rec.native = nil
			rec.webview = nil
			native.Destroy()
		}
		cx.windows.remove(rec.id)
	}
	for _, rec := range cx.trays.snapshot() {
		if rec.native != nil {
			rec.native.Destroy()
			rec.native = nil
		}
		cx.trays.remove(rec.id)
	}
	rt.callback(ExitEvent{})
	cx.close()
	rt.state = stateStopped
	rt.driver.Stop()
}
