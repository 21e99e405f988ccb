// SPDX-License-Identifier: Unlicense OR MIT

package app_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vitrine-app/vitrine/app"
	"github.com/vitrine-app/vitrine/app/headless"
	"github.com/vitrine-app/vitrine/io/system"
	"github.com/vitrine-app/vitrine/menu"
	"github.com/vitrine-app/vitrine/unit"
)

const timeout = 5 * time.Second

// fixture runs a Runtime on its own goroutine and records every
// callback event. An optional interceptor runs inline on the GUI
// thread before the event is recorded, for tests that must react
// during delivery, such as preventing an exit.
type fixture struct {
	t      *testing.T
	d      *headless.Driver
	h      *app.Handle
	events chan app.RunEvent
	done   chan struct{}
}

func start(t *testing.T, interceptor func(app.RunEvent)) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		d:      headless.New(),
		events: make(chan app.RunEvent, 1024),
		done:   make(chan struct{}),
	}
	handles := make(chan *app.Handle)
	go func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		rt := app.New(f.d, app.WithLogger(log))
		handles <- rt.Handle()
		rt.Run(func(ev app.RunEvent) {
			if interceptor != nil {
				interceptor(ev)
			}
			f.events <- ev
		})
		close(f.done)
	}()
	f.h = <-handles
	return f
}

// sync waits until the loop has processed everything queued before it.
func (f *fixture) sync() {
	f.t.Helper()
	done := make(chan struct{})
	if err := f.h.RunOnMain(func() { close(done) }); err != nil {
		f.t.Fatalf("sync: %v", err)
	}
	select {
	case <-done:
	case <-time.After(timeout):
		f.t.Fatal("sync: loop stalled")
	}
}

func (f *fixture) createWindow(label string, opts ...app.Option) *app.Window {
	f.t.Helper()
	w, err := f.h.CreateWindow(label, opts...)
	if err != nil {
		f.t.Fatalf("create %q: %v", label, err)
	}
	return w
}

// waitEvent consumes recorded events until match accepts one.
func (f *fixture) waitEvent(match func(app.RunEvent) bool) app.RunEvent {
	f.t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case ev := <-f.events:
			if match(ev) {
				return ev
			}
		case <-deadline:
			f.t.Fatal("event did not arrive")
		}
	}
}

func (f *fixture) waitDestroyed(label string) {
	f.t.Helper()
	f.waitEvent(func(ev app.RunEvent) bool {
		we, ok := ev.(app.WindowEvent)
		if !ok || we.Label != label {
			return false
		}
		_, ok = we.Event.(system.DestroyedEvent)
		return ok
	})
}

func (f *fixture) waitDone() {
	f.t.Helper()
	select {
	case <-f.done:
	case <-time.After(timeout):
		f.t.Fatal("loop did not exit")
	}
}

// drained returns all recorded events after the loop exited.
func (f *fixture) drained() []app.RunEvent {
	f.waitDone()
	var evs []app.RunEvent
	for {
		select {
		case ev := <-f.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func TestCreateWindowAndGetters(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main", app.Title("Demo"))

	if got, err := w.Title(); err != nil || got != "Demo" {
		t.Errorf("Title = %q, %v", got, err)
	}
	if got, err := w.InnerSize(); err != nil || got != (unit.PhysicalSize{Width: 800, Height: 600}) {
		t.Errorf("InnerSize = %v, %v", got, err)
	}
	if got, err := w.ScaleFactor(); err != nil || got != 1 {
		t.Errorf("ScaleFactor = %v, %v", got, err)
	}
	if got, err := w.IsVisible(); err != nil || !got {
		t.Errorf("IsVisible = %v, %v", got, err)
	}
	if diff := cmp.Diff([]string{"main"}, f.h.Windows()); diff != "" {
		t.Errorf("windows (-want +got):\n%s", diff)
	}
	if got, ok := f.h.Window("main"); !ok || got.Label() != "main" {
		t.Errorf("Window(main) = %v, %v", got, ok)
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	evs := f.drained()
	if len(f.h.Windows()) != 0 {
		t.Errorf("windows after exit: %v", f.h.Windows())
	}
	exitReqs, destroys := 0, 0
	for _, ev := range evs {
		switch e := ev.(type) {
		case app.ExitRequestedEvent:
			exitReqs++
		case app.WindowEvent:
			if _, ok := e.Event.(system.DestroyedEvent); ok {
				destroys++
			}
		}
	}
	if exitReqs != 1 {
		t.Errorf("ExitRequested delivered %d times", exitReqs)
	}
	if destroys != 1 {
		t.Errorf("Destroyed delivered %d times", destroys)
	}

	// The loop is gone: dispatch fails instead of blocking.
	if _, err := w.Title(); !errors.Is(err, app.ErrEventLoopClosed) {
		t.Errorf("getter after exit: %v", err)
	}
	if err := f.h.CreateProxy().Send("x"); !errors.Is(err, app.ErrEventLoopClosed) {
		t.Errorf("proxy send after exit: %v", err)
	}
}

func TestDuplicateLabelRejected(t *testing.T) {
	f := start(t, nil)
	f.createWindow("main")
	if _, err := f.h.CreateWindow("main"); !errors.Is(err, app.ErrLabelInUse) {
		t.Fatalf("err = %v", err)
	}
	// The failed creation left no trace.
	if diff := cmp.Diff([]string{"main"}, f.h.Windows()); diff != "" {
		t.Errorf("windows (-want +got):\n%s", diff)
	}
	f.h.RequestExit()
	f.waitDone()
}

func TestGetterOnDestroyedWindow(t *testing.T) {
	f := start(t, nil)
	keep := f.createWindow("keep")
	gone := f.createWindow("gone")
	if err := gone.Close(); err != nil {
		t.Fatal(err)
	}
	f.waitDestroyed("gone")
	if _, err := gone.Title(); !errors.Is(err, app.ErrWindowNotFound) {
		t.Errorf("getter on destroyed window: %v", err)
	}
	// Fire-and-forget setters are dropped silently.
	if err := gone.SetTitle("zombie"); err != nil {
		t.Errorf("setter on destroyed window: %v", err)
	}
	if _, err := keep.Title(); err != nil {
		t.Errorf("live window affected: %v", err)
	}
	keep.Close()
	f.waitDone()
}

func TestTaskOrdering(t *testing.T) {
	f := start(t, nil)
	const n = 100
	var got []int
	done := make(chan struct{})
	for i := 0; i < n; i++ {
		i := i
		if err := f.h.RunOnMain(func() { got = append(got, i) }); err != nil {
			t.Fatal(err)
		}
	}
	f.h.RunOnMain(func() { close(done) })
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("tasks not executed")
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
	if len(got) != n {
		t.Fatalf("ran %d of %d tasks", len(got), n)
	}
	f.h.RequestExit()
	f.waitDone()
}

func TestCloseVeto(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	var veto atomic.Bool
	veto.Store(true)
	var order []string
	var mu sync.Mutex
	_, err := w.OnWindowEvent(func(ev system.WindowEvent) {
		cr, ok := ev.(system.CloseRequestedEvent)
		if !ok {
			return
		}
		mu.Lock()
		order = append(order, "listener")
		mu.Unlock()
		if veto.Load() {
			cr.Signal.Prevent()
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	nw := f.d.Windows()[0]
	nw.RequestClose()
	f.waitEvent(func(ev app.RunEvent) bool {
		we, ok := ev.(app.WindowEvent)
		if !ok {
			return false
		}
		_, ok = we.Event.(system.CloseRequestedEvent)
		return ok
	})
	// The listener ran before the callback saw the event.
	mu.Lock()
	if diff := cmp.Diff([]string{"listener"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	mu.Unlock()

	// Vetoed: the window survives.
	f.sync()
	if _, err := w.Title(); err != nil {
		t.Fatalf("window gone despite veto: %v", err)
	}

	veto.Store(false)
	nw.RequestClose()
	f.waitDone()
}

func TestExitRequestVeto(t *testing.T) {
	var allowExit atomic.Bool
	f := start(t, func(ev app.RunEvent) {
		if er, ok := ev.(app.ExitRequestedEvent); ok && !allowExit.Load() {
			er.Response.Prevent()
		}
	})
	w := f.createWindow("main")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.waitEvent(func(ev app.RunEvent) bool {
		_, ok := ev.(app.ExitRequestedEvent)
		return ok
	})
	// The loop survived the last window closing.
	f.sync()
	select {
	case <-f.done:
		t.Fatal("loop exited despite veto")
	default:
	}

	allowExit.Store(true)
	f.h.RequestExit()
	f.waitDone()
}

func TestFastPathReentrancy(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	type result struct {
		size   unit.PhysicalSize
		ranNow bool
		onMain bool
		err    error
	}
	results := make(chan result, 1)
	_, err := w.OnWindowEvent(func(ev system.WindowEvent) {
		if _, ok := ev.(system.ResizedEvent); !ok {
			return
		}
		// Dispatch from the GUI thread must execute inline instead of
		// deadlocking against the busy loop.
		var r result
		r.size, r.err = w.InnerSize()
		f.h.RunOnMain(func() { r.ranNow = true })
		r.onMain = f.h.OnMainThread()
		results <- r
	})
	if err != nil {
		t.Fatal(err)
	}
	f.d.Windows()[0].Resize(unit.PhysicalSize{Width: 640, Height: 480})
	select {
	case r := <-results:
		if r.err != nil {
			t.Fatalf("getter on GUI thread: %v", r.err)
		}
		if r.size != (unit.PhysicalSize{Width: 640, Height: 480}) {
			t.Errorf("size = %v", r.size)
		}
		if !r.ranNow {
			t.Error("RunOnMain not synchronous on GUI thread")
		}
		if !r.onMain {
			t.Error("OnMainThread false inside listener")
		}
	case <-time.After(timeout):
		t.Fatal("listener never ran")
	}
	w.Close()
	f.waitDone()
}

func TestWindowEventDelivery(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	got := make(chan system.WindowEvent, 16)
	if _, err := w.OnWindowEvent(func(ev system.WindowEvent) { got <- ev }); err != nil {
		t.Fatal(err)
	}

	nw := f.d.Windows()[0]
	nw.Move(unit.PhysicalPosition{X: 10, Y: 20})
	nw.ChangeTheme(system.ThemeDark)
	nw.ChangeScaleFactor(2, unit.PhysicalSize{Width: 1600, Height: 1200})
	nw.DropFiles("/tmp/a", "/tmp/b")

	expect := func(match func(system.WindowEvent) bool) {
		t.Helper()
		deadline := time.After(timeout)
		for {
			select {
			case ev := <-got:
				if match(ev) {
					return
				}
			case <-deadline:
				t.Fatal("listener event missing")
			}
		}
	}
	expect(func(ev system.WindowEvent) bool {
		m, ok := ev.(system.MovedEvent)
		return ok && m.Position == (unit.PhysicalPosition{X: 10, Y: 20})
	})
	expect(func(ev system.WindowEvent) bool {
		th, ok := ev.(system.ThemeChangedEvent)
		return ok && th.Theme == system.ThemeDark
	})
	expect(func(ev system.WindowEvent) bool {
		sc, ok := ev.(system.ScaleFactorChangedEvent)
		return ok && sc.ScaleFactor == 2 && sc.NewSize == (unit.PhysicalSize{Width: 1600, Height: 1200})
	})
	expect(func(ev system.WindowEvent) bool {
		fd, ok := ev.(system.FileDropEvent)
		return ok && fd.Kind == system.FileDropDropped && len(fd.Paths) == 2
	})

	// The callback saw the same events under the window's label.
	f.waitEvent(func(ev app.RunEvent) bool {
		we, ok := ev.(app.WindowEvent)
		if !ok || we.Label != "main" {
			return false
		}
		fd, ok := we.Event.(system.FileDropEvent)
		return ok && fd.Kind == system.FileDropDropped
	})

	w.Close()
	f.waitDone()
}

func TestMonitorGetters(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	cur, err := w.CurrentMonitor()
	if err != nil {
		t.Fatal(err)
	}
	if cur == nil || cur.ScaleFactor != 1 || cur.Size.Width == 0 {
		t.Fatalf("current monitor: %+v", cur)
	}
	pri, err := w.PrimaryMonitor()
	if err != nil {
		t.Fatal(err)
	}
	if pri == nil || *pri != *cur {
		t.Errorf("primary monitor = %+v, want %+v", pri, cur)
	}
	all, err := w.AvailableMonitors()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0] != *cur {
		t.Errorf("available monitors = %+v", all)
	}
	w.Close()
	f.waitDone()
}

func TestListenerRemoval(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	got := make(chan system.WindowEvent, 8)
	id, err := w.OnWindowEvent(func(ev system.WindowEvent) { got <- ev })
	if err != nil {
		t.Fatal(err)
	}
	nw := f.d.Windows()[0]
	nw.FocusChange(true)
	select {
	case <-got:
	case <-time.After(timeout):
		t.Fatal("listener missed the first event")
	}
	w.RemoveWindowListener(id)
	nw.FocusChange(false)
	// Listeners run before the callback sees the same event, so once
	// the callback has the second focus change, a listener that was
	// still registered would already have fired.
	f.waitEvent(func(ev app.RunEvent) bool {
		we, ok := ev.(app.WindowEvent)
		if !ok || we.Label != "main" {
			return false
		}
		fe, ok := we.Event.(system.FocusedEvent)
		return ok && !fe.Focused
	})
	select {
	case ev := <-got:
		t.Errorf("removed listener ran: %#v", ev)
	default:
	}
	w.Close()
	f.waitDone()
}

func TestCloseFromListenerUnderFloodedQueue(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main")
	closed := make(chan error, 1)
	once := false
	_, err := w.OnWindowEvent(func(ev system.WindowEvent) {
		fe, ok := ev.(system.FocusedEvent)
		if !ok || !fe.Focused || once {
			return
		}
		once = true
		// Fill the dispatch queue from other goroutines while the loop
		// is parked in this listener, then close. Neither the senders
		// nor Close may block on the queue.
		var wg sync.WaitGroup
		for i := 0; i < 1024; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.h.RunOnMain(func() {})
			}()
		}
		wg.Wait()
		closed <- w.Close()
	})
	if err != nil {
		t.Fatal(err)
	}
	f.d.Windows()[0].FocusChange(true)
	select {
	case err := <-closed:
		if err != nil {
			t.Fatalf("close: %v", err)
		}
	case <-time.After(timeout):
		t.Fatal("close blocked on the dispatch queue")
	}
	f.waitDestroyed("main")
	f.waitDone()
}

func TestUserEventOrdering(t *testing.T) {
	f := start(t, nil)
	proxy := f.h.CreateProxy()
	const n = 50
	for i := 0; i < n; i++ {
		if err := proxy.Send(i); err != nil {
			t.Fatal(err)
		}
	}
	next := 0
	for next < n {
		ev := f.waitEvent(func(ev app.RunEvent) bool {
			_, ok := ev.(app.UserEvent)
			return ok
		})
		if got := ev.(app.UserEvent).Data.(int); got != next {
			t.Fatalf("payload %d arrived, want %d", got, next)
		}
		next++
	}
	f.h.RequestExit()
	f.waitDone()
}

func TestMenuRouting(t *testing.T) {
	f := start(t, nil)
	open := menu.NewItem("Open")
	quit := menu.NewItem("Quit")
	bar := menu.Menu{Items: []menu.Entry{
		open,
		menu.Native{Kind: menu.Separator},
		menu.Submenu{Title: "File", Enabled: true, Menu: menu.Menu{Items: []menu.Entry{quit}}},
	}}
	w := f.createWindow("main", app.WithMenu(bar))

	clicks := make(chan menu.ItemID, 8)
	if _, err := w.OnMenuEvent(func(ev menu.Event) { clicks <- ev.ItemID }); err != nil {
		t.Fatal(err)
	}

	nw := f.d.Windows()[0]
	nw.ClickMenu(open.ID)
	// Submenu items route like top-level ones.
	nw.ClickMenu(quit.ID)
	// A click the platform could not attribute falls back to the
	// first window.
	f.d.ClickMenuUnresolved(open.ID)

	want := []menu.ItemID{open.ID, quit.ID, open.ID}
	for i, id := range want {
		select {
		case got := <-clicks:
			if got != id {
				t.Fatalf("click %d = %d, want %d", i, got, id)
			}
		case <-time.After(timeout):
			t.Fatalf("click %d missing", i)
		}
	}

	// Live item updates reach the native menu.
	if err := w.UpdateMenuItem(open.ID, menu.SetTitle("Open..."), menu.SetEnabled(false)); err != nil {
		t.Fatal(err)
	}
	f.sync()
	state, ok := nw.MenuItemState(open.ID)
	if !ok {
		t.Fatal("item unknown to native menu")
	}
	if state.Title != "Open..." || state.Enabled {
		t.Errorf("state = %+v", state)
	}

	w.Close()
	f.waitDone()
}

func TestTrayRouting(t *testing.T) {
	f := start(t, nil)
	item := menu.NewItem("Status")
	tray, err := f.h.SystemTray(app.TrayOptions{
		Tooltip: "demo",
		Menu:    &menu.Menu{Items: []menu.Entry{item}},
	})
	if err != nil {
		t.Fatal(err)
	}

	own := make(chan app.TrayEvent, 8)
	if _, err := tray.OnEvent(func(ev app.TrayEvent) { own <- ev }); err != nil {
		t.Fatal(err)
	}
	type global struct {
		id app.TrayID
		ev app.TrayEvent
	}
	all := make(chan global, 8)
	f.h.OnTrayEvent(func(id app.TrayID, ev app.TrayEvent) { all <- global{id, ev} })

	f.d.ClickTrayMenu(item.ID)
	select {
	case ev := <-own:
		if click, ok := ev.(app.TrayMenuItemClickEvent); !ok || click.ItemID != item.ID {
			t.Errorf("tray listener got %#v", ev)
		}
	case <-time.After(timeout):
		t.Fatal("tray listener missed the click")
	}
	select {
	case g := <-all:
		if g.id != tray.ID() {
			t.Errorf("global listener tray id = %d", g.id)
		}
	case <-time.After(timeout):
		t.Fatal("global listener missed the click")
	}

	f.d.ClickTray(tray.ID(), app.TrayLeftClick, unit.PhysicalPosition{X: 5, Y: 5}, unit.PhysicalSize{Width: 24, Height: 24})
	select {
	case ev := <-own:
		if click, ok := ev.(app.TrayIconClickEvent); !ok || click.Kind != app.TrayLeftClick {
			t.Errorf("tray listener got %#v", ev)
		}
	case <-time.After(timeout):
		t.Fatal("icon click missing")
	}

	if err := tray.UpdateItem(item.ID, menu.SetSelected(true)); err != nil {
		t.Fatal(err)
	}
	f.sync()
	if state, ok := f.d.Tray(tray.ID()).MenuItemState(item.ID); !ok || !state.Selected {
		t.Errorf("item state = %+v, %v", state, ok)
	}

	if err := tray.Destroy(); err != nil {
		t.Fatal(err)
	}
	if err := tray.Destroy(); !errors.Is(err, app.ErrTrayNotFound) {
		t.Errorf("second destroy: %v", err)
	}
	if f.d.Tray(tray.ID()) != nil {
		t.Error("native tray survived destroy")
	}

	f.h.RequestExit()
	f.waitDone()
}

func TestPeersDropOnDestroy(t *testing.T) {
	f := start(t, nil)
	main := f.createWindow("main")
	f.createWindow("a")
	b := f.createWindow("b")

	peers, err := main.Peers()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, peers); diff != "" {
		t.Errorf("peers (-want +got):\n%s", diff)
	}

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	f.waitDestroyed("b")
	peers, err = main.Peers()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a"}, peers); diff != "" {
		t.Errorf("peers after close (-want +got):\n%s", diff)
	}

	f.h.RequestExit()
	f.waitDone()
}

func TestWebview(t *testing.T) {
	f := start(t, nil)
	w := f.createWindow("main", app.URL("https://example.org"), app.InitScript("boot()"))
	if got, err := w.URL(); err != nil || got != "https://example.org" {
		t.Errorf("URL = %q, %v", got, err)
	}
	if err := w.EvalScript("render()"); err != nil {
		t.Fatal(err)
	}
	f.sync()
	scripts := f.d.Windows()[0].Webview().Scripts()
	if diff := cmp.Diff([]string{"boot()", "render()"}, scripts); diff != "" {
		t.Errorf("scripts (-want +got):\n%s", diff)
	}

	plain := f.createWindow("plain")
	if _, err := plain.URL(); !errors.Is(err, app.ErrNoWebview) {
		t.Errorf("URL without webview: %v", err)
	}
	if err := plain.AttachWebview(app.WebviewOptions{URL: "https://late.example"}); err != nil {
		t.Fatal(err)
	}
	f.sync()
	if got, err := plain.URL(); err != nil || got != "https://late.example" {
		t.Errorf("URL after attach = %q, %v", got, err)
	}

	f.h.RequestExit()
	f.waitDone()
}
