// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app implements a single-threaded event loop for native windows,
webviews, menus and system trays, together with the cross-thread
dispatch that lets any goroutine address them.

All native state lives on one OS thread, the GUI thread: the goroutine
that calls New is locked to its thread and must also call Run or
RunIteration. Other goroutines interact through facades. Setters are
fire-and-forget messages; getters send a request with a single-use
response channel and block for the answer. Calls made on the GUI thread
itself skip the channel and execute immediately, so dispatch stays
usable from inside event listeners and the run callback.

A minimal application:

	rt := app.New(driver)
	h := rt.Handle()
	go func() {
		w, err := h.CreateWindow("main", app.Title("hello"))
		if err != nil {
			log.Fatal(err)
		}
		w.SetTitle("ready")
	}()
	rt.Run(func(ev app.RunEvent) {
		if _, ok := ev.(app.ExitEvent); ok {
			log.Println("bye")
		}
	})

Windows are destroyed in two phases. A native close request first
raises a cancellable CloseRequestedEvent; unless a listener or the
callback prevents it, the native window is torn down and a final
DestroyedEvent follows once the driver confirms. Destroying the last
window raises ExitRequestedEvent, which may also be prevented.
*/
package app
