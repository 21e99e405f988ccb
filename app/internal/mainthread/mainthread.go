// SPDX-License-Identifier: Unlicense OR MIT

// Package mainthread pins a goroutine to its OS thread and exposes the
// thread identity used for GUI-thread affinity checks.
package mainthread

import "runtime"

// Lock pins the calling goroutine to its current OS thread for the
// lifetime of the process. The Go scheduler will not run other
// goroutines on a locked thread, so the thread id returned by Current
// afterwards uniquely identifies this goroutine.
func Lock() {
	runtime.LockOSThread()
}
