// SPDX-License-Identifier: Unlicense OR MIT

package mainthread

import "golang.org/x/sys/unix"

// Current returns the OS thread id of the caller.
func Current() uint64 {
	return uint64(unix.Gettid())
}
