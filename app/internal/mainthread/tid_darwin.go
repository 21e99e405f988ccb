// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && cgo

package mainthread

/*
#include <pthread.h>
*/
import "C"

// Current returns the OS thread id of the caller.
func Current() uint64 {
	var tid C.uint64_t
	C.pthread_threadid_np(nil, &tid)
	return uint64(tid)
}
