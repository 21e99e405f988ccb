// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux && !windows && !(darwin && cgo)

package mainthread

// Current returns 0 on platforms without a cheap thread id. Callers
// treat 0 as unknown and skip same-thread fast paths.
func Current() uint64 {
	return 0
}
