// SPDX-License-Identifier: Unlicense OR MIT

package systrayhost

import (
	"bytes"
	"image"
	"runtime"
	"testing"

	"github.com/vitrine-app/vitrine/icon"
)

func TestEncodeIcon(t *testing.T) {
	src := icon.FromImage(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	data, err := encodeIcon(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty encoding")
	}
	if runtime.GOOS != "windows" {
		// PNG magic.
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("not a PNG: % x", data[:8])
		}
	}
}

func TestEncodeIconRejectsEmpty(t *testing.T) {
	if _, err := encodeIcon(icon.Icon{}); err == nil {
		t.Error("empty icon encoded")
	}
}
