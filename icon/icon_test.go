// SPDX-License-Identifier: Unlicense OR MIT

package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	ic := FromImage(testImage(16, 8))
	if ic.Width != 16 || ic.Height != 8 {
		t.Fatalf("size %dx%d", ic.Width, ic.Height)
	}
	if err := ic.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	if err := (Icon{}).Validate(); err == nil {
		t.Error("empty icon validated")
	}
	bad := Icon{RGBA: make([]byte, 10), Width: 2, Height: 2}
	if err := bad.Validate(); err == nil {
		t.Error("mismatched buffer validated")
	}
	good := Icon{RGBA: make([]byte, 2*2*4), Width: 2, Height: 2}
	if err := good.Validate(); err != nil {
		t.Error(err)
	}
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(4, 4)); err != nil {
		t.Fatal(err)
	}
	ic, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if ic.Width != 4 || ic.Height != 4 {
		t.Fatalf("size %dx%d", ic.Width, ic.Height)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("garbage decoded")
	}
}

func TestResize(t *testing.T) {
	ic := FromImage(testImage(32, 32))
	small := ic.Resize(16, 16)
	if small.Width != 16 || small.Height != 16 {
		t.Fatalf("size %dx%d", small.Width, small.Height)
	}
	if err := small.Validate(); err != nil {
		t.Fatal(err)
	}
	if same := ic.Resize(32, 32); &same.RGBA[0] != &ic.RGBA[0] {
		t.Error("no-op resize copied the buffer")
	}
}
