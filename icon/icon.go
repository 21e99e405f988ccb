// SPDX-License-Identifier: Unlicense OR MIT

// Package icon converts images into the raw RGBA form consumed by
// native window and tray APIs.
package icon

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Icon is a decoded icon. RGBA holds Width*Height*4 bytes in row-major
// order, the layout native icon APIs expect.
type Icon struct {
	RGBA   []byte
	Width  int
	Height int
}

// Empty reports whether the icon holds no pixels.
func (ic Icon) Empty() bool {
	return ic.Width == 0 || ic.Height == 0 || len(ic.RGBA) == 0
}

var errBadIcon = errors.New("icon: pixel buffer does not match dimensions")

// Validate checks that the buffer length matches the dimensions.
func (ic Icon) Validate() error {
	if ic.Empty() {
		return errors.New("icon: empty")
	}
	if len(ic.RGBA) != ic.Width*ic.Height*4 {
		return errBadIcon
	}
	return nil
}

// FromImage converts img.
func FromImage(img image.Image) Icon {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return Icon{RGBA: rgba.Pix, Width: b.Dx(), Height: b.Dy()}
}

// Decode reads a PNG or JPEG image from r.
func Decode(r io.Reader) (Icon, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Icon{}, fmt.Errorf("icon: decode: %w", err)
	}
	return FromImage(img), nil
}

// FromFile reads an icon image from path.
func FromFile(path string) (Icon, error) {
	f, err := os.Open(path)
	if err != nil {
		return Icon{}, fmt.Errorf("icon: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Image returns the icon as an *image.RGBA sharing the pixel buffer.
func (ic Icon) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    ic.RGBA,
		Stride: ic.Width * 4,
		Rect:   image.Rect(0, 0, ic.Width, ic.Height),
	}
}

// Resize scales the icon to width x height. Tray implementations use
// this to fit the fixed status-area size.
func (ic Icon) Resize(width, height int) Icon {
	if ic.Empty() || (ic.Width == width && ic.Height == height) {
		return ic
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), ic.Image(), ic.Image().Bounds(), draw.Src, nil)
	return Icon{RGBA: dst.Pix, Width: width, Height: height}
}
