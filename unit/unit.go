// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements window geometry in device dependent and device
independent units.

Physical sizes and positions are in the pixel grid of the display the
window currently occupies. Logical sizes and positions are scale factor
independent: a logical value is multiplied by the window's scale factor
to obtain pixels. APIs that accept either form take a Size or Position.
*/
package unit

import "math"

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width  int
	Height int
}

// PhysicalPosition is a position in device pixels.
type PhysicalPosition struct {
	X int
	Y int
}

// LogicalSize is a size in scale-independent pixels.
type LogicalSize struct {
	Width  float64
	Height float64
}

// LogicalPosition is a position in scale-independent pixels.
type LogicalPosition struct {
	X float64
	Y float64
}

// Size is a physical or logical size.
type Size interface {
	// Physical converts the size to device pixels at the given
	// scale factor.
	Physical(scale float64) PhysicalSize
}

// Position is a physical or logical position.
type Position interface {
	// Physical converts the position to device pixels at the given
	// scale factor.
	Physical(scale float64) PhysicalPosition
}

func (s PhysicalSize) Physical(scale float64) PhysicalSize { return s }

// Logical converts s to logical units at the given scale factor.
func (s PhysicalSize) Logical(scale float64) LogicalSize {
	if scale == 0 {
		scale = 1
	}
	return LogicalSize{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

func (s LogicalSize) Physical(scale float64) PhysicalSize {
	if scale == 0 {
		scale = 1
	}
	return PhysicalSize{
		Width:  int(math.Round(s.Width * scale)),
		Height: int(math.Round(s.Height * scale)),
	}
}

func (p PhysicalPosition) Physical(scale float64) PhysicalPosition { return p }

// Logical converts p to logical units at the given scale factor.
func (p PhysicalPosition) Logical(scale float64) LogicalPosition {
	if scale == 0 {
		scale = 1
	}
	return LogicalPosition{
		X: float64(p.X) / scale,
		Y: float64(p.Y) / scale,
	}
}

func (p LogicalPosition) Physical(scale float64) PhysicalPosition {
	if scale == 0 {
		scale = 1
	}
	return PhysicalPosition{
		X: int(math.Round(p.X * scale)),
		Y: int(math.Round(p.Y * scale)),
	}
}
