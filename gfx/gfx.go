// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package gfx describes the graphics backend the way the capability
// report and the frame overlay consume it: read-only driver queries,
// a property bag per surface and a minimal fill primitive.
package gfx

import (
	"image/color"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Backend exposes driver level queries of the graphics backend.
type Backend interface {
	// CurrentVideoDriver returns the name of the initialised video driver,
	// ok is false when there is none.
	CurrentVideoDriver() (name string, ok bool)

	// NumRenderDrivers returns the number of render drivers compiled
	// into the backend, error carries the backend's last error.
	NumRenderDrivers() (int, error)

	// RenderDriver returns the name of the render driver at index,
	// ok is false when the backend has no name for it.
	RenderDriver(index int) (name string, ok bool)

	// PixelFormatName returns a human readable name of a pixel format.
	PixelFormatName(PixelFormat) string
}

// Surface is the active drawable output target.
type Surface interface {
	Canvas

	// Name returns the name of the renderer driving the surface.
	Name() (string, bool)

	// OutputSize returns the size of the output in pixels.
	OutputSize() (w, h int32, err error)

	// Properties returns the surface property bag,
	// nil if the backend doesn't expose one.
	Properties() Properties
}

// Canvas receives draw commands.
type Canvas interface {
	SetDrawColor(color.RGBA) error
	FillRect(Rect) error
}

// Clock is a monotonic high resolution counter.
type Clock interface {
	PerformanceCounter() uint64
	PerformanceFrequency() uint64
}

// Rect is an axis aligned rectangle.
type Rect struct {
	Pos  glm.Vec2
	Size glm.Vec2
}

// NewRect creates a Rect from integer pixel coordinates.
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Pos:  glm.Vec2{float32(x), float32(y)},
		Size: glm.Vec2{float32(w), float32(h)},
	}
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset glm.Vec2) Rect {
	return Rect{Pos: r.Pos.Add(offset), Size: r.Size}
}
