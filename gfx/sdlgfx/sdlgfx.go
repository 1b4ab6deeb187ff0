// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sdlgfx implements the gfx backend on top of SDL2.
package sdlgfx

import (
	"errors"
	"image/color"

	"github.com/devblok/capview/gfx"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend queries SDL itself. SDL must be initialised
// for CurrentVideoDriver to report anything.
type Backend struct{}

// CurrentVideoDriver implements interface
func (Backend) CurrentVideoDriver() (string, bool) {
	name, err := sdl.GetCurrentVideoDriver()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// NumRenderDrivers implements interface
func (Backend) NumRenderDrivers() (int, error) {
	num, err := sdl.GetNumRenderDrivers()
	if err != nil {
		return 0, errors.New("sdl.GetNumRenderDrivers(): " + err.Error())
	}
	if num < 0 {
		return 0, errors.New("sdl.GetNumRenderDrivers(): " + lastError())
	}
	return num, nil
}

// RenderDriver implements interface
func (Backend) RenderDriver(index int) (string, bool) {
	var info sdl.RendererInfo
	if _, err := sdl.GetRenderDriverInfo(index, &info); err != nil || info.Name == "" {
		return "", false
	}
	return info.Name, true
}

// PixelFormatName implements interface
func (Backend) PixelFormatName(f gfx.PixelFormat) string {
	return sdl.GetPixelFormatName(uint(f))
}

// PerformanceCounter implements gfx.Clock
func (Backend) PerformanceCounter() uint64 {
	return sdl.GetPerformanceCounter()
}

// PerformanceFrequency implements gfx.Clock
func (Backend) PerformanceFrequency() uint64 {
	return sdl.GetPerformanceFrequency()
}

func lastError() string {
	if err := sdl.GetError(); err != nil {
		return err.Error()
	}
	return "unknown error"
}

// NewSurface wraps an SDL renderer as a gfx.Surface.
func NewSurface(renderer *sdl.Renderer) *Surface {
	return &Surface{renderer: renderer}
}

// Surface is an SDL renderer seen as a gfx.Surface.
type Surface struct {
	renderer *sdl.Renderer
}

// Renderer returns the wrapped SDL renderer.
func (s *Surface) Renderer() *sdl.Renderer {
	return s.renderer
}

// Name implements interface
func (s *Surface) Name() (string, bool) {
	info, err := s.renderer.GetInfo()
	if err != nil || info.Name == "" {
		return "", false
	}
	return info.Name, true
}

// OutputSize implements interface
func (s *Surface) OutputSize() (int32, int32, error) {
	return s.renderer.GetOutputSize()
}

// Properties implements interface
func (s *Surface) Properties() gfx.Properties {
	info, err := s.renderer.GetInfo()
	if err != nil {
		return nil
	}
	return PropertiesFromInfo(info)
}

// SetDrawColor implements interface
func (s *Surface) SetDrawColor(c color.RGBA) error {
	return s.renderer.SetDrawColor(c.R, c.G, c.B, c.A)
}

// FillRect implements interface
func (s *Surface) FillRect(r gfx.Rect) error {
	return s.renderer.FillRect(&sdl.Rect{
		X: int32(r.Pos.X()),
		Y: int32(r.Pos.Y()),
		W: int32(r.Size.X()),
		H: int32(r.Size.Y()),
	})
}

// PropertiesFromInfo builds the property bag SDL2 can provide from
// renderer info. SDL2 renders in sRGB without HDR, so those keys are
// left out and readers fall back to their defaults.
func PropertiesFromInfo(info sdl.RendererInfo) gfx.PropertyMap {
	maxSize := int64(info.MaxTextureWidth)
	if int64(info.MaxTextureHeight) > maxSize {
		maxSize = int64(info.MaxTextureHeight)
	}

	var vsync int64
	if info.Flags&sdl.RENDERER_PRESENTVSYNC != 0 {
		vsync = 1
	}

	num := int(info.NumTextureFormats)
	if num > len(info.TextureFormats) {
		num = len(info.TextureFormats)
	}
	formats := make([]gfx.PixelFormat, 0, num+1)
	for i := 0; i < num; i++ {
		formats = append(formats, gfx.PixelFormat(uint32(info.TextureFormats[i])))
	}
	formats = append(formats, gfx.PixelFormatUnknown)

	props := gfx.PropertyMap{
		gfx.PropName:           info.Name,
		gfx.PropVSync:          vsync,
		gfx.PropTextureFormats: formats,
	}
	if maxSize > 0 {
		props[gfx.PropMaxTextureSize] = maxSize
	}
	return props
}
