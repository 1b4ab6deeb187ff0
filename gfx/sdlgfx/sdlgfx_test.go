// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package sdlgfx

import (
	"testing"

	"github.com/devblok/capview/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestPropertiesFromInfo(t *testing.T) {
	info := sdl.RendererInfo{Name: "opengl"}
	info.Flags = sdl.RENDERER_ACCELERATED | sdl.RENDERER_PRESENTVSYNC
	info.NumTextureFormats = 2
	info.TextureFormats[0] = sdl.PIXELFORMAT_ARGB8888
	info.TextureFormats[1] = sdl.PIXELFORMAT_YV12
	info.MaxTextureWidth = 8192
	info.MaxTextureHeight = 16384

	props := PropertiesFromInfo(info)

	assert.Equal(t, "opengl", props.String(gfx.PropName, "(unknown)"))
	assert.Equal(t, int64(1), props.Number(gfx.PropVSync, 0))
	assert.Equal(t, int64(16384), props.Number(gfx.PropMaxTextureSize, -1))
	assert.False(t, props.Boolean(gfx.PropHDREnabled, false))

	formats, ok := props.Pointer(gfx.PropTextureFormats).([]gfx.PixelFormat)
	assert.True(t, ok)
	assert.Equal(t, []gfx.PixelFormat{
		gfx.PixelFormat(sdl.PIXELFORMAT_ARGB8888),
		gfx.PixelFormat(sdl.PIXELFORMAT_YV12),
		gfx.PixelFormatUnknown,
	}, formats)
}

func TestPropertiesFromInfoNoFormats(t *testing.T) {
	props := PropertiesFromInfo(sdl.RendererInfo{Name: "software"})

	assert.Equal(t, int64(-1), props.Number(gfx.PropMaxTextureSize, -1))
	assert.Equal(t, int64(0), props.Number(gfx.PropVSync, 0))
	formats := props.Pointer(gfx.PropTextureFormats).([]gfx.PixelFormat)
	assert.Equal(t, []gfx.PixelFormat{gfx.PixelFormatUnknown}, formats)
}
