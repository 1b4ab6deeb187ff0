// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// Well known surface property keys.
const (
	PropMaxTextureSize   = "renderer.max_texture_size"
	PropName             = "renderer.name"
	PropVSync            = "renderer.vsync"
	PropOutputColorSpace = "renderer.output_colorspace"
	PropHDREnabled       = "renderer.HDR_enabled"
	PropSDRWhitePoint    = "renderer.SDR_white_point"
	PropHDRHeadroom      = "renderer.HDR_headroom"
	PropTextureFormats   = "renderer.texture_formats"
)

// Properties is a typed property bag. Every reader takes the value
// returned when the key is absent or holds a different type.
type Properties interface {
	Number(key string, def int64) int64
	String(key string, def string) string
	Boolean(key string, def bool) bool
	Float(key string, def float32) float32

	// Pointer returns the raw value stored under key, nil if absent.
	Pointer(key string) interface{}
}

// PropertyMap is a Properties implementation backed by a map.
type PropertyMap map[string]interface{}

// Number implements interface
func (p PropertyMap) Number(key string, def int64) int64 {
	switch v := p[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case uint32:
		return int64(v)
	}
	return def
}

// String implements interface
func (p PropertyMap) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Boolean implements interface
func (p PropertyMap) Boolean(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// Float implements interface
func (p PropertyMap) Float(key string, def float32) float32 {
	switch v := p[key].(type) {
	case float32:
		return v
	case float64:
		return float32(v)
	}
	return def
}

// Pointer implements interface
func (p PropertyMap) Pointer(key string) interface{} {
	return p[key]
}
