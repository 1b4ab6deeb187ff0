// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report

import (
	"fmt"
	"strings"

	"github.com/devblok/capview/gfx"
)

// Size is an output size in pixels.
type Size struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// FormatList is an ordered list of texture format names.
// Known is false when the backend exposed no list at all.
type FormatList struct {
	Known bool     `json:"known"`
	Names []string `json:"names"`
}

// String renders the list, keeping an unknown list apart from an empty one.
func (f FormatList) String() string {
	if !f.Known {
		return Unknown
	}
	if len(f.Names) == 0 {
		return None
	}
	return strings.Join(f.Names, ", ")
}

// SurfaceProperties are the values read from a surface property bag.
// The HDR fields are only set when HDR is enabled.
type SurfaceProperties struct {
	MaxTextureSize int64          `json:"max_texture_size"`
	Driver         string         `json:"driver"`
	VSync          int64          `json:"vsync"`
	ColorSpace     int64          `json:"colorspace"`
	ColorSpaceName string         `json:"colorspace_name"`
	HDREnabled     bool           `json:"hdr_enabled"`
	SDRWhitePoint  *float32       `json:"sdr_white_point,omitempty"`
	HDRHeadroom    *float32       `json:"hdr_headroom,omitempty"`
	TextureFormats FormatList     `json:"texture_formats"`
}

// SurfaceReport describes the active surface. Available is false when
// there was no surface; Properties is nil without a property bag.
type SurfaceReport struct {
	Available  bool               `json:"available"`
	Name       string             `json:"name,omitempty"`
	OutputSize *Size              `json:"output_size,omitempty"`
	Properties *SurfaceProperties `json:"properties,omitempty"`
}

// CollectSurface reads the surface s. Format names are resolved through b,
// which may be nil.
func CollectSurface(b gfx.Backend, s gfx.Surface, formatLimit int) SurfaceReport {
	if s == nil {
		return SurfaceReport{}
	}

	sr := SurfaceReport{
		Available: true,
		Name:      Unknown,
	}
	if name, ok := s.Name(); ok {
		sr.Name = name
	}
	if w, h, err := s.OutputSize(); err == nil {
		sr.OutputSize = &Size{Width: w, Height: h}
	}

	props := s.Properties()
	if props == nil {
		return sr
	}

	sp := &SurfaceProperties{
		MaxTextureSize: props.Number(gfx.PropMaxTextureSize, -1),
		Driver:         props.String(gfx.PropName, Unknown),
		VSync:          props.Number(gfx.PropVSync, 0),
		ColorSpace:     props.Number(gfx.PropOutputColorSpace, 0),
		HDREnabled:     props.Boolean(gfx.PropHDREnabled, false),
	}
	sp.ColorSpaceName = gfx.ColorSpaceLabel(sp.ColorSpace)
	if sp.HDREnabled {
		white := props.Float(gfx.PropSDRWhitePoint, 0)
		headroom := props.Float(gfx.PropHDRHeadroom, 0)
		sp.SDRWhitePoint = &white
		sp.HDRHeadroom = &headroom
	}
	sp.TextureFormats = textureFormats(b, props.Pointer(gfx.PropTextureFormats), formatLimit)
	sr.Properties = sp
	return sr
}

func textureFormats(b gfx.Backend, ptr interface{}, limit int) FormatList {
	formats, ok := ptr.([]gfx.PixelFormat)
	if !ok || formats == nil {
		return FormatList{}
	}

	fl := FormatList{Known: true, Names: []string{}}
	it := gfx.NewFormatIterator(formats, limit)
	for f, ok := it.Next(); ok; f, ok = it.Next() {
		fl.Names = append(fl.Names, formatName(b, f))
	}
	return fl
}

func formatName(b gfx.Backend, f gfx.PixelFormat) string {
	if b != nil {
		if name := b.PixelFormatName(f); name != "" {
			return name
		}
	}
	return fmt.Sprintf("0x%08x", uint32(f))
}

// ReportSurface prints the properties of the surface s.
// A nil surface prints a single warning line.
func (r *Reporter) ReportSurface(b gfx.Backend, s gfx.Surface) {
	sr := CollectSurface(b, s, r.formatLimit)
	if sr.Available && sr.Properties == nil {
		r.log.Warn("Surface exposes no property bag")
	}
	r.writeSurface(sr)
}

func hexCode(v int64) string {
	if v < 0 {
		return fmt.Sprintf("-0x%08x", uint64(-v))
	}
	return fmt.Sprintf("0x%08x", v)
}

func (r *Reporter) writeSurface(sr SurfaceReport) {
	if !sr.Available {
		r.line(0, "No surface")
		return
	}

	r.field(0, "Name", sr.Name)
	if sr.OutputSize != nil {
		r.field(0, "Output size", fmt.Sprintf("%dx%d", sr.OutputSize.Width, sr.OutputSize.Height))
	}

	sp := sr.Properties
	if sp == nil {
		r.line(0, "No surface properties available")
		return
	}
	r.field(0, "Max texture size", sp.MaxTextureSize)
	r.field(0, "Driver (property)", sp.Driver)
	r.field(0, "VSync setting", sp.VSync)
	r.field(0, "Output colorspace", fmt.Sprintf("%s (%s)", sp.ColorSpaceName, hexCode(sp.ColorSpace)))
	r.field(0, "HDR enabled", yesNo(sp.HDREnabled))
	if sp.HDREnabled {
		r.field(0, "SDR white point", *sp.SDRWhitePoint)
		r.field(0, "HDR headroom", *sp.HDRHeadroom)
	}
	r.field(0, "Texture formats", sp.TextureFormats)
}
