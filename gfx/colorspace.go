// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

import "math"

// ColorSpace is an output colour space code, laid out as
// type|range|chroma|primaries|transfer|matrix bit fields.
type ColorSpace uint32

// Known colour spaces
const (
	ColorSpaceUnknown       ColorSpace = 0
	ColorSpaceSRGB          ColorSpace = 0x120005a0
	ColorSpaceSRGBLinear    ColorSpace = 0x12000500
	ColorSpaceHDR10         ColorSpace = 0x12002600
	ColorSpaceJPEG          ColorSpace = 0x220004c6
	ColorSpaceBT601Limited  ColorSpace = 0x211018c6
	ColorSpaceBT601Full     ColorSpace = 0x221018c6
	ColorSpaceBT709Limited  ColorSpace = 0x21100421
	ColorSpaceBT709Full     ColorSpace = 0x22100421
	ColorSpaceBT2020Limited ColorSpace = 0x21102609
	ColorSpaceBT2020Full    ColorSpace = 0x22102609
)

// CustomColorSpaceLabel is the label of every code outside the known table.
const CustomColorSpaceLabel = "Custom/Unknown"

var colorSpaceLabels = map[ColorSpace]string{
	ColorSpaceUnknown:       "Unknown",
	ColorSpaceSRGB:          "sRGB",
	ColorSpaceSRGBLinear:    "sRGB Linear",
	ColorSpaceHDR10:         "HDR10",
	ColorSpaceJPEG:          "JPEG",
	ColorSpaceBT601Limited:  "BT.601 Limited",
	ColorSpaceBT601Full:     "BT.601 Full",
	ColorSpaceBT709Limited:  "BT.709 Limited",
	ColorSpaceBT709Full:     "BT.709 Full",
	ColorSpaceBT2020Limited: "BT.2020 Limited",
	ColorSpaceBT2020Full:    "BT.2020 Full",
}

// String returns the label of the colour space, never empty.
func (c ColorSpace) String() string {
	if label, ok := colorSpaceLabels[c]; ok {
		return label
	}
	return CustomColorSpaceLabel
}

// Known reports whether c is one of the tabulated colour spaces.
func (c ColorSpace) Known() bool {
	_, ok := colorSpaceLabels[c]
	return ok
}

// ColorSpaceLabel labels a raw property value. Values that do not fit
// a ColorSpace are custom.
func ColorSpaceLabel(code int64) string {
	if code < 0 || code > math.MaxUint32 {
		return CustomColorSpaceLabel
	}
	return ColorSpace(code).String()
}
