// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package overlay

import (
	"github.com/devblok/capview/gfx"
	glm "github.com/go-gl/mathgl/mgl32"
)

// Segment is one stroke of a seven segment digit.
type Segment uint8

// Segments in mask bit order
const (
	SegmentTop Segment = iota
	SegmentTopRight
	SegmentBottomRight
	SegmentBottom
	SegmentBottomLeft
	SegmentTopLeft
	SegmentMiddle

	segmentCount
)

// digitSegments holds the lit segments of digits 0 to 9, bit n is Segment n.
var digitSegments = [10]uint8{
	0x3F, // 0
	0x06, // 1
	0x5B, // 2
	0x4F, // 3
	0x66, // 4
	0x6D, // 5
	0x7D, // 6
	0x07, // 7
	0x7F, // 8
	0x6F, // 9
}

// Lit reports whether segment s of digit d is drawn.
func Lit(d int, s Segment) bool {
	if d < 0 || d > 9 || s >= segmentCount {
		return false
	}
	return digitSegments[d]&(1<<s) != 0
}

// Metrics are the glyph dimensions in pixels.
type Metrics struct {
	DigitWidth   int
	DigitHeight  int
	Thickness    int
	Spacing      int
	ColonAdvance int
	BlankAdvance int
}

// DefaultMetrics is a 12x20 digit cell with 2 pixel strokes.
var DefaultMetrics = Metrics{
	DigitWidth:   12,
	DigitHeight:  20,
	Thickness:    2,
	Spacing:      4,
	ColonAdvance: 6,
	BlankAdvance: 8,
}

// segmentRect places segment s in a digit cell at x, y.
func (m Metrics) segmentRect(s Segment, x, y int) gfx.Rect {
	w, h, t := m.DigitWidth, m.DigitHeight, m.Thickness
	switch s {
	case SegmentTop:
		return gfx.NewRect(x, y, w, t)
	case SegmentTopRight:
		return gfx.NewRect(x+w-t, y, t, h/2)
	case SegmentBottomRight:
		return gfx.NewRect(x+w-t, y+h/2, t, h/2)
	case SegmentBottom:
		return gfx.NewRect(x, y+h-t, w, t)
	case SegmentBottomLeft:
		return gfx.NewRect(x, y+h/2, t, h/2)
	case SegmentTopLeft:
		return gfx.NewRect(x, y, t, h/2)
	default:
		return gfx.NewRect(x, y+h/2-t/2, w, t)
	}
}

// Layout returns the rectangles drawing text with its top left corner at
// origin. Digits are seven segment glyphs, a colon is two dots and every
// other rune is blank.
func Layout(text string, origin glm.Vec2, m Metrics) []gfx.Rect {
	var rects []gfx.Rect
	x, y := 0, 0
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
			d := int(c - '0')
			for s := SegmentTop; s < segmentCount; s++ {
				if Lit(d, s) {
					rects = append(rects, m.segmentRect(s, x, y).Translate(origin))
				}
			}
			x += m.DigitWidth + m.Spacing
		case c == ':':
			rects = append(rects,
				gfx.NewRect(x+2, y+m.DigitHeight/3, 2, 2).Translate(origin),
				gfx.NewRect(x+2, y+2*m.DigitHeight/3, 2, 2).Translate(origin),
			)
			x += m.ColonAdvance + m.Spacing
		default:
			x += m.BlankAdvance
		}
	}
	return rects
}
