// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package gfx

// PixelFormat is a backend defined pixel format code.
type PixelFormat uint32

// PixelFormatUnknown terminates pixel format lists.
const PixelFormatUnknown PixelFormat = 0

// DefaultFormatLimit bounds how far a format list is scanned for the sentinel.
const DefaultFormatLimit = 64

// FormatIterator walks a sentinel terminated pixel format list.
// It stops at the sentinel, at the end of the backing slice or
// after limit entries, whichever comes first.
type FormatIterator struct {
	formats []PixelFormat
	limit   int
	pos     int
}

// NewFormatIterator creates an iterator over formats. A limit
// below one falls back to DefaultFormatLimit.
func NewFormatIterator(formats []PixelFormat, limit int) *FormatIterator {
	if limit < 1 {
		limit = DefaultFormatLimit
	}
	return &FormatIterator{
		formats: formats,
		limit:   limit,
	}
}

// Next returns the next format, ok is false once the list is exhausted.
func (it *FormatIterator) Next() (PixelFormat, bool) {
	if it.pos >= it.limit || it.pos >= len(it.formats) {
		return PixelFormatUnknown, false
	}
	f := it.formats[it.pos]
	if f == PixelFormatUnknown {
		it.pos = it.limit
		return PixelFormatUnknown, false
	}
	it.pos++
	return f, true
}
