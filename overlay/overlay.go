// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package overlay draws a frame rate counter with a seven segment font
// made of filled rectangles.
package overlay

import (
	"fmt"
	"image/color"

	"github.com/devblok/capview/gfx"
	glm "github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// RestoreColor is the draw colour left on the canvas after rendering.
var RestoreColor = colornames.Black

// Option configures a Counter.
type Option func(*Counter)

// WithOrigin sets the top left corner of the text.
func WithOrigin(origin glm.Vec2) Option {
	return func(c *Counter) {
		c.origin = origin
	}
}

// WithMetrics sets the glyph dimensions.
func WithMetrics(m Metrics) Option {
	return func(c *Counter) {
		c.metrics = m
	}
}

// WithColor sets the glyph colour.
func WithColor(col color.RGBA) Option {
	return func(c *Counter) {
		c.color = col
	}
}

// WithShown sets the initial visibility.
func WithShown(shown bool) Option {
	return func(c *Counter) {
		c.shown = shown
	}
}

// NewCounter creates a hidden Counter timed by clock.
func NewCounter(clock gfx.Clock, opts ...Option) *Counter {
	c := &Counter{
		clock:   clock,
		origin:  glm.Vec2{10, 10},
		metrics: DefaultMetrics,
		color:   colornames.Lime,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Counter estimates the frame rate over tumbling one second windows.
// The estimate holds its value until the current window closes.
type Counter struct {
	clock gfx.Clock

	frames  uint64
	start   uint64
	started bool
	fps     float64
	shown   bool

	origin  glm.Vec2
	metrics Metrics
	color   color.RGBA
}

// Update counts a frame, it must be called once per rendered frame.
func (c *Counter) Update() {
	c.frames++
	now := c.clock.PerformanceCounter()
	if !c.started {
		c.start = now
		c.started = true
	}

	freq := c.clock.PerformanceFrequency()
	if freq == 0 {
		return
	}
	elapsed := float64(now-c.start) / float64(freq)
	if elapsed >= 1.0 {
		c.fps = float64(c.frames) / elapsed
		c.frames = 0
		c.start = now
	}
}

// Toggle flips the visibility.
func (c *Counter) Toggle() {
	c.shown = !c.shown
}

// Shown reports whether Render draws anything.
func (c *Counter) Shown() bool {
	return c.shown
}

// FPS returns the estimate of the last closed window.
func (c *Counter) FPS() float64 {
	return c.fps
}

// Text returns the rounded estimate as displayed.
func (c *Counter) Text() string {
	return fmt.Sprintf("FPS:%d", int(c.fps+0.5))
}

// Render draws the counter on canvas. It stops at the first draw error and
// always leaves RestoreColor as the draw colour.
func (c *Counter) Render(canvas gfx.Canvas) (err error) {
	if !c.shown || canvas == nil {
		return nil
	}

	defer func() {
		if rerr := canvas.SetDrawColor(RestoreColor); err == nil {
			err = rerr
		}
	}()

	if err := canvas.SetDrawColor(c.color); err != nil {
		return err
	}
	for _, r := range Layout(c.Text(), c.origin, c.metrics) {
		if err := canvas.FillRect(r); err != nil {
			return err
		}
	}
	return nil
}
