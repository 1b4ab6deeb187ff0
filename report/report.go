// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package report builds and prints the capability report of the host:
// graphics drivers, the active surface and the compute platform tree.
//
// Collection never fails as a whole. Backend failures end up as a single
// error line inside the affected section, absent data gets an explicit
// marker, and the rest of the report carries on.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/devblok/capview/compute"
	"github.com/devblok/capview/device"
	"github.com/devblok/capview/gfx"
	log "github.com/sirupsen/logrus"
)

// Section titles
const (
	DriversTitle = "Video/Renderer Drivers"
	SurfaceTitle = "Current Surface"
	ComputeTitle = "Compute Platforms and Devices"
	VulkanTitle  = "Vulkan Physical Devices"
)

// Markers of absent data
const (
	Unknown = "(unknown)"
	None    = "(none)"
	NA      = "n/a"
)

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger sets the logger that traces the collection.
func WithLogger(logger log.FieldLogger) Option {
	return func(r *Reporter) {
		r.log = logger
	}
}

// WithVerbose prints extension lists one entry per line.
func WithVerbose(verbose bool) Option {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// WithFormatLimit bounds the scan of sentinel terminated format lists.
func WithFormatLimit(limit int) Option {
	return func(r *Reporter) {
		r.formatLimit = limit
	}
}

// New creates a Reporter printing to out.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:         out,
		log:         log.StandardLogger(),
		formatLimit: gfx.DefaultFormatLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reporter prints report sections as lines of text, one write per line.
type Reporter struct {
	out         io.Writer
	log         log.FieldLogger
	verbose     bool
	formatLimit int
}

// Sources are the collaborators a full report is collected from.
// Nil collaborators leave their section out, except for the surface whose
// absence is reported.
type Sources struct {
	Backend gfx.Backend
	Surface gfx.Surface
	Compute compute.API
	Vulkan  device.Enumerator

	// SkipSurface leaves the surface section out, for headless use.
	SkipSurface bool
}

// Section prints a section header.
func (r *Reporter) Section(title string) {
	r.line(0, "=== %s ===", title)
}

// Report collects and prints every section available in src.
func (r *Reporter) Report(src Sources) Snapshot {
	s := r.Collect(src)
	r.Write(s)
	return s
}

// Write prints every section present in s.
func (r *Reporter) Write(s Snapshot) {
	if s.Drivers != nil {
		r.Section(DriversTitle)
		r.writeDrivers(*s.Drivers)
	}
	if s.Surface != nil {
		r.Section(SurfaceTitle)
		r.writeSurface(*s.Surface)
	}
	if s.Compute != nil {
		r.Section(ComputeTitle)
		r.writeCompute(*s.Compute)
	}
	if s.Vulkan != nil {
		r.Section(VulkanTitle)
		r.writeVulkan(*s.Vulkan)
	}
}

func (r *Reporter) line(indent int, format string, args ...interface{}) {
	fmt.Fprintf(r.out, strings.Repeat("  ", indent)+format+"\n", args...)
}

func (r *Reporter) field(indent int, label string, value interface{}) {
	r.line(indent, "%-20s %v", label+":", value)
}

func (r *Reporter) list(indent int, label string, items []string) {
	if !r.verbose {
		if len(items) == 0 {
			r.field(indent, label, None)
			return
		}
		r.field(indent, label, strings.Join(items, " "))
		return
	}
	r.field(indent, label, len(items))
	for _, item := range items {
		r.line(indent+1, "%s", item)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
