// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report

import (
	"encoding/json"
	"io"
	"time"
)

// Snapshot holds every collected section. A nil section was not collected.
type Snapshot struct {
	Time    time.Time      `json:"time"`
	Drivers *DriverReport  `json:"drivers,omitempty"`
	Surface *SurfaceReport `json:"surface,omitempty"`
	Compute *ComputeTree   `json:"compute,omitempty"`
	Vulkan  *VulkanReport  `json:"vulkan,omitempty"`
}

// Collect queries every collaborator present in src without printing.
func (r *Reporter) Collect(src Sources) Snapshot {
	s := Snapshot{Time: time.Now()}
	if src.Backend != nil {
		dr := CollectDrivers(src.Backend)
		s.Drivers = &dr
	}
	if !src.SkipSurface {
		sr := CollectSurface(src.Backend, src.Surface, r.formatLimit)
		s.Surface = &sr
	}
	if src.Compute != nil {
		ct := CollectCompute(src.Compute, r.log)
		s.Compute = &ct
	}
	if src.Vulkan != nil {
		vr := CollectVulkan(src.Vulkan)
		s.Vulkan = &vr
	}
	r.log.WithField("time", s.Time).Debug("Collected capability snapshot")
	return s
}

// WriteJSON encodes s as an indented JSON document.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
