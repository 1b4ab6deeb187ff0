// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report

import (
	"fmt"

	"github.com/devblok/capview/compute"
	log "github.com/sirupsen/logrus"
)

// DeviceReport holds the capabilities of one compute device.
// MaxWorkItemSizes is nil when the device reported fewer than three dimensions.
type DeviceReport struct {
	Index            int                `json:"index"`
	Name             string             `json:"name"`
	Vendor           string             `json:"vendor"`
	Version          string             `json:"version"`
	DriverVersion    string             `json:"driver_version"`
	Type             compute.DeviceType `json:"type"`
	TypeLabel        string             `json:"type_label"`
	ComputeUnits     uint32             `json:"compute_units"`
	ClockMHz         uint32             `json:"clock_mhz"`
	GlobalMemMiB     uint64             `json:"global_mem_mib"`
	LocalMemKiB      uint64             `json:"local_mem_kib"`
	MaxWorkGroupSize uint64             `json:"max_work_group_size"`
	MaxWorkItemSizes *[3]uint64         `json:"max_work_item_sizes,omitempty"`
	ImageSupport     bool               `json:"image_support"`
	Extensions       []string           `json:"extensions"`
}

// PlatformReport holds one compute platform and its devices.
type PlatformReport struct {
	Index        int            `json:"index"`
	Profile      string         `json:"profile"`
	Version      string         `json:"version"`
	Name         string         `json:"name"`
	Vendor       string         `json:"vendor"`
	Extensions   []string       `json:"extensions"`
	DevicesError string         `json:"devices_error,omitempty"`
	Devices      []DeviceReport `json:"devices"`
}

// ComputeTree is the platform to device tree of a compute API.
type ComputeTree struct {
	Error     string           `json:"error,omitempty"`
	Platforms []PlatformReport `json:"platforms"`
}

// CollectCompute walks every platform of api and every device of each
// platform, in the order the api returns them.
func CollectCompute(api compute.API, logger log.FieldLogger) ComputeTree {
	var tree ComputeTree
	platforms, st := compute.PlatformIDs(api)
	if st != compute.Success {
		tree.Error = st.Error()
		return tree
	}

	tree.Platforms = make([]PlatformReport, len(platforms))
	for p, id := range platforms {
		tree.Platforms[p] = collectPlatform(api, p, id, logger)
	}
	return tree
}

func collectPlatform(api compute.API, index int, id compute.PlatformID, logger log.FieldLogger) PlatformReport {
	str := func(param compute.PlatformInfo) string {
		s, st := compute.PlatformString(api, id, param)
		if st != compute.Success {
			logger.WithFields(log.Fields{
				"platform": index,
				"param":    fmt.Sprintf("%#x", uint32(param)),
			}).Debug("Platform string query failed: ", st)
			return Unknown
		}
		return s
	}

	pr := PlatformReport{
		Index:   index,
		Profile: str(compute.PlatformProfile),
		Version: str(compute.PlatformVersion),
		Name:    str(compute.PlatformName),
		Vendor:  str(compute.PlatformVendor),
	}
	ext, st := compute.PlatformString(api, id, compute.PlatformExtensions)
	if st != compute.Success {
		ext = ""
	}
	pr.Extensions = compute.SplitExtensions(ext)

	devices, st := compute.DeviceIDs(api, id, compute.DeviceTypeAll)
	if st != compute.Success {
		pr.DevicesError = st.Error()
		return pr
	}
	pr.Devices = make([]DeviceReport, len(devices))
	for d, dev := range devices {
		pr.Devices[d] = collectDevice(api, d, dev, logger.WithField("platform", index))
	}
	return pr
}

func collectDevice(api compute.API, index int, id compute.DeviceID, logger log.FieldLogger) DeviceReport {
	logger = logger.WithField("device", index)
	failed := func(param compute.DeviceInfo, st compute.Status) {
		logger.WithField("param", fmt.Sprintf("%#x", uint32(param))).Debug("Device query failed: ", st)
	}
	str := func(param compute.DeviceInfo) string {
		s, st := compute.DeviceString(api, id, param)
		if st != compute.Success {
			failed(param, st)
			return Unknown
		}
		return s
	}
	u32 := func(param compute.DeviceInfo) uint32 {
		v, st := compute.DeviceUint32(api, id, param)
		if st != compute.Success {
			failed(param, st)
		}
		return v
	}
	u64 := func(param compute.DeviceInfo) uint64 {
		v, st := compute.DeviceUint64(api, id, param)
		if st != compute.Success {
			failed(param, st)
		}
		return v
	}

	dr := DeviceReport{
		Index:         index,
		Name:          str(compute.DeviceName),
		Vendor:        str(compute.DeviceVendor),
		Version:       str(compute.DeviceVersion),
		DriverVersion: str(compute.DriverVersion),
		Type:          compute.DeviceType(u64(compute.DeviceTypeInfo)),
		ComputeUnits:  u32(compute.DeviceMaxComputeUnits),
		ClockMHz:      u32(compute.DeviceMaxClockFrequency),
		GlobalMemMiB:  u64(compute.DeviceGlobalMemSize) / (1024 * 1024),
		LocalMemKiB:   u64(compute.DeviceLocalMemSize) / 1024,
		ImageSupport:  u32(compute.DeviceImageSupport) != 0,
	}
	dr.TypeLabel = dr.Type.String()

	wg, st := compute.DeviceSize(api, id, compute.DeviceMaxWorkGroupSize)
	if st != compute.Success {
		failed(compute.DeviceMaxWorkGroupSize, st)
	}
	dr.MaxWorkGroupSize = wg

	sizes, ok, st := compute.DeviceWorkItemSizes(api, id)
	if st != compute.Success {
		failed(compute.DeviceMaxWorkItemSizes, st)
	}
	if ok {
		dr.MaxWorkItemSizes = &sizes
	}

	ext, st := compute.DeviceString(api, id, compute.DeviceExtensions)
	if st != compute.Success {
		failed(compute.DeviceExtensions, st)
		ext = ""
	}
	dr.Extensions = compute.SplitExtensions(ext)
	return dr
}

// ReportCompute prints the platform and device tree of api.
func (r *Reporter) ReportCompute(api compute.API) {
	r.writeCompute(CollectCompute(api, r.log))
}

func (r *Reporter) writeCompute(tree ComputeTree) {
	if tree.Error != "" {
		r.line(0, "Platform count error: %s", tree.Error)
		return
	}
	if len(tree.Platforms) == 0 {
		r.line(0, "No platforms found")
		return
	}

	for _, p := range tree.Platforms {
		r.line(0, "Platform [%d]", p.Index)
		r.field(1, "Profile", p.Profile)
		r.field(1, "Version", p.Version)
		r.field(1, "Name", p.Name)
		r.field(1, "Vendor", p.Vendor)
		r.list(1, "Extensions", p.Extensions)

		if p.DevicesError != "" {
			r.line(1, "Device count error: %s", p.DevicesError)
			continue
		}
		if len(p.Devices) == 0 {
			r.line(1, "No devices found")
			continue
		}
		for _, d := range p.Devices {
			r.writeDevice(d)
		}
	}
}

func (r *Reporter) writeDevice(d DeviceReport) {
	r.line(1, "Device [%d]", d.Index)
	r.field(2, "Name", d.Name)
	r.field(2, "Vendor", d.Vendor)
	r.field(2, "Version", d.Version)
	r.field(2, "Driver version", d.DriverVersion)
	r.field(2, "Type", d.TypeLabel)
	r.field(2, "Compute units", d.ComputeUnits)
	r.field(2, "Clock frequency", fmt.Sprintf("%d MHz", d.ClockMHz))
	r.field(2, "Global memory", fmt.Sprintf("%d MiB", d.GlobalMemMiB))
	r.field(2, "Local memory", fmt.Sprintf("%d KiB", d.LocalMemKiB))
	r.field(2, "Max WG size", d.MaxWorkGroupSize)
	if s := d.MaxWorkItemSizes; s != nil {
		r.field(2, "Max WG dims", fmt.Sprintf("%dx%dx%d", s[0], s[1], s[2]))
	} else {
		r.field(2, "Max WG dims", NA)
	}
	r.field(2, "Image support", yesNo(d.ImageSupport))
	r.list(2, "Extensions", d.Extensions)
}
