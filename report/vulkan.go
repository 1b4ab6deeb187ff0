// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report

import (
	"fmt"

	"github.com/devblok/capview/device"
)

// VulkanReport lists the Vulkan physical devices.
type VulkanReport struct {
	Error   string                      `json:"error,omitempty"`
	Devices []device.PhysicalDeviceInfo `json:"devices"`
}

// CollectVulkan enumerates the physical devices of e.
func CollectVulkan(e device.Enumerator) VulkanReport {
	devices, err := e.PhysicalDevices()
	if err != nil {
		return VulkanReport{Error: err.Error()}
	}
	return VulkanReport{Devices: devices}
}

// ReportVulkan prints the physical devices of e.
func (r *Reporter) ReportVulkan(e device.Enumerator) {
	r.writeVulkan(CollectVulkan(e))
}

func (r *Reporter) writeVulkan(vr VulkanReport) {
	if vr.Error != "" {
		r.line(0, "Physical device enumeration error: %s", vr.Error)
		return
	}
	if len(vr.Devices) == 0 {
		r.line(0, "No devices found")
		return
	}

	for _, d := range vr.Devices {
		r.line(0, "Device [%d]", d.Index)
		r.field(1, "Name", d.Name)
		r.field(1, "Type", d.Type)
		r.field(1, "API version", d.APIVersion)
		r.field(1, "Driver version", d.DriverVersion)
		r.field(1, "Vendor/Device ID", fmt.Sprintf("%#04x/%#04x", d.VendorID, d.ID))
		r.field(1, "Heap memory", fmt.Sprintf("%d MiB", d.Memory/(1024*1024)))
		if r.verbose {
			r.list(1, "Extensions", d.Extensions)
			r.list(1, "Layers", d.Layers)
		} else {
			r.field(1, "Extensions", len(d.Extensions))
			r.field(1, "Layers", len(d.Layers))
		}
		if d.Invalid {
			r.line(1, "Some device queries failed")
		}
	}
}
