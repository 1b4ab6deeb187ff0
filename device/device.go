// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device enumerates the Vulkan physical devices of the host.
package device

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	Index         int      `json:"index"`
	ID            uint32   `json:"device_id"`
	VendorID      uint32   `json:"vendor_id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	APIVersion    string   `json:"api_version"`
	DriverVersion string   `json:"driver_version"`
	Memory        uint64   `json:"memory_bytes"`
	Extensions    []string `json:"extensions"`
	Layers        []string `json:"layers"`

	// Invalid is set when one of the extension or layer queries failed,
	// the lists are then incomplete.
	Invalid bool `json:"invalid,omitempty"`
}

// Enumerator lists the physical devices of a graphics API instance.
type Enumerator interface {
	PhysicalDevices() ([]PhysicalDeviceInfo, error)
	Destroy()
}
