// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"fmt"

	vk "github.com/devblok/vulkan"
)

// DefaultVulkanApplicationInfo describes the reporting application to the Vulkan loader
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   safeString("capview"),
	PEngineName:        safeString("capview"),
}

// NewVulkanEnumerator loads the Vulkan library and creates a bare instance
// with no extensions or layers, only usable for device enumeration.
func NewVulkanEnumerator(appInfo *vk.ApplicationInfo) (*Vulkan, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	v := &Vulkan{}
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &v.instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	if err := vk.InitInstance(v.instance); err != nil {
		vk.DestroyInstance(v.instance, nil)
		return nil, errors.New("vk.InitInstance(): " + err.Error())
	}

	return v, nil
}

// Vulkan is an Enumerator over a Vulkan instance.
type Vulkan struct {
	instance vk.Instance
}

func (v *Vulkan) enumerateDevices() ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	devices := make([]vk.PhysicalDevice, deviceCount)
	if deviceCount == 0 {
		return devices, nil
	}
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, devices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return devices[:deviceCount], nil
}

// PhysicalDevices implements interface
func (v *Vulkan) PhysicalDevices() ([]PhysicalDeviceInfo, error) {
	devices, err := v.enumerateDevices()
	if err != nil {
		return nil, err
	}

	pdi := make([]PhysicalDeviceInfo, len(devices))
	for i, dev := range devices {
		pdi[i].Index = i

		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if numDeviceExtensions > 0 {
			if err := vk.Error(vk.EnumerateDeviceExtensionProperties(dev, "", &numDeviceExtensions, deviceExt)); err != nil {
				pdi[i].Invalid = true
			}
		}
		pdi[i].Extensions = []string{}
		for _, ext := range deviceExt[:numDeviceExtensions] {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if numDeviceLayers > 0 {
			if err := vk.Error(vk.EnumerateDeviceLayerProperties(dev, &numDeviceLayers, deviceLayers)); err != nil {
				pdi[i].Invalid = true
			}
		}
		pdi[i].Layers = []string{}
		for _, layer := range deviceLayers[:numDeviceLayers] {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(dev, &memoryProperties)
		memoryProperties.Deref()
		for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory += uint64(memoryProperties.MemoryHeaps[iMem].Size)
		}

		// Get general device info
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(dev, &properties)
		properties.Deref()
		pdi[i].ID = properties.DeviceID
		pdi[i].VendorID = properties.VendorID
		pdi[i].Name = vk.ToString(properties.DeviceName[:])
		pdi[i].Type = TypeName(properties.DeviceType)
		pdi[i].APIVersion = FormatVersion(properties.ApiVersion)
		pdi[i].DriverVersion = FormatVersion(properties.DriverVersion)
	}
	return pdi, nil
}

// Destroy implements interface
func (v *Vulkan) Destroy() {
	if v == nil || v.instance == nil {
		return
	}
	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
}

// TypeName returns the display name of a physical device type.
func TypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "Integrated GPU"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "Discrete GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "Virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	default:
		return "Other"
	}
}

// FormatVersion decodes a packed major.minor.patch Vulkan version.
func FormatVersion(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22, (v>>12)&0x3ff, v&0xfff)
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}
