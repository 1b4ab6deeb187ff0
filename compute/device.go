// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package compute

import "strings"

// DeviceType is a bit set of device categories.
type DeviceType uint64

// Device types
const (
	DeviceTypeDefault     DeviceType = 1 << 0
	DeviceTypeCPU         DeviceType = 1 << 1
	DeviceTypeGPU         DeviceType = 1 << 2
	DeviceTypeAccelerator DeviceType = 1 << 3
	DeviceTypeCustom      DeviceType = 1 << 4
	DeviceTypeAll         DeviceType = 0xFFFFFFFF
)

// deviceTypeLabels is the label order of a synthesized type string.
var deviceTypeLabels = []struct {
	flag  DeviceType
	label string
}{
	{DeviceTypeCPU, "CPU"},
	{DeviceTypeGPU, "GPU"},
	{DeviceTypeAccelerator, "ACCELERATOR"},
	{DeviceTypeDefault, "DEFAULT"},
}

// Labels returns the labels of the set flags in fixed order.
func (t DeviceType) Labels() []string {
	labels := []string{}
	for _, l := range deviceTypeLabels {
		if t&l.flag != 0 {
			labels = append(labels, l.label)
		}
	}
	return labels
}

// String joins Labels with single spaces.
func (t DeviceType) String() string {
	return strings.Join(t.Labels(), " ")
}
