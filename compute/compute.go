// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package compute describes a heterogeneous compute platform API in the
// shape of OpenCL's query functions: count-then-fill id enumeration and
// size-then-fill property reads into caller provided byte buffers.
package compute

import "unsafe"

// PlatformID identifies a compute platform.
type PlatformID uintptr

// DeviceID identifies a compute device.
type DeviceID uintptr

// SizeT is the byte width of the platform's native size type.
const SizeT = int(unsafe.Sizeof(uintptr(0)))

// API is the read-only query surface of a compute platform.
//
// The id queries fill ids when it's non-empty and always return the total
// count. The info queries fill value when it's non-empty and return the
// size of the property in bytes; a value buffer shorter than that size is
// an InvalidValue error, like in OpenCL.
type API interface {
	PlatformIDs(ids []PlatformID) (uint32, Status)
	PlatformInfo(platform PlatformID, param PlatformInfo, value []byte) (int, Status)
	DeviceIDs(platform PlatformID, typ DeviceType, ids []DeviceID) (uint32, Status)
	DeviceInfo(device DeviceID, param DeviceInfo, value []byte) (int, Status)
}

// PlatformInfo names a platform property.
type PlatformInfo uint32

// Platform properties
const (
	PlatformProfile    PlatformInfo = 0x0900
	PlatformVersion    PlatformInfo = 0x0901
	PlatformName       PlatformInfo = 0x0902
	PlatformVendor     PlatformInfo = 0x0903
	PlatformExtensions PlatformInfo = 0x0904
)

// DeviceInfo names a device property.
type DeviceInfo uint32

// Device properties
const (
	DeviceTypeInfo          DeviceInfo = 0x1000
	DeviceMaxComputeUnits   DeviceInfo = 0x1002
	DeviceMaxWorkItemDims   DeviceInfo = 0x1003
	DeviceMaxWorkGroupSize  DeviceInfo = 0x1004
	DeviceMaxWorkItemSizes  DeviceInfo = 0x1005
	DeviceMaxClockFrequency DeviceInfo = 0x100C
	DeviceImageSupport      DeviceInfo = 0x1016
	DeviceGlobalMemSize     DeviceInfo = 0x101F
	DeviceLocalMemSize      DeviceInfo = 0x1023
	DeviceName              DeviceInfo = 0x102B
	DeviceVendor            DeviceInfo = 0x102C
	DriverVersion           DeviceInfo = 0x102D
	DeviceProfile           DeviceInfo = 0x102E
	DeviceVersion           DeviceInfo = 0x102F
	DeviceExtensions        DeviceInfo = 0x1030
)
