// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package computetest provides an in-memory compute.API for tests.
package computetest

import (
	"encoding/binary"

	"github.com/devblok/capview/compute"
)

// Device is a fake compute device.
type Device struct {
	Strings map[compute.DeviceInfo]string

	Type             compute.DeviceType
	ComputeUnits     uint32
	ClockMHz         uint32
	GlobalMemSize    uint64
	LocalMemSize     uint64
	MaxWorkGroupSize uint64
	WorkItemSizes    []uint64
	ImageSupport     bool

	// InfoStatus makes every info query of the device fail.
	InfoStatus compute.Status
}

// Platform is a fake compute platform.
type Platform struct {
	Strings map[compute.PlatformInfo]string
	Devices []Device

	// DevicesStatus makes the device count query fail.
	DevicesStatus compute.Status
}

// API is a fake compute.API serving Platforms.
type API struct {
	Platforms []Platform

	// CountStatus makes the platform count query fail.
	CountStatus compute.Status

	// Calls counts every call made to the API.
	Calls int
}

func platformID(p int) compute.PlatformID {
	return compute.PlatformID(p + 1)
}

func deviceID(p, d int) compute.DeviceID {
	return compute.DeviceID((p+1)<<16 | (d + 1))
}

func (a *API) platform(id compute.PlatformID) (*Platform, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(a.Platforms) {
		return nil, false
	}
	return &a.Platforms[idx], true
}

func (a *API) device(id compute.DeviceID) (*Device, bool) {
	p, ok := a.platform(compute.PlatformID(id >> 16))
	if !ok {
		return nil, false
	}
	idx := int(id&0xFFFF) - 1
	if idx < 0 || idx >= len(p.Devices) {
		return nil, false
	}
	return &p.Devices[idx], true
}

// PlatformIDs implements interface
func (a *API) PlatformIDs(ids []compute.PlatformID) (uint32, compute.Status) {
	a.Calls++
	if a.CountStatus != compute.Success {
		return 0, a.CountStatus
	}
	for i := 0; i < len(ids) && i < len(a.Platforms); i++ {
		ids[i] = platformID(i)
	}
	return uint32(len(a.Platforms)), compute.Success
}

// PlatformInfo implements interface
func (a *API) PlatformInfo(id compute.PlatformID, param compute.PlatformInfo, value []byte) (int, compute.Status) {
	a.Calls++
	p, ok := a.platform(id)
	if !ok {
		return 0, compute.InvalidPlatform
	}
	s, ok := p.Strings[param]
	if !ok {
		return 0, compute.InvalidValue
	}
	return fill(cString(s), value)
}

// DeviceIDs implements interface
func (a *API) DeviceIDs(id compute.PlatformID, typ compute.DeviceType, ids []compute.DeviceID) (uint32, compute.Status) {
	a.Calls++
	p, ok := a.platform(id)
	if !ok {
		return 0, compute.InvalidPlatform
	}
	if p.DevicesStatus != compute.Success {
		return 0, p.DevicesStatus
	}
	var matched []compute.DeviceID
	for d := range p.Devices {
		if p.Devices[d].Type&typ != 0 {
			matched = append(matched, deviceID(int(id)-1, d))
		}
	}
	copy(ids, matched)
	return uint32(len(matched)), compute.Success
}

// DeviceInfo implements interface
func (a *API) DeviceInfo(id compute.DeviceID, param compute.DeviceInfo, value []byte) (int, compute.Status) {
	a.Calls++
	d, ok := a.device(id)
	if !ok {
		return 0, compute.InvalidDevice
	}
	if d.InfoStatus != compute.Success {
		return 0, d.InfoStatus
	}

	var data []byte
	switch param {
	case compute.DeviceTypeInfo:
		data = u64(uint64(d.Type))
	case compute.DeviceMaxComputeUnits:
		data = u32(d.ComputeUnits)
	case compute.DeviceMaxClockFrequency:
		data = u32(d.ClockMHz)
	case compute.DeviceImageSupport:
		var b uint32
		if d.ImageSupport {
			b = 1
		}
		data = u32(b)
	case compute.DeviceGlobalMemSize:
		data = u64(d.GlobalMemSize)
	case compute.DeviceLocalMemSize:
		data = u64(d.LocalMemSize)
	case compute.DeviceMaxWorkGroupSize:
		data = size(d.MaxWorkGroupSize)
	case compute.DeviceMaxWorkItemDims:
		data = u32(uint32(len(d.WorkItemSizes)))
	case compute.DeviceMaxWorkItemSizes:
		for _, s := range d.WorkItemSizes {
			data = append(data, size(s)...)
		}
	default:
		s, ok := d.Strings[param]
		if !ok {
			return 0, compute.InvalidValue
		}
		data = cString(s)
	}
	return fill(data, value)
}

func fill(data, value []byte) (int, compute.Status) {
	if len(value) == 0 {
		return len(data), compute.Success
	}
	if len(value) < len(data) {
		return 0, compute.InvalidValue
	}
	copy(value, data)
	return len(data), compute.Success
}

func cString(s string) []byte {
	return append([]byte(s), 0)
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	return b
}

func u64(v uint64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	return b
}

func size(v uint64) []byte {
	if compute.SizeT == 8 {
		return u64(v)
	}
	return u32(uint32(v))
}
