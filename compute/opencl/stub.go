// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

//go:build !opencl

// Package opencl binds compute.API to the system OpenCL ICD loader.
// Without the opencl build tag the platform reports no platforms.
package opencl

import "github.com/devblok/capview/compute"

// Available reports whether the binding is linked against OpenCL.
const Available = false

// New returns a compute API that has no platforms.
func New() compute.API {
	return API{}
}

// API is the unlinked stand-in for the OpenCL loader.
type API struct{}

// PlatformIDs implements interface
func (API) PlatformIDs([]compute.PlatformID) (uint32, compute.Status) {
	return 0, compute.PlatformNotFoundKHR
}

// PlatformInfo implements interface
func (API) PlatformInfo(compute.PlatformID, compute.PlatformInfo, []byte) (int, compute.Status) {
	return 0, compute.InvalidPlatform
}

// DeviceIDs implements interface
func (API) DeviceIDs(compute.PlatformID, compute.DeviceType, []compute.DeviceID) (uint32, compute.Status) {
	return 0, compute.InvalidPlatform
}

// DeviceInfo implements interface
func (API) DeviceInfo(compute.DeviceID, compute.DeviceInfo, []byte) (int, compute.Status) {
	return 0, compute.InvalidDevice
}
