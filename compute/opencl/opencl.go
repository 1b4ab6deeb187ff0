// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

//go:build opencl

// Package opencl binds compute.API to the system OpenCL ICD loader.
// Build with the opencl tag to link against libOpenCL.
package opencl

/*
#cgo linux LDFLAGS: -lOpenCL
#cgo windows LDFLAGS: -lOpenCL
#cgo darwin LDFLAGS: -framework OpenCL
#define CL_TARGET_OPENCL_VERSION 120
#ifdef __APPLE__
#include <OpenCL/opencl.h>
#else
#include <CL/cl.h>
#endif
*/
import "C"

import (
	"unsafe"

	"github.com/devblok/capview/compute"
)

// Available reports whether the binding is linked against OpenCL.
const Available = true

// New returns the OpenCL backed compute API.
func New() compute.API {
	return API{}
}

// API calls straight into the OpenCL loader.
type API struct{}

func platformHandle(id compute.PlatformID) C.cl_platform_id {
	return C.cl_platform_id(unsafe.Pointer(uintptr(id)))
}

func deviceHandle(id compute.DeviceID) C.cl_device_id {
	return C.cl_device_id(unsafe.Pointer(uintptr(id)))
}

// PlatformIDs implements interface
func (API) PlatformIDs(ids []compute.PlatformID) (uint32, compute.Status) {
	var (
		count C.cl_uint
		buf   []C.cl_platform_id
		ptr   *C.cl_platform_id
	)
	if len(ids) > 0 {
		buf = make([]C.cl_platform_id, len(ids))
		ptr = &buf[0]
	}
	st := C.clGetPlatformIDs(C.cl_uint(len(buf)), ptr, &count)
	for i := range buf {
		ids[i] = compute.PlatformID(uintptr(unsafe.Pointer(buf[i])))
	}
	return uint32(count), compute.Status(st)
}

// PlatformInfo implements interface
func (API) PlatformInfo(id compute.PlatformID, param compute.PlatformInfo, value []byte) (int, compute.Status) {
	var (
		size C.size_t
		ptr  unsafe.Pointer
	)
	if len(value) > 0 {
		ptr = unsafe.Pointer(&value[0])
	}
	st := C.clGetPlatformInfo(platformHandle(id), C.cl_platform_info(param), C.size_t(len(value)), ptr, &size)
	return int(size), compute.Status(st)
}

// DeviceIDs implements interface
func (API) DeviceIDs(id compute.PlatformID, typ compute.DeviceType, ids []compute.DeviceID) (uint32, compute.Status) {
	var (
		count C.cl_uint
		buf   []C.cl_device_id
		ptr   *C.cl_device_id
	)
	if len(ids) > 0 {
		buf = make([]C.cl_device_id, len(ids))
		ptr = &buf[0]
	}
	st := C.clGetDeviceIDs(platformHandle(id), C.cl_device_type(typ), C.cl_uint(len(buf)), ptr, &count)
	for i := range buf {
		ids[i] = compute.DeviceID(uintptr(unsafe.Pointer(buf[i])))
	}
	return uint32(count), compute.Status(st)
}

// DeviceInfo implements interface
func (API) DeviceInfo(id compute.DeviceID, param compute.DeviceInfo, value []byte) (int, compute.Status) {
	var (
		size C.size_t
		ptr  unsafe.Pointer
	)
	if len(value) > 0 {
		ptr = unsafe.Pointer(&value[0])
	}
	st := C.clGetDeviceInfo(deviceHandle(id), C.cl_device_info(param), C.size_t(len(value)), ptr, &size)
	return int(size), compute.Status(st)
}
