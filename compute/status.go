// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package compute

import "fmt"

// Status is the result code of a compute API call.
type Status int32

// Status codes
const (
	Success                        Status = 0
	DeviceNotFound                 Status = -1
	DeviceNotAvailable             Status = -2
	CompilerNotAvailable           Status = -3
	MemObjectAllocationFailure     Status = -4
	OutOfResources                 Status = -5
	OutOfHostMemory                Status = -6
	ProfilingInfoNotAvailable      Status = -7
	ImageFormatNotSupported        Status = -10
	BuildProgramFailure            Status = -11
	MapFailure                     Status = -12
	MisalignedSubBufferOffset      Status = -13
	ExecStatusErrorForEventsInWait Status = -14
	InvalidValue                   Status = -30
	InvalidDeviceType              Status = -31
	InvalidPlatform                Status = -32
	InvalidDevice                  Status = -33
	InvalidOperation               Status = -59
	InvalidBufferSize              Status = -61
	PlatformNotFoundKHR            Status = -1001
)

var statusNames = map[Status]string{
	Success:                        "CL_SUCCESS",
	DeviceNotFound:                 "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:             "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:           "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure:     "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:                 "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:                "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:      "CL_PROFILING_INFO_NOT_AVAILABLE",
	ImageFormatNotSupported:        "CL_IMAGE_FORMAT_NOT_SUPPORTED",
	BuildProgramFailure:            "CL_BUILD_PROGRAM_FAILURE",
	MapFailure:                     "CL_MAP_FAILURE",
	MisalignedSubBufferOffset:      "CL_MISALIGNED_SUB_BUFFER_OFFSET",
	ExecStatusErrorForEventsInWait: "CL_EXEC_STATUS_ERROR_FOR_EVENTS_IN_WAIT_LIST",
	InvalidValue:                   "CL_INVALID_VALUE",
	InvalidDeviceType:              "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:                "CL_INVALID_PLATFORM",
	InvalidDevice:                  "CL_INVALID_DEVICE",
	InvalidOperation:               "CL_INVALID_OPERATION",
	InvalidBufferSize:              "CL_INVALID_BUFFER_SIZE",
	PlatformNotFoundKHR:            "CL_PLATFORM_NOT_FOUND_KHR",
}

// Error implements error, formatted as the symbolic name and the raw code.
func (s Status) Error() string {
	if name, ok := statusNames[s]; ok {
		return fmt.Sprintf("%s (%d)", name, int32(s))
	}
	return fmt.Sprintf("CL error %d", int32(s))
}

// Err returns nil for Success and s otherwise.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	return s
}
