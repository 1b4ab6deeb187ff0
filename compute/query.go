// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package compute

import (
	"encoding/binary"
	"strings"
)

// QueryString reads a variable length string property. The query is
// called once with a nil buffer to learn the size and once more with a
// buffer of exactly that size. One trailing NUL is stripped.
func QueryString(query func(value []byte) (int, Status)) (string, Status) {
	size, st := query(nil)
	if st != Success {
		return "", st
	}
	if size <= 0 {
		return "", Success
	}

	buf := make([]byte, size)
	n, st := query(buf)
	if st != Success {
		return "", st
	}
	if n < len(buf) {
		buf = buf[:n]
	}
	if len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf), Success
}

// PlatformString reads a string property of a platform.
func PlatformString(api API, platform PlatformID, param PlatformInfo) (string, Status) {
	return QueryString(func(value []byte) (int, Status) {
		return api.PlatformInfo(platform, param, value)
	})
}

// DeviceString reads a string property of a device.
func DeviceString(api API, device DeviceID, param DeviceInfo) (string, Status) {
	return QueryString(func(value []byte) (int, Status) {
		return api.DeviceInfo(device, param, value)
	})
}

// DeviceUint32 reads a 32-bit property with a single fixed-size call.
func DeviceUint32(api API, device DeviceID, param DeviceInfo) (uint32, Status) {
	var buf [4]byte
	if _, st := api.DeviceInfo(device, param, buf[:]); st != Success {
		return 0, st
	}
	return binary.NativeEndian.Uint32(buf[:]), Success
}

// DeviceUint64 reads a 64-bit property with a single fixed-size call.
func DeviceUint64(api API, device DeviceID, param DeviceInfo) (uint64, Status) {
	var buf [8]byte
	if _, st := api.DeviceInfo(device, param, buf[:]); st != Success {
		return 0, st
	}
	return binary.NativeEndian.Uint64(buf[:]), Success
}

// DeviceSize reads a native size property with a single fixed-size call.
func DeviceSize(api API, device DeviceID, param DeviceInfo) (uint64, Status) {
	var buf [SizeT]byte
	if _, st := api.DeviceInfo(device, param, buf[:]); st != Success {
		return 0, st
	}
	return decodeSize(buf[:]), Success
}

// DeviceWorkItemSizes reads the first three maximum work item sizes.
// ok is false when the device reports less than three dimensions worth
// of data; nothing beyond the reported size is ever interpreted.
func DeviceWorkItemSizes(api API, device DeviceID) (sizes [3]uint64, ok bool, st Status) {
	size, st := api.DeviceInfo(device, DeviceMaxWorkItemSizes, nil)
	if st != Success {
		return sizes, false, st
	}
	if size < 3*SizeT {
		return sizes, false, Success
	}

	buf := make([]byte, size)
	n, st := api.DeviceInfo(device, DeviceMaxWorkItemSizes, buf)
	if st != Success {
		return sizes, false, st
	}
	if n < 3*SizeT {
		return sizes, false, Success
	}
	for i := range sizes {
		sizes[i] = decodeSize(buf[i*SizeT : (i+1)*SizeT])
	}
	return sizes, true, Success
}

func decodeSize(b []byte) uint64 {
	if SizeT == 8 {
		return binary.NativeEndian.Uint64(b)
	}
	return uint64(binary.NativeEndian.Uint32(b))
}

// PlatformIDs enumerates all platforms with a count query followed by a fill.
func PlatformIDs(api API) ([]PlatformID, Status) {
	count, st := api.PlatformIDs(nil)
	if st != Success {
		return nil, st
	}
	ids := make([]PlatformID, count)
	if count == 0 {
		return ids, Success
	}
	n, st := api.PlatformIDs(ids)
	if st != Success {
		return nil, st
	}
	if n < count {
		ids = ids[:n]
	}
	return ids, Success
}

// DeviceIDs enumerates devices of a platform with a count query followed by a fill.
func DeviceIDs(api API, platform PlatformID, typ DeviceType) ([]DeviceID, Status) {
	count, st := api.DeviceIDs(platform, typ, nil)
	if st != Success {
		return nil, st
	}
	ids := make([]DeviceID, count)
	if count == 0 {
		return ids, Success
	}
	n, st := api.DeviceIDs(platform, typ, ids)
	if st != Success {
		return nil, st
	}
	if n < count {
		ids = ids[:n]
	}
	return ids, Success
}

// SplitExtensions splits a space separated extension string into
// its distinct non-empty tokens, keeping their order.
func SplitExtensions(s string) []string {
	tokens := []string{}
	seen := make(map[string]struct{})
	for _, tok := range strings.Split(s, " ") {
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}
