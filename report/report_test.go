// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/devblok/capview/compute"
	"github.com/devblok/capview/compute/computetest"
	"github.com/devblok/capview/device"
	"github.com/devblok/capview/gfx"
	"github.com/devblok/capview/report"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	video    string
	drivers  []string
	countErr error
}

func (b *fakeBackend) CurrentVideoDriver() (string, bool) {
	return b.video, b.video != ""
}

func (b *fakeBackend) NumRenderDrivers() (int, error) {
	if b.countErr != nil {
		return 0, b.countErr
	}
	return len(b.drivers), nil
}

func (b *fakeBackend) RenderDriver(index int) (string, bool) {
	name := b.drivers[index]
	return name, name != ""
}

func (b *fakeBackend) PixelFormatName(f gfx.PixelFormat) string {
	return fmt.Sprintf("FMT%d", f)
}

type fakeSurface struct {
	name    string
	w, h    int32
	sizeErr error
	props   gfx.Properties

	draws int
}

func (s *fakeSurface) SetDrawColor(color.RGBA) error { s.draws++; return nil }
func (s *fakeSurface) FillRect(gfx.Rect) error        { s.draws++; return nil }

func (s *fakeSurface) Name() (string, bool) {
	return s.name, s.name != ""
}

func (s *fakeSurface) OutputSize() (int32, int32, error) {
	return s.w, s.h, s.sizeErr
}

func (s *fakeSurface) Properties() gfx.Properties {
	if s.props == nil {
		return nil
	}
	return s.props
}

type fakeEnumerator struct {
	devices []device.PhysicalDeviceInfo
	err     error
}

func (e *fakeEnumerator) PhysicalDevices() ([]device.PhysicalDeviceInfo, error) {
	return e.devices, e.err
}

func (e *fakeEnumerator) Destroy() {}

// countingWriter records every Write call.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.writes++
	return w.Buffer.Write(p)
}

func field(indent int, label string, value interface{}) string {
	return strings.Repeat("  ", indent) + fmt.Sprintf("%-20s %v", label+":", value)
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func newReporter(opts ...report.Option) (*report.Reporter, *countingWriter) {
	out := &countingWriter{}
	logger, _ := test.NewNullLogger()
	return report.New(out, append([]report.Option{report.WithLogger(logger)}, opts...)...), out
}

func TestReportDrivers(t *testing.T) {
	r, out := newReporter()
	r.ReportDrivers(&fakeBackend{
		video:   "x11",
		drivers: []string{"opengl", "", "software"},
	})

	assert.Equal(t, []string{
		"Current video driver: x11",
		"Available render drivers: 3",
		"  [0] opengl",
		"  [1] (unknown)",
		"  [2] software",
	}, lines(out.String()))
	assert.Equal(t, 5, out.writes)
}

func TestReportDriversCountError(t *testing.T) {
	r, out := newReporter()
	r.ReportDrivers(&fakeBackend{countErr: errors.New("video subsystem not initialized")})

	assert.Equal(t, "Render driver count error: video subsystem not initialized\n", out.String())
	assert.Equal(t, 1, out.writes)
}

func TestReportSurfaceNil(t *testing.T) {
	r, out := newReporter()
	r.ReportSurface(&fakeBackend{}, nil)

	assert.Equal(t, "No surface\n", out.String())
	assert.Equal(t, 1, out.writes)
}

func TestReportSurfaceNoProperties(t *testing.T) {
	logger, hook := test.NewNullLogger()
	out := &bytes.Buffer{}
	r := report.New(out, report.WithLogger(logger))

	r.ReportSurface(&fakeBackend{}, &fakeSurface{name: "opengl", w: 640, h: 480})

	assert.Equal(t, []string{
		field(0, "Name", "opengl"),
		field(0, "Output size", "640x480"),
		"No surface properties available",
	}, lines(out.String()))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
}

func TestReportSurfaceDefaults(t *testing.T) {
	r, out := newReporter()
	s := &fakeSurface{sizeErr: errors.New("no output"), props: gfx.PropertyMap{}}
	r.ReportSurface(nil, s)

	assert.Equal(t, []string{
		field(0, "Name", report.Unknown),
		field(0, "Max texture size", -1),
		field(0, "Driver (property)", report.Unknown),
		field(0, "VSync setting", 0),
		field(0, "Output colorspace", "Unknown (0x00000000)"),
		field(0, "HDR enabled", "No"),
		field(0, "Texture formats", report.Unknown),
	}, lines(out.String()))
	assert.Zero(t, s.draws)
}

func TestReportSurfaceProperties(t *testing.T) {
	r, out := newReporter()
	s := &fakeSurface{
		name: "direct3d12",
		w:    1920,
		h:    1080,
		props: gfx.PropertyMap{
			gfx.PropMaxTextureSize:   int64(16384),
			gfx.PropName:             "direct3d12",
			gfx.PropVSync:            int64(1),
			gfx.PropOutputColorSpace: int64(gfx.ColorSpaceHDR10),
			gfx.PropHDREnabled:       true,
			gfx.PropSDRWhitePoint:    float32(2.5),
			gfx.PropHDRHeadroom:      float32(4),
			gfx.PropTextureFormats:   []gfx.PixelFormat{1, 2, 3, gfx.PixelFormatUnknown, 4},
		},
	}
	r.ReportSurface(&fakeBackend{}, s)

	assert.Equal(t, []string{
		field(0, "Name", "direct3d12"),
		field(0, "Output size", "1920x1080"),
		field(0, "Max texture size", 16384),
		field(0, "Driver (property)", "direct3d12"),
		field(0, "VSync setting", 1),
		field(0, "Output colorspace", "HDR10 (0x12002600)"),
		field(0, "HDR enabled", "Yes"),
		field(0, "SDR white point", 2.5),
		field(0, "HDR headroom", 4),
		field(0, "Texture formats", "FMT1, FMT2, FMT3"),
	}, lines(out.String()))
	assert.Zero(t, s.draws)
}

func TestTextureFormatMarkers(t *testing.T) {
	cases := []struct {
		name     string
		formats  interface{}
		expected string
	}{
		{"absent", nil, report.Unknown},
		{"wrong type", "FMT1", report.Unknown},
		{"sentinel only", []gfx.PixelFormat{gfx.PixelFormatUnknown}, report.None},
		{"empty", []gfx.PixelFormat{}, report.None},
		{"unterminated", []gfx.PixelFormat{7, 8}, "FMT7, FMT8"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			props := gfx.PropertyMap{}
			if c.formats != nil {
				props[gfx.PropTextureFormats] = c.formats
			}
			sr := report.CollectSurface(&fakeBackend{}, &fakeSurface{props: props}, 0)
			require.NotNil(t, sr.Properties)
			assert.Equal(t, c.expected, sr.Properties.TextureFormats.String())
		})
	}
}

func TestTextureFormatLimit(t *testing.T) {
	formats := make([]gfx.PixelFormat, 10)
	for i := range formats {
		formats[i] = gfx.PixelFormat(i + 1)
	}
	props := gfx.PropertyMap{gfx.PropTextureFormats: formats}

	sr := report.CollectSurface(nil, &fakeSurface{props: props}, 3)
	require.NotNil(t, sr.Properties)
	assert.Equal(t, []string{"0x00000001", "0x00000002", "0x00000003"}, sr.Properties.TextureFormats.Names)
}

func TestReportSurfaceHDRDisabled(t *testing.T) {
	sr := report.CollectSurface(nil, &fakeSurface{props: gfx.PropertyMap{
		gfx.PropSDRWhitePoint: float32(1),
		gfx.PropHDRHeadroom:   float32(1),
	}}, 0)
	require.NotNil(t, sr.Properties)
	assert.Nil(t, sr.Properties.SDRWhitePoint)
	assert.Nil(t, sr.Properties.HDRHeadroom)
}

func TestReportSurfaceCustomColorSpace(t *testing.T) {
	tests := []struct {
		name string
		code int64
		want string
	}{
		{"unlisted", 0x7fffffff, "Custom/Unknown (0x7fffffff)"},
		{"high bits over srgb", int64(1)<<32 | int64(gfx.ColorSpaceSRGB), "Custom/Unknown (0x1120005a0)"},
		{"high bits over unknown", int64(1) << 32, "Custom/Unknown (0x100000000)"},
		{"negative", -1, "Custom/Unknown (-0x00000001)"},
		{"max uint32", 0xffffffff, "Custom/Unknown (0xffffffff)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			surface := &fakeSurface{props: gfx.PropertyMap{
				gfx.PropOutputColorSpace: tc.code,
			}}
			sr := report.CollectSurface(nil, surface, 0)
			require.NotNil(t, sr.Properties)
			assert.Equal(t, gfx.CustomColorSpaceLabel, sr.Properties.ColorSpaceName)
			assert.Equal(t, tc.code, sr.Properties.ColorSpace)

			r, out := newReporter()
			r.ReportSurface(nil, surface)
			assert.Contains(t, lines(out.String()), field(0, "Output colorspace", tc.want))
		})
	}
}

func gpu() computetest.Device {
	return computetest.Device{
		Strings: map[compute.DeviceInfo]string{
			compute.DeviceName:       "Radeon",
			compute.DeviceVendor:     "AMD",
			compute.DeviceVersion:    "OpenCL 2.0",
			compute.DriverVersion:    "3004.6",
			compute.DeviceExtensions: "cl_khr_fp64  cl_khr_fp16 cl_khr_fp64 ",
		},
		Type:             compute.DeviceTypeGPU | compute.DeviceTypeDefault,
		ComputeUnits:     36,
		ClockMHz:         1750,
		GlobalMemSize:    8*1024*1024*1024 + 1023,
		LocalMemSize:     64*1024 + 1000,
		MaxWorkGroupSize: 256,
		WorkItemSizes:    []uint64{1024, 1024, 64},
		ImageSupport:     true,
	}
}

func platform(devices ...computetest.Device) computetest.Platform {
	return computetest.Platform{
		Strings: map[compute.PlatformInfo]string{
			compute.PlatformProfile:    "FULL_PROFILE",
			compute.PlatformVersion:    "OpenCL 2.1",
			compute.PlatformName:       "AMD Accelerated Parallel Processing",
			compute.PlatformVendor:     "Advanced Micro Devices, Inc.",
			compute.PlatformExtensions: "cl_khr_icd cl_amd_event_callback",
		},
		Devices: devices,
	}
}

func TestReportComputeCountError(t *testing.T) {
	r, out := newReporter()
	r.ReportCompute(&computetest.API{CountStatus: compute.OutOfHostMemory})

	assert.Equal(t, "Platform count error: "+compute.OutOfHostMemory.Error()+"\n", out.String())
	assert.Equal(t, 1, out.writes)
}

func TestReportComputeNoPlatforms(t *testing.T) {
	r, out := newReporter()
	r.ReportCompute(&computetest.API{})

	assert.Equal(t, "No platforms found\n", out.String())
}

func TestReportComputeTree(t *testing.T) {
	r, out := newReporter()
	r.ReportCompute(&computetest.API{Platforms: []computetest.Platform{platform(gpu())}})

	assert.Equal(t, []string{
		"Platform [0]",
		field(1, "Profile", "FULL_PROFILE"),
		field(1, "Version", "OpenCL 2.1"),
		field(1, "Name", "AMD Accelerated Parallel Processing"),
		field(1, "Vendor", "Advanced Micro Devices, Inc."),
		field(1, "Extensions", "cl_khr_icd cl_amd_event_callback"),
		"  Device [0]",
		field(2, "Name", "Radeon"),
		field(2, "Vendor", "AMD"),
		field(2, "Version", "OpenCL 2.0"),
		field(2, "Driver version", "3004.6"),
		field(2, "Type", "GPU DEFAULT"),
		field(2, "Compute units", 36),
		field(2, "Clock frequency", "1750 MHz"),
		field(2, "Global memory", "8192 MiB"),
		field(2, "Local memory", "64 KiB"),
		field(2, "Max WG size", 256),
		field(2, "Max WG dims", "1024x1024x64"),
		field(2, "Image support", "Yes"),
		field(2, "Extensions", "cl_khr_fp64 cl_khr_fp16"),
	}, lines(out.String()))
}

func TestReportComputeVerboseExtensions(t *testing.T) {
	r, out := newReporter(report.WithVerbose(true))
	r.ReportCompute(&computetest.API{Platforms: []computetest.Platform{platform()}})

	l := lines(out.String())
	assert.Contains(t, l, field(1, "Extensions", 2))
	assert.Contains(t, l, "    cl_khr_icd")
	assert.Contains(t, l, "    cl_amd_event_callback")
}

func TestReportComputeEmptyExtensions(t *testing.T) {
	bare := platform()
	bare.Strings[compute.PlatformExtensions] = ""

	r, out := newReporter()
	r.ReportCompute(&computetest.API{Platforms: []computetest.Platform{bare}})
	assert.Contains(t, lines(out.String()), field(1, "Extensions", report.None))

	r, out = newReporter(report.WithVerbose(true))
	r.ReportCompute(&computetest.API{Platforms: []computetest.Platform{bare}})
	assert.Contains(t, lines(out.String()), field(1, "Extensions", 0))
}

func TestReportComputeDeviceFailures(t *testing.T) {
	broken := platform()
	broken.DevicesStatus = compute.InvalidDeviceType

	short := gpu()
	short.WorkItemSizes = []uint64{1024, 1024}

	api := &computetest.API{Platforms: []computetest.Platform{
		broken,
		platform(),
		platform(short),
	}}
	tree := report.CollectCompute(api, log.New())

	require.Len(t, tree.Platforms, 3)
	assert.Empty(t, tree.Error)

	assert.Equal(t, compute.InvalidDeviceType.Error(), tree.Platforms[0].DevicesError)
	assert.Empty(t, tree.Platforms[0].Devices)

	assert.Empty(t, tree.Platforms[1].DevicesError)
	assert.Empty(t, tree.Platforms[1].Devices)

	require.Len(t, tree.Platforms[2].Devices, 1)
	assert.Nil(t, tree.Platforms[2].Devices[0].MaxWorkItemSizes)

	r, out := newReporter()
	r.Write(report.Snapshot{Compute: &tree})
	l := lines(out.String())
	assert.Contains(t, l, "  Device count error: "+compute.InvalidDeviceType.Error())
	assert.Contains(t, l, "  No devices found")
	assert.Contains(t, l, field(2, "Max WG dims", report.NA))
	assert.Equal(t, 1, strings.Count(out.String(), "Device count error"))
}

func TestCollectComputeInfoFailure(t *testing.T) {
	dev := gpu()
	dev.InfoStatus = compute.InvalidValue
	tree := report.CollectCompute(&computetest.API{Platforms: []computetest.Platform{platform(dev)}}, log.New())

	require.Len(t, tree.Platforms, 1)
	require.Len(t, tree.Platforms[0].Devices, 1)
	d := tree.Platforms[0].Devices[0]
	assert.Equal(t, report.Unknown, d.Name)
	assert.Equal(t, "", d.TypeLabel)
	assert.Nil(t, d.MaxWorkItemSizes)
	assert.Empty(t, d.Extensions)
}

func TestReportVulkan(t *testing.T) {
	r, out := newReporter()
	r.ReportVulkan(&fakeEnumerator{devices: []device.PhysicalDeviceInfo{{
		Index:         0,
		ID:            0x73bf,
		VendorID:      0x1002,
		Name:          "AMD Radeon RX 6800",
		Type:          "Discrete GPU",
		APIVersion:    "1.3.250",
		DriverVersion: "2.0.279",
		Memory:        16 * 1024 * 1024 * 1024,
		Extensions:    []string{"VK_KHR_swapchain"},
		Layers:        []string{},
	}}})

	assert.Equal(t, []string{
		"Device [0]",
		field(1, "Name", "AMD Radeon RX 6800"),
		field(1, "Type", "Discrete GPU"),
		field(1, "API version", "1.3.250"),
		field(1, "Driver version", "2.0.279"),
		field(1, "Vendor/Device ID", "0x1002/0x73bf"),
		field(1, "Heap memory", "16384 MiB"),
		field(1, "Extensions", 1),
		field(1, "Layers", 0),
	}, lines(out.String()))
}

func TestReportVulkanAbsence(t *testing.T) {
	r, out := newReporter()
	r.ReportVulkan(&fakeEnumerator{err: errors.New("no driver")})
	r.ReportVulkan(&fakeEnumerator{})

	assert.Equal(t, []string{
		"Physical device enumeration error: no driver",
		"No devices found",
	}, lines(out.String()))
}

func TestReportSections(t *testing.T) {
	r, out := newReporter()
	r.Report(report.Sources{
		Backend: &fakeBackend{drivers: []string{"software"}},
		Compute: &computetest.API{},
	})

	assert.Equal(t, []string{
		"=== " + report.DriversTitle + " ===",
		"Available render drivers: 1",
		"  [0] software",
		"=== " + report.SurfaceTitle + " ===",
		"No surface",
		"=== " + report.ComputeTitle + " ===",
		"No platforms found",
	}, lines(out.String()))
	assert.Equal(t, 7, out.writes)
}

func TestReportSkipSurface(t *testing.T) {
	r, out := newReporter()
	s := r.Report(report.Sources{SkipSurface: true})

	assert.Empty(t, out.String())
	assert.Nil(t, s.Surface)
}

func TestWriteJSON(t *testing.T) {
	r, _ := newReporter()
	api := &computetest.API{Platforms: []computetest.Platform{platform(gpu())}}
	s := r.Collect(report.Sources{
		Backend: &fakeBackend{drivers: []string{"opengl"}},
		Compute: api,
		Vulkan:  &fakeEnumerator{},
	})

	buf := &bytes.Buffer{}
	require.NoError(t, report.WriteJSON(buf, s))

	var decoded report.Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.NotNil(t, decoded.Drivers)
	assert.Equal(t, "opengl", decoded.Drivers.Drivers[0].Name)
	require.NotNil(t, decoded.Surface)
	assert.False(t, decoded.Surface.Available)
	require.NotNil(t, decoded.Compute)
	require.Len(t, decoded.Compute.Platforms, 1)
	assert.Equal(t, &[3]uint64{1024, 1024, 64}, decoded.Compute.Platforms[0].Devices[0].MaxWorkItemSizes)
	require.NotNil(t, decoded.Vulkan)
	assert.Empty(t, decoded.Vulkan.Devices)
}
