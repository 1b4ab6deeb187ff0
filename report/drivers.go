// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package report

import "github.com/devblok/capview/gfx"

// DriverInfo is one render driver row.
type DriverInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// DriverReport lists the render drivers of the backend.
type DriverReport struct {
	VideoDriver string       `json:"video_driver,omitempty"`
	Drivers     []DriverInfo `json:"drivers"`
	Error       string       `json:"error,omitempty"`
}

// CollectDrivers queries the driver list. A failed count query is
// recorded in Error and leaves the list empty; a driver without a name
// keeps its row as Unknown.
func CollectDrivers(b gfx.Backend) DriverReport {
	var dr DriverReport
	if name, ok := b.CurrentVideoDriver(); ok {
		dr.VideoDriver = name
	}

	num, err := b.NumRenderDrivers()
	if err != nil {
		dr.Error = err.Error()
		return dr
	}

	dr.Drivers = make([]DriverInfo, num)
	for i := 0; i < num; i++ {
		name, ok := b.RenderDriver(i)
		if !ok {
			name = Unknown
		}
		dr.Drivers[i] = DriverInfo{Index: i, Name: name}
	}
	return dr
}

// ReportDrivers prints the driver list of b.
func (r *Reporter) ReportDrivers(b gfx.Backend) {
	dr := CollectDrivers(b)
	r.log.WithField("drivers", len(dr.Drivers)).Debug("Collected render drivers")
	r.writeDrivers(dr)
}

func (r *Reporter) writeDrivers(dr DriverReport) {
	if dr.VideoDriver != "" {
		r.line(0, "Current video driver: %s", dr.VideoDriver)
	}
	if dr.Error != "" {
		r.line(0, "Render driver count error: %s", dr.Error)
		return
	}
	r.line(0, "Available render drivers: %d", len(dr.Drivers))
	for _, d := range dr.Drivers {
		r.line(1, "[%d] %s", d.Index, d.Name)
	}
}
