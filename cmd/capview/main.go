// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/devblok/capview/compute/opencl"
	"github.com/devblok/capview/core"
	"github.com/devblok/capview/device"
	"github.com/devblok/capview/gfx/sdlgfx"
	"github.com/devblok/capview/overlay"
	"github.com/devblok/capview/report"
	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile  = flag.String("env", "", "Load settings from the given .env file")
	windowed = flag.Bool("windowed", false, "Open a window instead of going fullscreen")
	vulkan   = flag.Bool("vulkan", false, "Include Vulkan physical devices in the report")
	verbose  = flag.Bool("verbose", false, "Print extension lists one per line")
	showFPS  = flag.Bool("fps", false, "Show the frame rate overlay at start")
)

// app holds the native resources of a run
type app struct {
	cfg      core.Configuration
	log      *log.Logger
	window   *sdl.Window
	renderer *sdl.Renderer
}

func (a *app) newWindow() error {
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if a.cfg.Window.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(a.cfg.Window.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		a.cfg.Window.Width,
		a.cfg.Window.Height,
		flags)
	if err != nil {
		return err
	}
	a.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	a.renderer = renderer
	return renderer.SetLogicalSize(a.cfg.Window.Width, a.cfg.Window.Height)
}

func (a *app) toggleFullscreen() {
	var flags uint32
	if a.window.GetFlags()&sdl.WINDOW_FULLSCREEN_DESKTOP == 0 {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	if err := a.window.SetFullscreen(flags); err != nil {
		a.log.WithError(err).Warn("Fullscreen toggle failed")
	}
}

// Destroy implements core.Destroyable
func (a *app) Destroy() {
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.window != nil {
		a.window.Destroy()
	}
}

func loadConfiguration() (core.Configuration, error) {
	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := core.LoadConfiguration(files...)
	if err != nil {
		return cfg, err
	}

	if *windowed {
		cfg.Window.Fullscreen = false
	}
	cfg.Report.Vulkan = cfg.Report.Vulkan || *vulkan
	cfg.Report.Verbose = cfg.Report.Verbose || *verbose
	cfg.Overlay.Shown = cfg.Overlay.Shown || *showFPS
	return cfg, nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.WithError(err).Fatal("capview failed")
	}
}

func run() error {
	cfg, err := loadConfiguration()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger, err := core.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up the logger: %w", err)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}
	defer sdl.Quit()

	a := &app{cfg: cfg, log: logger}
	defer a.Destroy()

	reporter := report.New(os.Stdout,
		report.WithLogger(logger),
		report.WithVerbose(cfg.Report.Verbose),
		report.WithFormatLimit(cfg.Report.FormatLimit))

	backend := sdlgfx.Backend{}
	reporter.Section(report.DriversTitle)
	reporter.ReportDrivers(backend)

	if err := a.newWindow(); err != nil {
		return fmt.Errorf("creating the window: %w", err)
	}
	surface := sdlgfx.NewSurface(a.renderer)

	reporter.Section(report.SurfaceTitle)
	reporter.ReportSurface(backend, surface)

	if !opencl.Available {
		logger.Info("Built without the opencl tag, compute platforms are not queried")
	}
	reporter.Section(report.ComputeTitle)
	reporter.ReportCompute(opencl.New())

	if cfg.Report.Vulkan {
		reportVulkan(reporter, logger)
	}

	counter := overlay.NewCounter(backend,
		overlay.WithShown(cfg.Overlay.Shown),
		overlay.WithOrigin(glm.Vec2{float32(cfg.Overlay.X), float32(cfg.Overlay.Y)}))

	ticks := core.NewTime(cfg.Time)
	defer ticks.Destroy()

	poll := func() bool {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if a.handle(event, counter) {
				return true
			}
		}
		return false
	}
	draw := func() {
		if err := a.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
			logger.WithError(err).Error("Draw colour reset failed")
		}
		if err := a.renderer.Clear(); err != nil {
			logger.WithError(err).Error("Clear failed")
		}
		counter.Update()
		if err := counter.Render(surface); err != nil {
			logger.WithError(err).Error("Overlay rendering failed")
		}
		a.renderer.Present()
	}

	logger.WithFields(log.Fields{
		"fps":        ticks.Fps(),
		"poll_delay": ticks.EventPollDelay(),
	}).Debug("Event loop started")
	eventLoop(ticks.EventTicker().C, ticks.FpsTicker().C, poll, draw)
	logger.Info("Event loop exited")
	return nil
}

// eventLoop polls on every event tick and draws on every frame tick,
// returning once poll reports a quit.
func eventLoop(events, frames <-chan time.Time, poll func() (quit bool), draw func()) {
	for {
		select {
		case <-events:
			if poll() {
				return
			}
		case <-frames:
			draw()
		}
	}
}

// handle reacts to a single event, reporting whether the app should quit.
func (a *app) handle(event sdl.Event, counter *overlay.Counter) (quit bool) {
	switch et := event.(type) {
	case *sdl.QuitEvent:
		return true
	case *sdl.KeyboardEvent:
		if et.Type != sdl.KEYDOWN || et.Repeat != 0 {
			return false
		}
		switch et.Keysym.Sym {
		case sdl.K_ESCAPE:
			return true
		case sdl.K_f:
			a.toggleFullscreen()
		case sdl.K_F3:
			counter.Toggle()
		}
	}
	return false
}

func reportVulkan(reporter *report.Reporter, logger *log.Logger) {
	enumerator, err := device.NewVulkanEnumerator(device.DefaultVulkanApplicationInfo)
	if err != nil {
		logger.WithError(err).Warn("Vulkan is not available")
		return
	}
	defer enumerator.Destroy()

	reporter.Section(report.VulkanTitle)
	reporter.ReportVulkan(enumerator)
}
