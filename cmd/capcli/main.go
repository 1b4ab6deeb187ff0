// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/devblok/capview/compute/opencl"
	"github.com/devblok/capview/core"
	"github.com/devblok/capview/device"
	"github.com/devblok/capview/gfx/sdlgfx"
	"github.com/devblok/capview/report"
	"github.com/devblok/capview/utility/kar"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	envFile = flag.String("env", "", "Load settings from the given .env file")
	asJSON  = flag.Bool("json", false, "Print the report as JSON")
	archive = flag.String("archive", "", "Store the report in the given kar archive")
	vulkan  = flag.Bool("vulkan", false, "Include Vulkan physical devices in the report")
	verbose = flag.Bool("verbose", false, "Print extension lists one per line")
)

func main() {
	flag.Parse()
	if err := run(os.Stdout); err != nil {
		log.WithError(err).Fatal("capcli failed")
	}
}

func run(stdout io.Writer) error {
	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := core.LoadConfiguration(files...)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	logger, err := core.NewLogger(os.Stderr, cfg.Log)
	if err != nil {
		return fmt.Errorf("setting up the logger: %w", err)
	}

	src := report.Sources{
		Compute:     opencl.New(),
		SkipSurface: true,
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		logger.WithError(err).Warn("SDL video failed to initialise, drivers are not reported")
	} else {
		defer sdl.Quit()
		src.Backend = sdlgfx.Backend{}
	}

	var destroy []core.Destroyable
	defer func() { core.DestroyAll(destroy...) }()
	if *vulkan || cfg.Report.Vulkan {
		if enumerator, err := device.NewVulkanEnumerator(device.DefaultVulkanApplicationInfo); err != nil {
			logger.WithError(err).Warn("Vulkan is not available")
		} else {
			destroy = append(destroy, enumerator)
			src.Vulkan = enumerator
		}
	}

	var text bytes.Buffer
	reporter := report.New(&text,
		report.WithLogger(logger),
		report.WithVerbose(*verbose || cfg.Report.Verbose),
		report.WithFormatLimit(cfg.Report.FormatLimit))
	snapshot := reporter.Report(src)

	var js bytes.Buffer
	if err := report.WriteJSON(&js, snapshot); err != nil {
		return fmt.Errorf("encoding the report: %w", err)
	}

	out := text.Bytes()
	if *asJSON {
		out = js.Bytes()
	}
	if _, err := stdout.Write(out); err != nil {
		return fmt.Errorf("writing the report: %w", err)
	}

	if *archive != "" {
		if err := writeArchive(*archive, &text, &js); err != nil {
			return fmt.Errorf("writing the archive: %w", err)
		}
		logger.WithField("archive", *archive).Info("Report archived")
	}
	return nil
}

// writeArchive stores both renditions of the report in a kar archive.
func writeArchive(path string, text, js io.Reader) error {
	author := "unknown"
	if u, err := user.Current(); err == nil {
		author = u.Username
	}

	builder := kar.NewBuilder(kar.Header{
		Author:      author,
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("report.txt", text); err != nil {
		return err
	}
	if err := builder.Add("report.json", js); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := builder.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
