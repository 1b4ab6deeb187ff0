// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
)

// Resources holds the files shipped with the binary
var Resources = packr.NewBox("./resources")

// Configuration keys, read from the environment
const (
	KeyFramesPerSecond = "CAPVIEW_FPS"
	KeyEventPollDelay  = "CAPVIEW_EVENT_POLL_DELAY"
	KeyWindowTitle     = "CAPVIEW_WINDOW_TITLE"
	KeyWindowWidth     = "CAPVIEW_WINDOW_WIDTH"
	KeyWindowHeight    = "CAPVIEW_WINDOW_HEIGHT"
	KeyFullscreen      = "CAPVIEW_FULLSCREEN"
	KeyOverlayShown    = "CAPVIEW_OVERLAY"
	KeyOverlayX        = "CAPVIEW_OVERLAY_X"
	KeyOverlayY        = "CAPVIEW_OVERLAY_Y"
	KeyVerbose         = "CAPVIEW_VERBOSE"
	KeyFormatLimit     = "CAPVIEW_FORMAT_LIMIT"
	KeyVulkan          = "CAPVIEW_VULKAN"
	KeyLogLevel        = "CAPVIEW_LOG_LEVEL"
)

// Configuration defines the application configuration
type Configuration struct {
	Time    TimeConfiguration
	Window  WindowConfiguration
	Overlay OverlayConfiguration
	Report  ReportConfiguration
	Log     LogConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the event polling interval in milliseconds
	EventPollDelay int
}

// WindowConfiguration is used to configure the main window
type WindowConfiguration struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// OverlayConfiguration is used to configure the frame rate overlay
type OverlayConfiguration struct {
	Shown bool
	X, Y  int
}

// ReportConfiguration is used to configure the capability report
type ReportConfiguration struct {
	Verbose     bool
	FormatLimit int
	Vulkan      bool
}

// LogConfiguration is used to configure logging
type LogConfiguration struct {
	Level string
}

// LoadConfiguration builds the configuration from the bundled defaults,
// overridden by the environment. The given .env files are loaded into the
// environment first.
func LoadConfiguration(files ...string) (Configuration, error) {
	defaults, err := Defaults()
	if err != nil {
		return Configuration{}, err
	}
	if len(files) > 0 {
		if err := envy.Load(files...); err != nil {
			return Configuration{}, errors.New("envy.Load(): " + err.Error())
		}
	}

	r := reader{defaults: defaults}
	cfg := Configuration{
		Time: TimeConfiguration{
			FramesPerSecond: r.integer(KeyFramesPerSecond),
			EventPollDelay:  r.integer(KeyEventPollDelay),
		},
		Window: WindowConfiguration{
			Title:      r.str(KeyWindowTitle),
			Width:      int32(r.integer(KeyWindowWidth)),
			Height:     int32(r.integer(KeyWindowHeight)),
			Fullscreen: r.boolean(KeyFullscreen),
		},
		Overlay: OverlayConfiguration{
			Shown: r.boolean(KeyOverlayShown),
			X:     r.integer(KeyOverlayX),
			Y:     r.integer(KeyOverlayY),
		},
		Report: ReportConfiguration{
			Verbose:     r.boolean(KeyVerbose),
			FormatLimit: r.integer(KeyFormatLimit),
			Vulkan:      r.boolean(KeyVulkan),
		},
		Log: LogConfiguration{
			Level: r.str(KeyLogLevel),
		},
	}
	if r.err != nil {
		return Configuration{}, r.err
	}
	return cfg, nil
}

// Defaults returns the bundled default settings.
func Defaults() (map[string]string, error) {
	data, err := Resources.FindString("defaults.env")
	if err != nil {
		return nil, errors.New("packr.FindString(): " + err.Error())
	}
	values, err := godotenv.Unmarshal(data)
	if err != nil {
		return nil, errors.New("godotenv.Unmarshal(): " + err.Error())
	}
	return values, nil
}

// reader resolves keys against the environment, falling back to the
// defaults. The first parse error is kept.
type reader struct {
	defaults map[string]string
	err      error
}

func (r *reader) str(key string) string {
	return envy.Get(key, r.defaults[key])
}

func (r *reader) integer(key string) int {
	s := strings.TrimSpace(r.str(key))
	v, err := strconv.Atoi(s)
	if err != nil {
		r.fail(key, s)
		return 0
	}
	return v
}

func (r *reader) boolean(key string) bool {
	s := strings.TrimSpace(r.str(key))
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.fail(key, s)
		return false
	}
	return v
}

func (r *reader) fail(key, value string) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid value %q for %s", value, key)
	}
}
