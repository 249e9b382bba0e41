package qrcam

import (
	"errors"
	"fmt"
)

const DefaultDevice = "/dev/video0"
const DefaultFramesPerSecond = 30

// Largest accepted frame dimension (exclusive)
const MaxDimension = 10000

// Capture drivers
const (
	DriverGo4VL = "go4vl"
	DriverMmap = "mmap"
)

// Capture pixel formats
const (
	FormatMJPEG = "mjpeg"
	FormatYUYV = "yuyv"
)

// Display backends
const (
	DisplayFyne = "fyne"
	DisplayHighGUI = "highgui"
)

// Parameters of a single run, built once from the command line
type Config struct {
	Device string
	Width, Height uint
	FramesPerSecond uint
	Verbose bool
	ShowFrameRate bool
	Driver string
	Format string
	Display string
	LogFile string
}

// Get default settings for capture and display
func DefaultConfig() *Config {
	return &Config {
		Device: DefaultDevice,
		Width: 640,
		Height: 480,
		FramesPerSecond: DefaultFramesPerSecond,
		Driver: DriverGo4VL,
		Format: FormatMJPEG,
		Display: DisplayFyne,
	}
}

// Do basic consistency checks for configuration values
func (c *Config) VerifyConfiguration() (res []error) {
	if c.Device == "" {
		res = append(res, errors.New("Device path must not be empty"))
	}
	if c.Width == 0 || c.Width >= MaxDimension || c.Height == 0 || c.Height >= MaxDimension {
		res = append(res, fmt.Errorf("%w: %dx%d, expected width and height to be 1-%d", ErrInvalidSize, c.Width, c.Height, MaxDimension-1))
	}
	if c.FramesPerSecond == 0 {
		res = append(res, errors.New("Frame rate must be positive"))
	}
	switch c.Driver {
		case DriverGo4VL, DriverMmap:
		default:
			res = append(res, fmt.Errorf("Unknown capture driver %q", c.Driver))
	}
	switch c.Format {
		case FormatMJPEG, FormatYUYV:
		default:
			res = append(res, fmt.Errorf("Unknown capture format %q", c.Format))
	}
	if _, ok := displayBackends[c.Display]; !ok {
		res = append(res, fmt.Errorf("Unknown or unavailable display backend %q", c.Display))
	}
	return
}
