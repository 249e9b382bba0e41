//go:build linux

package qrcam

import (
	"fmt"
)

// Create camera for the configured capture driver
func OpenCamera(config *Config) (Camera, error) {
	switch config.Driver {
		case DriverGo4VL:
			return NewV4L2Camera(config), nil
		case DriverMmap:
			return NewMmapCamera(config), nil
	}
	return nil, fmt.Errorf("unknown capture driver %q", config.Driver)
}
