//go:build !linux

package qrcam

import (
	"fmt"
	"runtime"
)

func OpenCamera(config *Config) (Camera, error) {
	return nil, fmt.Errorf("V4L2 capture is not supported on %s", runtime.GOOS)
}
