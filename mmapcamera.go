//go:build linux

package qrcam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	v4l2 "github.com/thinkski/go-v4l2"
)

// V4L2 four character codes for formats the mmap driver may request
const (
	mmapPixFmtMJPEG = 'M' | 'J'<<8 | 'P'<<16 | 'G'<<24
	mmapPixFmtYUYV = 'Y' | 'U'<<8 | 'Y'<<16 | 'V'<<24
)

// Camera handing out kernel mmap buffers without copying; no frame interval or format enumeration support
type MmapCamera struct {
	devicePath string
	width, height uint
	yuyv bool
	device *v4l2.Device
	// since v4l2 provides copy-free buffers with manual release function the last frame is held until the next capture
	pending *v4l2.Buffer
	stateMtx sync.Mutex
}

// Get mmap camera with provided configuration
func NewMmapCamera(config *Config) *MmapCamera {
	if config.FramesPerSecond != DefaultFramesPerSecond {
		slog.Warn("Frame interval negotiation not supported by mmap driver, using device default", "requested", config.FramesPerSecond)
	}
	return &MmapCamera{
		devicePath: config.Device,
		width: config.Width,
		height: config.Height,
		yuyv: config.Format == FormatYUYV,
	}
}

// Configure and open camera device
func (c *MmapCamera) Start(ctx context.Context) error {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()

	dev, err := v4l2.Open(c.devicePath)
	if err != nil { return fmt.Errorf("open %s: %w", c.devicePath, err) }
	if c.yuyv {
		err = dev.SetPixelFormat(int(c.width), int(c.height), mmapPixFmtYUYV)
	} else {
		err = dev.SetPixelFormat(int(c.width), int(c.height), mmapPixFmtMJPEG)
	}
	if err == nil { err = dev.Start() }
	if err != nil {
		if cerr := dev.Close(); cerr != nil { slog.Warn("V4L2 device closing error", "error", cerr) }
		return fmt.Errorf("configure %s: %w", c.devicePath, err)
	}
	c.device = dev
	return nil
}

// Release the previously captured frame back to the driver
func (c *MmapCamera) releasePending() {
	if c.pending != nil {
		c.pending.Release()
		c.pending = nil
	}
}

// Wait for next frame; the returned slice aliases the kernel buffer until the next call
func (c *MmapCamera) Capture(ctx context.Context) ([]byte, error) {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()
	if c.device == nil {
		return nil, fmt.Errorf("%s: %w", c.devicePath, ErrCaptureStopped)
	}
	c.releasePending()
	select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case frame, ok := <-c.device.C:
			if !ok {
				return nil, fmt.Errorf("%s: %w", c.devicePath, ErrCaptureStopped)
			}
			c.pending = &frame
			return frame.Data, nil
	}
}

func (c *MmapCamera) Formats() ([]FormatInfo, error) {
	return nil, errors.New("format listing is not supported by the mmap driver, use --driver=go4vl")
}

// Release pending frame and close device; safe to call repeatedly
func (c *MmapCamera) Close() error {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()
	if c.device == nil { return nil }
	c.releasePending()
	if err := c.device.Stop(); err != nil {
		slog.Warn("V4L2 streaming stop error", "device", c.devicePath, "error", err)
	}
	err := c.device.Close()
	c.device = nil
	return err
}
