//go:build linux

package qrcam

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vladimirvivien/go4vl/device"
	"github.com/vladimirvivien/go4vl/v4l2"
)

// Camera negotiating format, size and frame interval through go4vl
type V4L2Camera struct {
	devicePath string
	width, height uint
	framerate uint
	pixelFormat v4l2.FourCCType
	device *device.Device
	frames <-chan []byte
	// stops go4vl's stream goroutine before the buffers are unmapped
	cancelStream context.CancelFunc
	stateMtx sync.Mutex
}

// Get go4vl camera with provided configuration
func NewV4L2Camera(config *Config) *V4L2Camera {
	pixelFormat := v4l2.PixelFmtMJPEG
	if config.Format == FormatYUYV {
		pixelFormat = v4l2.PixelFmtYUYV
	}
	return &V4L2Camera{
		devicePath: config.Device,
		width: config.Width,
		height: config.Height,
		framerate: config.FramesPerSecond,
		pixelFormat: pixelFormat,
	}
}

// Configure and open camera device, start streaming
func (c *V4L2Camera) Start(ctx context.Context) error {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()

	dev, err := device.Open(c.devicePath,
		device.WithIOType(v4l2.IOTypeMMAP),
		device.WithPixFormat(v4l2.PixFormat{
			PixelFormat: c.pixelFormat,
			Width: uint32(c.width),
			Height: uint32(c.height),
			Field: v4l2.FieldNone,
		}),
		device.WithFPS(uint32(c.framerate)),
	)
	if err != nil { return fmt.Errorf("open %s: %w", c.devicePath, err) }

	pixFmt, err := dev.GetPixFormat()
	if err != nil {
		dev.Close()
		return fmt.Errorf("get pixel format: %w", err)
	}
	if pixFmt.PixelFormat != c.pixelFormat || uint(pixFmt.Width) != c.width || uint(pixFmt.Height) != c.height {
		dev.Close()
		return fmt.Errorf("%s negotiated %s %dx%d instead of %s %dx%d", c.devicePath,
			fourCCString(uint32(pixFmt.PixelFormat)), pixFmt.Width, pixFmt.Height,
			fourCCString(uint32(c.pixelFormat)), c.width, c.height)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	if err := dev.Start(streamCtx); err != nil {
		cancel()
		dev.Close()
		return fmt.Errorf("start streaming: %w", err)
	}
	if fps, err := dev.GetFrameRate(); err == nil && uint(fps) != c.framerate {
		slog.Warn("Device frame rate differs from requested", "device", c.devicePath, "requested", c.framerate, "actual", fps)
	}
	slog.Debug("Camera started", "device", c.devicePath, "format", fourCCString(uint32(c.pixelFormat)), "width", c.width, "height", c.height, "buffers", dev.BufferCount())

	c.device = dev
	c.cancelStream = cancel
	c.frames = dev.GetOutput()
	return nil
}

// Wait for next frame; blocks for as long as the device stays silent
func (c *V4L2Camera) Capture(ctx context.Context) ([]byte, error) {
	if c.frames == nil {
		return nil, fmt.Errorf("%s: %w", c.devicePath, ErrCaptureStopped)
	}
	for {
		select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case frame, ok := <-c.frames:
				if !ok {
					return nil, fmt.Errorf("%s: %w", c.devicePath, ErrCaptureStopped)
				}
				if len(frame) == 0 {
					slog.Debug("Empty frame skipped", "device", c.devicePath)
					continue
				}
				return frame, nil
		}
	}
}

// List pixel formats and frame sizes; opens the device temporarily when not started
func (c *V4L2Camera) Formats() ([]FormatInfo, error) {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()

	dev := c.device
	if dev == nil {
		var err error
		dev, err = device.Open(c.devicePath)
		if err != nil { return nil, fmt.Errorf("open %s: %w", c.devicePath, err) }
		defer dev.Close()
	}

	descs, err := dev.GetFormatDescriptions()
	if err != nil { return nil, fmt.Errorf("get format descriptions: %w", err) }

	res := make([]FormatInfo, 0, len(descs))
	for _, desc := range descs {
		info := FormatInfo{
			FourCC: fourCCString(uint32(desc.PixelFormat)),
			Description: desc.Description,
		}
		sizes, err := v4l2.GetFormatFrameSizes(dev.Fd(), desc.PixelFormat)
		if err != nil { return nil, fmt.Errorf("get frame sizes for %s: %w", info.FourCC, err) }
		for _, size := range sizes {
			info.Sizes = append(info.Sizes, FrameSize{
				MinWidth: size.Size.MinWidth,
				MaxWidth: size.Size.MaxWidth,
				StepWidth: size.Size.StepWidth,
				MinHeight: size.Size.MinHeight,
				MaxHeight: size.Size.MaxHeight,
				StepHeight: size.Size.StepHeight,
			})
		}
		res = append(res, info)
	}
	return res, nil
}

// Stop streaming and close device; safe to call repeatedly
func (c *V4L2Camera) Close() error {
	c.stateMtx.Lock()
	defer c.stateMtx.Unlock()
	if c.cancelStream != nil {
		c.cancelStream()
		c.cancelStream = nil
	}
	if c.device == nil { return nil }
	err := c.device.Close()
	c.device = nil
	c.frames = nil
	return err
}
