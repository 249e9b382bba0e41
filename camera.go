package qrcam

import (
	"context"
	"errors"
	"fmt"
)

var ErrCaptureStopped = errors.New("capture stream stopped")

// Source of compressed (or packed YUYV) frames
type Camera interface {
	Start(context.Context) error
	// Block until the next frame is available; the slice is valid until the next call
	Capture(context.Context) ([]byte, error)
	Formats() ([]FormatInfo, error)
	Close() error
}

// Frame size supported by the device; discrete sizes have Min == Max
type FrameSize struct {
	MinWidth, MaxWidth, StepWidth uint32
	MinHeight, MaxHeight, StepHeight uint32
}

func (s FrameSize) String() string {
	if s.MinWidth == s.MaxWidth && s.MinHeight == s.MaxHeight {
		return fmt.Sprintf("%dx%d", s.MinWidth, s.MinHeight)
	}
	return fmt.Sprintf("%dx%d-%dx%d step %dx%d", s.MinWidth, s.MinHeight, s.MaxWidth, s.MaxHeight, s.StepWidth, s.StepHeight)
}

// Pixel format supported by the device with its frame sizes
type FormatInfo struct {
	FourCC string
	Description string
	Sizes []FrameSize
}

func (f FormatInfo) String() string {
	return fmt.Sprintf("%s (%s)", f.FourCC, f.Description)
}

// Render four character code as text
func fourCCString(code uint32) string {
	b := []byte{byte(code), byte(code >> 8), byte(code >> 16), byte(code >> 24)}
	return string(b)
}

// Build four character code from text
func fourCC(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}
