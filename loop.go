package qrcam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

var ErrShortFrame = errors.New("yuyv: short frame")

type LoopState int

const (
	StateRunning LoopState = iota
	StateTerminated
)

func (s LoopState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "terminated"
}

// Scanner operations the loop relies on
type CodeScanner interface {
	Begin() []byte
	End()
	Count() int
	Extract(index int) (Code, error)
}

// Capture, decode, scan, draw, present, poll; one frame at a time
type Loop struct {
	config *Config
	camera Camera
	decoder FrameDecoder
	scanner CodeScanner
	screen Screen
	out io.Writer
	now func() time.Time

	state LoopState
	rate FrameRate
	frames int
}

// Create loop over started camera and scanner resized to the screen surface
func NewLoop(config *Config, camera Camera, decoder FrameDecoder, scanner CodeScanner, screen Screen, out io.Writer) *Loop {
	return &Loop{
		config: config,
		camera: camera,
		decoder: decoder,
		scanner: scanner,
		screen: screen,
		out: out,
		now: time.Now,
		state: StateTerminated,
	}
}

func (l *Loop) State() LoopState {
	return l.state
}

// Number of frames presented
func (l *Loop) Frames() int {
	return l.frames
}

// Process frames until quit/escape (nil) or the first capture, decode or display error
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateRunning
	l.rate = NewFrameRate(l.now())
	fmt.Fprintln(l.out, "Press ESC or close the window to exit")
	for l.state == StateRunning {
		if err := l.step(ctx); err != nil {
			l.state = StateTerminated
			return err
		}
	}
	return nil
}

func (l *Loop) step(ctx context.Context) error {
	frame, err := l.camera.Capture(ctx)
	if err != nil { return fmt.Errorf("capture: %w", err) }

	surface := l.screen.Surface()
	err = surface.Borrow(func(pix []byte, pitch, width, height int) error {
		luma := l.scanner.Begin()
		if len(luma) < width*height {
			return fmt.Errorf("scanner buffer of %d bytes can't hold %dx%d surface", len(luma), width, height)
		}
		if err := l.writeFrame(frame, pix, pitch, width, height, luma); err != nil {
			return err
		}
		l.scanner.End()
		return nil
	})
	if err != nil { return err }

	l.drawCodes(surface)
	if l.config.ShowFrameRate {
		FatText(surface, 5, 5, l.rate.Label())
	}
	if err := l.screen.Flip(); err != nil { return fmt.Errorf("flip: %w", err) }
	l.frames++

	if l.drainEvents() {
		l.state = StateTerminated
		return nil
	}
	if l.config.ShowFrameRate {
		l.rate.Tick(l.now())
	}
	return nil
}

// Fill surface pixels and scanner luma (rows width bytes apart) from captured frame
func (l *Loop) writeFrame(frame, pix []byte, pitch, width, height int, luma []byte) error {
	if l.config.Format == FormatYUYV {
		srcPitch := YUYVPitch(width)
		if need := srcPitch * height; len(frame) < need {
			return fmt.Errorf("%w: %d bytes, %dx%d needs %d", ErrShortFrame, len(frame), width, height, need)
		}
		YUYVToRGBA(frame, srcPitch, width, height, pix, pitch)
		// Y samples are the luma already
		YUYVToLuma(frame, srcPitch, width, height, luma, width)
		return nil
	}
	if err := l.decoder.Decode(frame, pix, pitch, width, height); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	RGBAToLuma(pix, pitch, width, height, luma, width)
	return nil
}

// Outline every located code and label it with its payload
func (l *Loop) drawCodes(surface *Surface) {
	for i := 0; i < l.scanner.Count(); i++ {
		code, err := l.scanner.Extract(i)
		if err != nil {
			slog.Warn("Code extraction error", "index", i, "error", err)
			continue
		}
		center := code.Centroid()
		for j := range code.Corners {
			DrawLine(surface, code.Corners[j], code.Corners[(j+1)%len(code.Corners)], overlayFill)
		}
		if l.config.Verbose {
			FatTextCentered(surface, center.X, center.Y-20, fmt.Sprintf("Code size: %d cells", code.Size))
		}

		data, err := code.Decode()
		if err != nil {
			fmt.Fprintf(l.out, "Error: %v\n", err)
			continue
		}
		text := data.String()
		fmt.Fprintf(l.out, "==> %s (len %d)\n", text, len(text))
		FatTextCentered(surface, center.X, center.Y, text)
	}
}

// Empty the event queue; true when quit or escape was seen
func (l *Loop) drainEvents() bool {
	for {
		ev := l.screen.PollEvent()
		switch ev.Type {
			case EventNone:
				return false
			case EventQuit:
				return true
			case EventKey:
				if ev.Key == KeyEscape { return true }
		}
	}
}
