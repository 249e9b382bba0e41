package qrcam

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// White luma image of given size with a QR code of text drawn at offset
func qrImage(t *testing.T, text string, width, height int, offset image.Point, side int) *image.Gray {
	t.Helper()
	bits, err := qrcode.NewQRCodeWriter().Encode(text, gozxing.BarcodeFormat_QR_CODE, side, side, nil)
	if err != nil {
		t.Fatal("QR encoding error:", err)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Rect, image.White, image.Point{}, draw.Src)
	for y := 0; y < bits.GetHeight(); y++ {
		for x := 0; x < bits.GetWidth(); x++ {
			if bits.Get(x, y) {
				img.SetGray(offset.X+x, offset.Y+y, color.Gray{0})
			}
		}
	}
	return img
}

func jpegFrame(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal("JPEG encoding error:", err)
	}
	return buf.Bytes()
}

// Scan image with a fresh scanner
func scanImage(t *testing.T, img *image.Gray) *Scanner {
	t.Helper()
	s := NewScanner()
	if err := s.Resize(img.Rect.Dx(), img.Rect.Dy()); err != nil {
		t.Fatal("Scanner resize error:", err)
	}
	copy(s.Begin(), img.Pix)
	s.End()
	return s
}

// Camera replaying frames in a cycle, or failing with err when there are none
type fakeCamera struct {
	frames [][]byte
	err error
	captures int
}

func (c *fakeCamera) Start(context.Context) error { return nil }

func (c *fakeCamera) Capture(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil { return nil, err }
	if len(c.frames) == 0 { return nil, c.err }
	frame := c.frames[c.captures%len(c.frames)]
	c.captures++
	return frame, nil
}

func (c *fakeCamera) Formats() ([]FormatInfo, error) { return nil, nil }
func (c *fakeCamera) Close() error { return nil }

// Screen delivering events queued per flip
type fakeScreen struct {
	surface *Surface
	// events[i] become pending after flip i+1
	events [][]Event
	pending []Event
	flips int
}

func newFakeScreen(width, height int, events ...[]Event) *fakeScreen {
	return &fakeScreen{surface: NewSurface(width, height), events: events}
}

func (s *fakeScreen) Surface() *Surface { return s.surface }

func (s *fakeScreen) Flip() error {
	if s.flips < len(s.events) {
		s.pending = append(s.pending, s.events[s.flips]...)
	}
	s.flips++
	return nil
}

func (s *fakeScreen) PollEvent() Event {
	if len(s.pending) == 0 { return Event{} }
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev
}

// Scanner reporting a fixed set of codes regardless of content
type fakeScanner struct {
	buf []byte
	codes []Code
	ends int
}

func (s *fakeScanner) Begin() []byte { return s.buf }
func (s *fakeScanner) End() { s.ends++ }
func (s *fakeScanner) Count() int { return len(s.codes) }
func (s *fakeScanner) Extract(i int) (Code, error) { return s.codes[i], nil }
