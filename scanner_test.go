package qrcam

import (
	"errors"
	"image"
	"testing"

	"github.com/liyue201/goqr"
)

func TestCentroid(t *testing.T) {
	corners := [4]image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if c := Centroid(corners); c != image.Pt(5, 5) {
		t.Fatal("Centroid", c)
	}
	code := Code{Corners: [4]image.Point{{1, 1}, {2, 1}, {2, 2}, {1, 2}}}
	// integer division truncates
	if c := code.Centroid(); c != image.Pt(1, 1) {
		t.Fatal("Centroid", c)
	}
}

func TestScanAndDecode(t *testing.T) {
	img := qrImage(t, "hello", 320, 240, image.Pt(60, 20), 200)
	s := scanImage(t, img)
	if s.Count() != 1 {
		t.Fatal("Expected 1 code, found", s.Count())
	}
	code, err := s.Extract(0)
	if err != nil {
		t.Fatal("Extraction error:", err)
	}
	if code.Size < MinGridSize || (code.Size-17)%4 != 0 {
		t.Fatal("Invalid grid size", code.Size)
	}
	c := code.Centroid()
	if c.X < 150 || c.X > 170 || c.Y < 110 || c.Y > 130 {
		t.Errorf("Centroid %v far from symbol centre (160, 120)", c)
	}
	for i, p := range code.Corners {
		if !p.In(image.Rect(50, 10, 270, 230)) {
			t.Errorf("Corner %d at %v outside the symbol", i, p)
		}
	}
	if code.Corners[0].X >= code.Corners[1].X || code.Corners[0].Y >= code.Corners[3].Y {
		t.Errorf("Corners not clockwise from top left: %v", code.Corners)
	}
	data, err := code.Decode()
	if err != nil {
		t.Fatal("Decoding error:", err)
	}
	// codes extracted again, or decoded again, yield the same payload
	again, _ := s.Extract(0)
	for i, c := range []Code{code, again} {
		d, err := c.Decode()
		if err != nil || d.String() != data.String() {
			t.Fatalf("Repeated decode %d gave %v, %v", i, d, err)
		}
	}
	if data.String() != "hello" {
		t.Fatalf("Payload %q, want \"hello\"", data.String())
	}
	if data.Version != (code.Size-17)/4 {
		t.Errorf("Version %d for grid size %d", data.Version, code.Size)
	}

	codes, err := goqr.Recognize(img)
	if err != nil {
		t.Fatal("QR recognition failed:", err)
	}
	if len(codes) != 1 || string(codes[0].Payload) != data.String() {
		t.Fatalf("Recognizers disagree: %q VS %v", data.String(), codes)
	}
}

func TestScanEmpty(t *testing.T) {
	s := NewScanner()
	if s.Begin() != nil {
		t.Fatal("Buffer before Resize")
	}
	s.End()
	if s.Count() != 0 {
		t.Fatal("Codes found without image")
	}
	if err := s.Resize(64, 48); err != nil {
		t.Fatal(err)
	}
	if len(s.Begin()) != 64*48 || s.Width() != 64 {
		t.Fatal("Buffer size mismatch")
	}
	s.End()
	if s.Count() != 0 {
		t.Fatal("Codes found in blank image")
	}
	if _, err := s.Extract(0); err == nil {
		t.Fatal("Extracted from empty result")
	}
	if err := s.Resize(0, 10); err == nil {
		t.Fatal("Resized to empty")
	}
	s.Close()
	s.Close()
}

func TestDecodeErrors(t *testing.T) {
	for _, c := range []Code{{Size: 0}, {Size: 20}, {Size: 22}, {Size: 21}} {
		if _, err := c.Decode(); err != ErrInvalidGridSize {
			t.Errorf("Size %d: error %v, want %v", c.Size, err, ErrInvalidGridSize)
		}
	}

	s := scanImage(t, qrImage(t, "broken", 320, 240, image.Pt(60, 20), 200))
	if s.Count() != 1 {
		t.Fatal("Expected 1 code, found", s.Count())
	}
	code, _ := s.Extract(0)

	huge := code
	huge.Size = 17 + 4*41
	if _, err := huge.Decode(); err != ErrInvalidVersion {
		t.Errorf("Error %v, want %v", err, ErrInvalidVersion)
	}

	code.bits.Clear()
	data, err := code.Decode()
	var decodeErr DecodeError
	if data != nil || !errors.As(err, &decodeErr) {
		t.Fatalf("Blank symbol decoded to %v, %v", data, err)
	}
}

func TestDecodeErrorMessages(t *testing.T) {
	if ErrDataECC.Error() != "ECC failure" || ErrInvalidGridSize.Error() != "Invalid grid size" {
		t.Fatal("Unexpected messages")
	}
	if DecodeError(99).Error() != "Unknown error 99" {
		t.Fatal("Unexpected message for unknown code")
	}
}
