package qrcam

import (
	"image"
	"image/color"
	"testing"
)

func countColor(s *Surface, r image.Rectangle, c color.RGBA) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestFatText(t *testing.T) {
	s := NewSurface(100, 40)
	FatText(s, 5, 5, "Hi")
	box := image.Rect(4, 4, 5+TextWidth("Hi")+1, 5+overlayFace.Height+1)
	if countColor(s, box, overlayFill) == 0 {
		t.Fatal("No fill pixels")
	}
	if countColor(s, box, overlayOutline) == 0 {
		t.Fatal("No outline pixels")
	}
	if n := countColor(s, s.Bounds(), overlayFill) + countColor(s, s.Bounds(), overlayOutline); n != countColor(s, box, overlayFill)+countColor(s, box, overlayOutline) {
		t.Fatal("Text drawn outside its box")
	}
}

func TestFatTextClipped(t *testing.T) {
	s := NewSurface(10, 10)
	FatTextCentered(s, 0, -5, "clipped text")
	FatText(s, 8, 8, "edge")
}

func TestTextWidth(t *testing.T) {
	if TextWidth("abc") != 21 || TextWidth("") != 0 || TextWidth("äö") != 14 {
		t.Fatal("Unexpected text width")
	}
}

func TestDrawLine(t *testing.T) {
	s := NewSurface(20, 20)
	DrawLine(s, image.Pt(2, 3), image.Pt(12, 3), overlayFill)
	if n := countColor(s, s.Bounds(), overlayFill); n != 11 {
		t.Fatal("Horizontal line of", n, "pixels")
	}
	s = NewSurface(20, 20)
	DrawLine(s, image.Pt(15, 15), image.Pt(5, 10), overlayFill)
	for _, p := range []image.Point{{15, 15}, {5, 10}} {
		if s.At(p.X, p.Y) != overlayFill {
			t.Fatal("Endpoint not drawn", p)
		}
	}
	if n := countColor(s, s.Bounds(), overlayFill); n != 11 {
		t.Fatal("Diagonal line of", n, "pixels")
	}
	// partially outside
	DrawLine(s, image.Pt(-5, -5), image.Pt(25, 25), overlayFill)
	if s.At(19, 19) != overlayFill {
		t.Fatal("Clipped line missing")
	}
}
