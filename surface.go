package qrcam

import (
	"image"
	"image/color"
	"sync"
)

// Display pixel memory: RGBA rows pitch bytes apart. Drawing (Set) is reserved for the owning goroutine.
type Surface struct {
	data []byte
	pitch int
	rect image.Rectangle
	mtx sync.Mutex
}

// Allocate surface of given size with tightly packed rows
func NewSurface(width, height int) *Surface {
	return &Surface{
		data: make([]byte, width*height*4),
		pitch: width * 4,
		rect: image.Rect(0, 0, width, height),
	}
}

func (s *Surface) ColorModel() color.Model {
	return color.RGBAModel
}

func (s *Surface) Bounds() image.Rectangle {
	return s.rect
}

func (s *Surface) Width() int { return s.rect.Dx() }
func (s *Surface) Height() int { return s.rect.Dy() }
func (s *Surface) Pitch() int { return s.pitch }

func (s *Surface) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(s.rect)) {
		return color.RGBA{}
	}
	offset := y*s.pitch + x*4
	return color.RGBA{s.data[offset], s.data[offset+1], s.data[offset+2], s.data[offset+3]}
}

// Set pixel; points outside the surface are ignored
func (s *Surface) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(s.rect)) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	offset := y*s.pitch + x*4
	s.data[offset] = rgba.R
	s.data[offset+1] = rgba.G
	s.data[offset+2] = rgba.B
	s.data[offset+3] = rgba.A
}

// Lend the raw pixel memory to fn; the surface stays locked until fn returns
func (s *Surface) Borrow(fn func(pix []byte, pitch, width, height int) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return fn(s.data, s.pitch, s.rect.Dx(), s.rect.Dy())
}

// Copy of current contents suitable for handing to a renderer
func (s *Surface) Snapshot() *image.RGBA {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	img := image.NewRGBA(s.rect)
	for y := 0; y < s.rect.Dy(); y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+s.rect.Dx()*4], s.data[y*s.pitch:])
	}
	return img
}
