package qrcam

import (
	"fyne.io/fyne/v2"
)

// Single object scaled to fit while keeping its minimal size aspect ratio, centered
type frameLayout struct { }

// Minimal size
func (l *frameLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var w, h float32
	for _, o := range objects {
		chMinSize := o.MinSize()
		if chMinSize.Width > w { w = chMinSize.Width }
		if chMinSize.Height > h { h = chMinSize.Height }
	}
	return fyne.NewSize(w, h)
}

// Layout function
func (l *frameLayout) Layout(objects []fyne.CanvasObject, containerSize fyne.Size) {
	if len(objects) != 1 { return }
	frame := objects[0]
	native := frame.MinSize()
	if native.Width <= 0 || native.Height <= 0 { return }

	scale := containerSize.Width / native.Width
	if hScale := containerSize.Height / native.Height; hScale < scale {
		scale = hScale
	}
	size := fyne.NewSize(native.Width*scale, native.Height*scale)
	frame.Resize(size)
	frame.Move(fyne.NewPos((containerSize.Width-size.Width)/2, (containerSize.Height-size.Height)/2))
}
