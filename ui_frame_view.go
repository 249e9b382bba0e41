package qrcam

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"image"
)

// Widget presenting the last flipped surface contents
type FrameView struct {
	widget.BaseWidget
	nativeSize fyne.Size
	img *canvas.Image
}

// Renderer for frame view widget
type frameViewRenderer struct {
	view *FrameView
}

// Minimal size
func (r *frameViewRenderer) MinSize() fyne.Size {
	return r.view.MinSize()
}

// Objects slice
func (r *frameViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.img}
}

// Refresh image
func (r *frameViewRenderer) Refresh() {
	r.view.img.Refresh()
}

// Layout function
func (r *frameViewRenderer) Layout(size fyne.Size) {
	r.view.img.Resize(size)
}

// Destruction function
func (r *frameViewRenderer) Destroy() {}

// Factory function for FrameView widgets showing frames of given pixel size
func NewFrameView(width, height int) *FrameView {
	ret := &FrameView{nativeSize: fyne.NewSize(float32(width), float32(height))}
	ret.ExtendBaseWidget(ret)
	ret.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	ret.img.FillMode = canvas.ImageFillContain
	ret.img.ScaleMode = canvas.ImageScalePixels
	return ret
}

// Get renderer of FrameView widget
func (v *FrameView) CreateRenderer() fyne.WidgetRenderer {
	return &frameViewRenderer{view: v}
}

// Replace the presented frame
func (v *FrameView) SetFrame(frame image.Image) {
	v.img.Image = frame
	canvas.Refresh(v.img)
}

// Minimal size is the frame's own pixel size
func (v *FrameView) MinSize() fyne.Size {
	return v.nativeSize
}
