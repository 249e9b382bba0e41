//go:build gocv

package qrcam

import (
	"fmt"

	"gocv.io/x/gocv"
)

const highguiEscapeKey = 27

func init() {
	registerDisplay(DisplayHighGUI, newHighGUIDisplay)
}

// Display on an OpenCV highgui window; keys are collected while presenting a frame
type highguiDisplay struct {
	window *gocv.Window
	surface *Surface
	events *eventQueue
}

func newHighGUIDisplay(title string, width, height int) (Display, error) {
	return &highguiDisplay{
		window: gocv.NewWindow(title),
		surface: NewSurface(width, height),
		events: newEventQueue(64),
	}, nil
}

func (d *highguiDisplay) Surface() *Surface {
	return d.surface
}

// Show surface and pump highgui events for a millisecond
func (d *highguiDisplay) Flip() error {
	frame := d.surface.Snapshot()
	rgba, err := gocv.NewMatFromBytes(frame.Rect.Dy(), frame.Rect.Dx(), gocv.MatTypeCV8UC4, frame.Pix)
	if err != nil { return fmt.Errorf("highgui: %w", err) }
	defer rgba.Close()
	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)
	d.window.IMShow(bgr)

	key := d.window.WaitKey(1)
	switch {
		case key == highguiEscapeKey:
			d.events.push(Event{Type: EventKey, Key: KeyEscape})
		case key >= 0:
			d.events.push(Event{Type: EventKey, Key: Key(string(rune(key)))})
	}
	if !d.window.IsOpen() {
		d.events.push(Event{Type: EventQuit})
	}
	return nil
}

func (d *highguiDisplay) PollEvent() Event {
	return d.events.poll()
}

// highgui needs no separate event loop
func (d *highguiDisplay) Run(loop func() error) error {
	return loop()
}

func (d *highguiDisplay) Close() error {
	return d.window.Close()
}
