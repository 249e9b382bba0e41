package qrcam

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

func init() {
	registerDisplay(DisplayFyne, newFyneDisplay)
}

// Display on a fyne window; the fyne event loop owns the main goroutine while the scan loop runs aside
type fyneDisplay struct {
	app fyne.App
	window fyne.Window
	view *FrameView
	surface *Surface
	events *eventQueue
}

// Create window with frame view sized to the surface
func newFyneDisplay(title string, width, height int) (Display, error) {
	a := app.New()
	w := a.NewWindow(title)
	d := &fyneDisplay{
		app: a,
		window: w,
		view: NewFrameView(width, height),
		surface: NewSurface(width, height),
		events: newEventQueue(64),
	}
	w.SetContent(container.New(&frameLayout{}, d.view))
	w.Resize(d.view.MinSize())
	w.SetCloseIntercept(func() {
		d.events.push(Event{Type: EventQuit})
	})
	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		d.events.push(Event{Type: EventKey, Key: Key(ev.Name)})
	})
	return d, nil
}

func (d *fyneDisplay) Surface() *Surface {
	return d.surface
}

// Present a copy of the surface so drawing into it can continue right away
func (d *fyneDisplay) Flip() error {
	d.view.SetFrame(d.surface.Snapshot())
	return nil
}

func (d *fyneDisplay) PollEvent() Event {
	return d.events.poll()
}

// Show window and run loop aside; quitting the app once loop returns
func (d *fyneDisplay) Run(loop func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- loop()
		d.app.Quit()
	}()
	d.window.ShowAndRun()
	// window gone by other means: ask the loop to stop at its next poll
	d.events.push(Event{Type: EventQuit})
	return <-done
}

func (d *fyneDisplay) Close() error {
	return nil
}
