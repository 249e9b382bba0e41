package qrcam

import (
	"fmt"
	"time"
)

// Frames counted per wall clock second. Boundaries are only noticed when Tick runs, so a stall
// spanning several seconds collapses into one reset.
type FrameRate struct {
	count int
	lastSecond int
	label string
}

func NewFrameRate(now time.Time) FrameRate {
	return FrameRate{lastSecond: now.Second()}
}

// Count one rendered frame, first publishing the previous second's count if the second changed
func (r *FrameRate) Tick(now time.Time) {
	if sec := now.Second(); sec != r.lastSecond {
		r.label = fmt.Sprintf("Frame rate: %d fps", r.count)
		r.count = 0
		r.lastSecond = sec
	}
	r.count++
}

// Last published rate, empty during the first second
func (r *FrameRate) Label() string {
	return r.label
}
