package qrcam

import (
	"testing"
)

func TestFourCC(t *testing.T) {
	for _, s := range []string{"MJPG", "YUYV"} {
		if got := fourCCString(fourCC(s)); got != s {
			t.Fatalf("Round trip of %s gave %s", s, got)
		}
	}
	if fourCC("MJPG") != 0x47504a4d {
		t.Fatal("Unexpected MJPG code")
	}
}

func TestFormatInfoString(t *testing.T) {
	f := FormatInfo{FourCC: "MJPG", Description: "Motion-JPEG", Sizes: []FrameSize{
		{MinWidth: 640, MaxWidth: 640, MinHeight: 480, MaxHeight: 480},
		{MinWidth: 160, MaxWidth: 1280, StepWidth: 8, MinHeight: 120, MaxHeight: 720, StepHeight: 8},
	}}
	if f.String() != "MJPG (Motion-JPEG)" {
		t.Fatal("Format", f.String())
	}
	if f.Sizes[0].String() != "640x480" {
		t.Fatal("Discrete size", f.Sizes[0].String())
	}
	if f.Sizes[1].String() != "160x120-1280x720 step 8x8" {
		t.Fatal("Stepwise size", f.Sizes[1].String())
	}
}
