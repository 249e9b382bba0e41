package qrcam

import (
	"errors"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in string
		w, h uint
		ok bool
	}{
		{"640x480", 640, 480, true},
		{"1x1", 1, 1, true},
		{"9999x9999", 9999, 9999, true},
		{"1920x1080", 1920, 1080, true},
		{"0x480", 0, 0, false},
		{"640x0", 0, 0, false},
		{"10000x480", 0, 0, false},
		{"640x10000", 0, 0, false},
		{"640", 0, 0, false},
		{"640x480x3", 0, 0, false},
		{"x480", 0, 0, false},
		{"-1x480", 0, 0, false},
		{"axb", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, err := ParseSize(tt.in)
		if tt.ok {
			if err != nil || w != tt.w || h != tt.h {
				t.Errorf("ParseSize(%q) = %d, %d, %v; want %d, %d", tt.in, w, h, err, tt.w, tt.h)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("ParseSize(%q) error = %v, want ErrInvalidSize", tt.in, err)
		}
	}
}
