package qrcam

import (
	"errors"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if errs := DefaultConfig().VerifyConfiguration(); len(errs) > 0 {
		t.Fatal("Default configuration errors:", errs)
	}
}

func TestVerifyConfiguration(t *testing.T) {
	c := DefaultConfig()
	c.Device = ""
	c.Width = 0
	c.FramesPerSecond = 0
	c.Driver = "dshow"
	c.Format = "h264"
	c.Display = "tty"
	errs := c.VerifyConfiguration()
	if len(errs) != 6 {
		t.Fatalf("Expected 6 errors, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[1], ErrInvalidSize) {
		t.Error("Size error doesn't wrap ErrInvalidSize:", errs[1])
	}
}
