package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	for _, opt := range []string{"--device", "--size", "--frame-rate", "--verbose", "--list", "--help"} {
		if !strings.Contains(stdout.String(), opt) {
			t.Errorf("help lacks %s:\n%s", opt, stdout.String())
		}
	}
}

func TestBadSize(t *testing.T) {
	for _, size := range []string{"640", "0x480", "640x10000", "axb", "640x480x3"} {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-s", size}, &stdout, &stderr); code != 1 {
			t.Errorf("%q: exit code %d, want 1", size, code)
		}
		if !strings.HasPrefix(stderr.String(), "Error:") {
			t.Errorf("%q: stderr %q lacks error", size, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("%q: unexpected output %q", size, stdout.String())
		}
	}
}

func TestUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--bogus"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}
