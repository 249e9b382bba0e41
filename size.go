package qrcam

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSize = errors.New("invalid size")

// Parse video dimensions given as WxH, each dimension between 1 and MaxDimension-1
func ParseSize(s string) (width, height uint, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected WxH, got %q", ErrInvalidSize, s)
	}
	w, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil { return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSize, err) }
	h, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil { return 0, 0, fmt.Errorf("%w: %v", ErrInvalidSize, err) }
	if w == 0 || w >= MaxDimension || h == 0 || h >= MaxDimension {
		return 0, 0, fmt.Errorf("%w: expected width and height to be 1-%d", ErrInvalidSize, MaxDimension-1)
	}
	return uint(w), uint(h), nil
}
