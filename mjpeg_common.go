package qrcam

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Layout of decoded pixels in the target buffer
type PixelFormat int

const (
	// 4 bytes per pixel: R, G, B, A (the layout of image.RGBA)
	PixelFormatRGBA PixelFormat = iota
	// 1 byte per pixel luma
	PixelFormatGray
)

func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatGray {
		return 1
	}
	return 4
}

func (f PixelFormat) String() string {
	if f == PixelFormatGray {
		return "gray"
	}
	return "rgba"
}

// Data-format error: the frame doesn't fit into the target buffer
var ErrFrameTooBig = errors.New("mjpeg: frame too big")

var errDecoderClosed = errors.New("mjpeg: decoder closed")

// Decoder of single compressed frames into caller-owned pixel memory
type FrameDecoder interface {
	// Overwrite dst with the decoded frame; dst rows are pitch bytes apart
	Decode(frame []byte, dst []byte, pitch, maxWidth, maxHeight int) error
	// Release decoder resources; repeated calls are no-ops
	Close() error
}

// Verify decoded frame of given size can be written to the target without overflow
func checkTarget(width, height int, format PixelFormat, dst []byte, pitch, maxWidth, maxHeight int) error {
	if width > maxWidth || height > maxHeight {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrFrameTooBig, width, height, maxWidth, maxHeight)
	}
	if pitch < width*format.BytesPerPixel() || len(dst) < pitch*height {
		return fmt.Errorf("%w: %dx%d %s needs pitch %d and %d bytes, target has pitch %d and %d bytes", ErrFrameTooBig,
			width, height, format, width*format.BytesPerPixel(), pitch*height, pitch, len(dst))
	}
	return nil
}

// Standard Huffman tables (ITU T.81 Annex K.3), which most UVC cameras omit from MJPEG frames
var defaultHuffmanTables = []struct {
	class byte
	counts [16]byte
	values []byte
}{
	// Luminance DC
	{0x00, [16]byte{0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	// Luminance AC
	{0x10, [16]byte{0, 2, 1, 3, 3, 2, 4, 3, 5, 5, 4, 4, 0, 0, 1, 125},
		[]byte{
			0x01, 0x02, 0x03, 0x00, 0x04, 0x11, 0x05, 0x12,
			0x21, 0x31, 0x41, 0x06, 0x13, 0x51, 0x61, 0x07,
			0x22, 0x71, 0x14, 0x32, 0x81, 0x91, 0xa1, 0x08,
			0x23, 0x42, 0xb1, 0xc1, 0x15, 0x52, 0xd1, 0xf0,
			0x24, 0x33, 0x62, 0x72, 0x82, 0x09, 0x0a, 0x16,
			0x17, 0x18, 0x19, 0x1a, 0x25, 0x26, 0x27, 0x28,
			0x29, 0x2a, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39,
			0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48, 0x49,
			0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58, 0x59,
			0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69,
			0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78, 0x79,
			0x7a, 0x83, 0x84, 0x85, 0x86, 0x87, 0x88, 0x89,
			0x8a, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97, 0x98,
			0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5, 0xa6, 0xa7,
			0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4, 0xb5, 0xb6,
			0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3, 0xc4, 0xc5,
			0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2, 0xd3, 0xd4,
			0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda, 0xe1, 0xe2,
			0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9, 0xea,
			0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		}},
	// Chrominance DC
	{0x01, [16]byte{0, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
		[]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	// Chrominance AC
	{0x11, [16]byte{0, 2, 1, 2, 4, 4, 3, 4, 7, 5, 4, 4, 0, 1, 2, 119},
		[]byte{
			0x00, 0x01, 0x02, 0x03, 0x11, 0x04, 0x05, 0x21,
			0x31, 0x06, 0x12, 0x41, 0x51, 0x07, 0x61, 0x71,
			0x13, 0x22, 0x32, 0x81, 0x08, 0x14, 0x42, 0x91,
			0xa1, 0xb1, 0xc1, 0x09, 0x23, 0x33, 0x52, 0xf0,
			0x15, 0x62, 0x72, 0xd1, 0x0a, 0x16, 0x24, 0x34,
			0xe1, 0x25, 0xf1, 0x17, 0x18, 0x19, 0x1a, 0x26,
			0x27, 0x28, 0x29, 0x2a, 0x35, 0x36, 0x37, 0x38,
			0x39, 0x3a, 0x43, 0x44, 0x45, 0x46, 0x47, 0x48,
			0x49, 0x4a, 0x53, 0x54, 0x55, 0x56, 0x57, 0x58,
			0x59, 0x5a, 0x63, 0x64, 0x65, 0x66, 0x67, 0x68,
			0x69, 0x6a, 0x73, 0x74, 0x75, 0x76, 0x77, 0x78,
			0x79, 0x7a, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
			0x88, 0x89, 0x8a, 0x92, 0x93, 0x94, 0x95, 0x96,
			0x97, 0x98, 0x99, 0x9a, 0xa2, 0xa3, 0xa4, 0xa5,
			0xa6, 0xa7, 0xa8, 0xa9, 0xaa, 0xb2, 0xb3, 0xb4,
			0xb5, 0xb6, 0xb7, 0xb8, 0xb9, 0xba, 0xc2, 0xc3,
			0xc4, 0xc5, 0xc6, 0xc7, 0xc8, 0xc9, 0xca, 0xd2,
			0xd3, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8, 0xd9, 0xda,
			0xe2, 0xe3, 0xe4, 0xe5, 0xe6, 0xe7, 0xe8, 0xe9,
			0xea, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7, 0xf8,
			0xf9, 0xfa,
		}},
}

// DHT marker segment carrying all four default tables
var defaultDHTSegment = buildDHTSegment()

func buildDHTSegment() []byte {
	body := []byte{}
	for _, t := range defaultHuffmanTables {
		body = append(body, t.class)
		body = append(body, t.counts[:]...)
		body = append(body, t.values...)
	}
	seg := []byte{0xff, 0xc4, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(body)+2))
	return append(seg, body...)
}

// Return frame with default Huffman tables inserted before the first scan if it has none
func withHuffmanTables(frame []byte) []byte {
	if len(frame) < 4 || frame[0] != 0xff || frame[1] != 0xd8 {
		return frame
	}
	i := 2
	for i+4 <= len(frame) {
		if frame[i] != 0xff { return frame }
		marker := frame[i+1]
		switch {
			case marker == 0xff:
				// fill byte
				i++
				continue
			case marker == 0xc4:
				return frame
			case marker == 0xda:
				res := make([]byte, 0, len(frame)+len(defaultDHTSegment))
				res = append(res, frame[:i]...)
				res = append(res, defaultDHTSegment...)
				return append(res, frame[i:]...)
			case marker == 0x01 || (marker >= 0xd0 && marker <= 0xd8):
				// standalone markers carry no length
				i += 2
				continue
		}
		i += 2 + int(binary.BigEndian.Uint16(frame[i+2:]))
	}
	return frame
}
