//go:build !(cgo && libjpeg)

package qrcam

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
)

// MJPEG decoder built on image/jpeg; used unless built with -tags libjpeg
type goMjpegDecoder struct {
	format PixelFormat
	closed bool
}

// Create decoder writing pixels in given format
func NewMjpegDecoder(format PixelFormat) (FrameDecoder, error) {
	return &goMjpegDecoder{format: format}, nil
}

// Decode frame into dst; fails with ErrFrameTooBig before touching dst when bounds are exceeded
func (d *goMjpegDecoder) Decode(frame []byte, dst []byte, pitch, maxWidth, maxHeight int) error {
	if d.closed { return errDecoderClosed }
	frame = withHuffmanTables(frame)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(frame))
	if err != nil { return fmt.Errorf("mjpeg: %w", err) }
	if err := checkTarget(cfg.Width, cfg.Height, d.format, dst, pitch, maxWidth, maxHeight); err != nil {
		return err
	}
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil { return fmt.Errorf("mjpeg: %w", err) }

	rect := image.Rect(0, 0, cfg.Width, cfg.Height)
	if d.format == PixelFormatGray {
		writeGray(img, &image.Gray{Pix: dst, Stride: pitch, Rect: rect})
		return nil
	}
	target := &image.RGBA{Pix: dst, Stride: pitch, Rect: rect}
	draw.Draw(target, rect, img, img.Bounds().Min, draw.Src)
	return nil
}

// Copy luma plane directly when the decoded image has one
func writeGray(img image.Image, target *image.Gray) {
	b := img.Bounds()
	w := target.Rect.Dx()
	switch src := img.(type) {
		case *image.YCbCr:
			for y := 0; y < target.Rect.Dy(); y++ {
				off := src.YOffset(b.Min.X, b.Min.Y+y)
				copy(target.Pix[y*target.Stride:y*target.Stride+w], src.Y[off:off+w])
			}
		case *image.Gray:
			for y := 0; y < target.Rect.Dy(); y++ {
				off := src.PixOffset(b.Min.X, b.Min.Y+y)
				copy(target.Pix[y*target.Stride:y*target.Stride+w], src.Pix[off:off+w])
			}
		default:
			draw.Draw(target, target.Rect, img, b.Min, draw.Src)
	}
}

func (d *goMjpegDecoder) Close() error {
	d.closed = true
	return nil
}
