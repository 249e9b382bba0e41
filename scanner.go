package qrcam

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi/qrcode/detector"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"
)

// Limits on the size of QR codes and their content
const (
	MinGridSize = 21
	MaxVersion = 40
	MaxPayload = 8896
)

// Reason a located QR code could not be decoded
type DecodeError int

const (
	ErrInvalidGridSize DecodeError = iota + 1
	ErrInvalidVersion
	ErrFormatECC
	ErrDataECC
	ErrUnknownDataType
	ErrDataOverflow
	ErrDataUnderflow
)

func (e DecodeError) Error() string {
	switch e {
		case ErrInvalidGridSize:
			return "Invalid grid size"
		case ErrInvalidVersion:
			return "Invalid version"
		case ErrFormatECC:
			return "Format data ECC failure"
		case ErrDataECC:
			return "ECC failure"
		case ErrUnknownDataType:
			return "Unknown data type"
		case ErrDataOverflow:
			return "Data overflow"
		case ErrDataUnderflow:
			return "Data underflow"
	}
	return fmt.Sprintf("Unknown error %d", int(e))
}

// Decoded QR code content
type Data struct {
	Version int
	ECCLevel string
	Payload []byte
}

func (d *Data) String() string {
	return string(d.Payload)
}

// QR code located in the last scanned image; corners go clockwise from top left
type Code struct {
	Corners [4]image.Point
	// Size in grid cells
	Size int
	bits *gozxing.BitMatrix
}

// Integer average of the corners
func Centroid(corners [4]image.Point) image.Point {
	var c image.Point
	for _, p := range corners {
		c = c.Add(p)
	}
	return c.Div(4)
}

func (c *Code) Centroid() image.Point {
	return Centroid(c.Corners)
}

// Map decoder failure onto its reason
func classifyDecodeFailure(err error) DecodeError {
	var checksumErr gozxing.ChecksumException
	if errors.As(err, &checksumErr) {
		return ErrDataECC
	}
	var formatErr gozxing.FormatException
	if errors.As(err, &formatErr) {
		return ErrFormatECC
	}
	return ErrUnknownDataType
}

// Decode payload of the code; payload is only available on success
func (c *Code) Decode() (*Data, error) {
	if c.Size < MinGridSize || (c.Size-17)%4 != 0 || c.bits == nil {
		return nil, ErrInvalidGridSize
	}
	version := (c.Size - 17) / 4
	if version > MaxVersion {
		return nil, ErrInvalidVersion
	}
	// decoder unmasks the matrix in place; the code must stay decodable on later calls
	res, err := decoder.NewDecoder().Decode(c.bits.Clone(), nil)
	if err != nil {
		slog.Debug("QR decode failed", "size", c.Size, "error", err)
		return nil, classifyDecodeFailure(err)
	}
	text := res.GetText()
	if len(text) > MaxPayload {
		return nil, ErrDataOverflow
	}
	return &Data{Version: version, ECCLevel: res.GetECLevel(), Payload: []byte(text)}, nil
}

// QR code finder over a luma image it owns
type Scanner struct {
	luma *image.Gray
	codes []Code
	hints map[gozxing.DecodeHintType]interface{}
}

func NewScanner() *Scanner {
	return &Scanner{
		hints: map[gozxing.DecodeHintType]interface{}{gozxing.DecodeHintType_TRY_HARDER: true},
	}
}

// Allocate luma buffer; must match the dimensions of the image copied in after Begin
func (s *Scanner) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("scanner: invalid size %dx%d", width, height)
	}
	s.luma = image.NewGray(image.Rect(0, 0, width, height))
	s.codes = nil
	return nil
}

// Luma buffer to fill before End; rows are Width() bytes apart
func (s *Scanner) Begin() []byte {
	s.codes = s.codes[:0]
	if s.luma == nil { return nil }
	return s.luma.Pix
}

func (s *Scanner) Width() int {
	if s.luma == nil { return 0 }
	return s.luma.Rect.Dx()
}

// Locate codes in the filled buffer
func (s *Scanner) End() {
	if s.luma == nil { return }
	bmp, err := gozxing.NewBinaryBitmapFromImage(s.luma)
	if err != nil {
		slog.Debug("QR binarization failed", "error", err)
		return
	}
	matrix, err := bmp.GetBlackMatrix()
	if err != nil {
		slog.Debug("QR binarization failed", "error", err)
		return
	}
	results, err := detector.NewMultiDetector(matrix).DetectMulti(s.hints)
	if err != nil {
		// NotFound is the usual outcome for frames without codes
		return
	}
	for _, r := range results {
		points := r.GetPoints()
		bits := r.GetBits()
		if len(points) < 3 || bits == nil { continue }
		s.codes = append(s.codes, Code{
			Corners: symbolCorners(points, bits.GetWidth()),
			Size: bits.GetWidth(),
			bits: bits,
		})
	}
}

// Number of codes found by the last End
func (s *Scanner) Count() int {
	return len(s.codes)
}

func (s *Scanner) Extract(index int) (Code, error) {
	if index < 0 || index >= len(s.codes) {
		return Code{}, fmt.Errorf("scanner: code index %d out of range [0, %d)", index, len(s.codes))
	}
	return s.codes[index], nil
}

// Drop buffers; repeated calls are no-ops
func (s *Scanner) Close() error {
	s.luma = nil
	s.codes = nil
	return nil
}

// Extrapolate symbol corners from finder pattern centres (bottom left, top left, top right),
// each of which sits 3.5 cells inside the symbol edges
func symbolCorners(points []gozxing.ResultPoint, dimension int) [4]image.Point {
	bl, tl, tr := points[0], points[1], points[2]
	n := float64(dimension - 7)
	if n <= 0 { n = 1 }
	ux, uy := (tr.GetX()-tl.GetX())/n, (tr.GetY()-tl.GetY())/n
	vx, vy := (bl.GetX()-tl.GetX())/n, (bl.GetY()-tl.GetY())/n
	at := func(a, b float64) image.Point {
		return image.Pt(int(math.Round(tl.GetX()+a*ux+b*vx)), int(math.Round(tl.GetY()+a*uy+b*vy)))
	}
	return [4]image.Point{
		at(-3.5, -3.5),
		at(n+3.5, -3.5),
		at(n+3.5, n+3.5),
		at(-3.5, n+3.5),
	}
}
