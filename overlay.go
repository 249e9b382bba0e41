package qrcam

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	overlayFace = basicfont.Face7x13
	overlayOutline = color.RGBA{0, 0, 0, 255}
	overlayFill = color.RGBA{255, 0, 0, 255}
)

// Draw text with its top left corner at x, y
func drawText(dst draw.Image, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst: dst,
		Src: image.NewUniform(c),
		Face: overlayFace,
		Dot: fixed.P(x, y+overlayFace.Ascent),
	}
	d.DrawString(text)
}

// Draw red text outlined in black so it stays legible on any background
func FatText(dst draw.Image, x, y int, text string) {
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 0 && j == 0 { continue }
			drawText(dst, x+i, y+j, text, overlayOutline)
		}
	}
	drawText(dst, x, y, text, overlayFill)
}

// Estimated pixel width of text in the overlay font
func TextWidth(text string) int {
	return utf8.RuneCountInString(text) * overlayFace.Advance
}

// Draw fat text horizontally centered on x
func FatTextCentered(dst draw.Image, x, y int, text string) {
	FatText(dst, x-TextWidth(text)/2, y, text)
}

func abs(v int) int {
	if v < 0 { return -v }
	return v
}

// Draw 1 pixel wide line (Bresenham); parts outside dst are clipped by Set
func DrawLine(dst draw.Image, p1, p2 image.Point, c color.Color) {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X { sx = -1 }
	if p1.Y > p2.Y { sy = -1 }
	e := dx + dy
	x, y := p1.X, p1.Y
	for {
		dst.Set(x, y, c)
		if x == p2.X && y == p2.Y { return }
		e2 := 2 * e
		if e2 >= dy {
			x += sx
			e += dy
		}
		if e2 <= dx {
			y += sy
			e += dx
		}
	}
}
