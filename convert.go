package qrcam

// Cheap colorspace reductions between packed buffers. Callers guarantee both buffers hold h rows of w pixels.

// Luma of one RGB pixel, BT.601 weights in 8-bit fixed point
func luma(r, g, b byte) byte {
	return byte((int(r)*77 + int(g)*150 + int(b)*29) >> 8)
}

// Convert RGBA pixels to single channel luma
func RGBAToLuma(src []byte, srcPitch, w, h int, dst []byte, dstPitch int) {
	for y := 0; y < h; y++ {
		s := src[y*srcPitch : y*srcPitch+w*4]
		d := dst[y*dstPitch : y*dstPitch+w]
		for x := range d {
			d[x] = luma(s[x*4], s[x*4+1], s[x*4+2])
		}
	}
}

func clampByte(v int) byte {
	if v < 0 { return 0 }
	if v > 255 { return 255 }
	return byte(v)
}

// Bytes per row of packed YUYV 4:2:2; odd widths take a whole trailing pixel pair
func YUYVPitch(width int) int {
	return (width + 1) / 2 * 4
}

// Convert packed YUYV 4:2:2 to RGBA with opaque alpha
func YUYVToRGBA(src []byte, srcPitch, w, h int, dst []byte, dstPitch int) {
	for y := 0; y < h; y++ {
		s := src[y*srcPitch:]
		d := dst[y*dstPitch : y*dstPitch+w*4]
		for x := 0; x < w; x++ {
			pair := (x / 2) * 4
			yy := int(s[pair+(x%2)*2]) - 16
			u := int(s[pair+1]) - 128
			v := int(s[pair+3]) - 128
			c := 298 * yy
			d[x*4] = clampByte((c + 409*v + 128) >> 8)
			d[x*4+1] = clampByte((c - 100*u - 208*v + 128) >> 8)
			d[x*4+2] = clampByte((c + 516*u + 128) >> 8)
			d[x*4+3] = 0xff
		}
	}
}

// Extract luma samples from packed YUYV 4:2:2
func YUYVToLuma(src []byte, srcPitch, w, h int, dst []byte, dstPitch int) {
	for y := 0; y < h; y++ {
		s := src[y*srcPitch:]
		d := dst[y*dstPitch : y*dstPitch+w]
		for x := range d {
			d[x] = s[x*2]
		}
	}
}
