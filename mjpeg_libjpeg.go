//go:build cgo && libjpeg

package qrcam

/*
#include <stdio.h>
#include <stdlib.h>
#include <string.h>
#include <setjmp.h>
#include <jpeglib.h>

typedef struct {
	struct jpeg_error_mgr pub;
	jmp_buf jmpbuf;
	char msg[JMSG_LENGTH_MAX];
} mjpeg_error_mgr_t;

typedef struct {
	struct jpeg_decompress_struct dinfo;
	mjpeg_error_mgr_t jerr;
} mjpeg_decoder_t;

#cgo pkg-config: libjpeg

static void mjpeg_error_exit(j_common_ptr cinfo) {
	mjpeg_error_mgr_t *e = (mjpeg_error_mgr_t *)cinfo->err;
	(*cinfo->err->format_message)(cinfo, e->msg);
	longjmp(e->jmpbuf, 1);
}

static mjpeg_decoder_t *mjpeg_decoder_alloc(void) {
	mjpeg_decoder_t *mj = calloc(1, sizeof(mjpeg_decoder_t));
	if (mj == NULL) return NULL;
	mj->dinfo.err = jpeg_std_error(&mj->jerr.pub);
	mj->jerr.pub.error_exit = mjpeg_error_exit;
	if (setjmp(mj->jerr.jmpbuf)) {
		free(mj);
		return NULL;
	}
	jpeg_create_decompress(&mj->dinfo);
	return mj;
}

static void mjpeg_decoder_free(mjpeg_decoder_t *mj) {
	jpeg_destroy_decompress(&mj->dinfo);
	free(mj);
}

// 0 on success, -1 when the frame doesn't fit, -2 on libjpeg error (message in jerr.msg)
static int mjpeg_decode(mjpeg_decoder_t *mj, const unsigned char *data, unsigned long len,
		unsigned char *out, unsigned long out_len, int pitch, int max_w, int max_h, int gray) {
	struct jpeg_decompress_struct *dinfo = &mj->dinfo;
	if (setjmp(mj->jerr.jmpbuf)) {
		jpeg_abort_decompress(dinfo);
		return -2;
	}
	jpeg_mem_src(dinfo, (unsigned char *)data, len);
	jpeg_read_header(dinfo, TRUE);
	dinfo->out_color_space = gray ? JCS_GRAYSCALE : JCS_EXT_RGBA;
	dinfo->dct_method = JDCT_IFAST;
	if (dinfo->image_width > (JDIMENSION)max_w || dinfo->image_height > (JDIMENSION)max_h) {
		jpeg_abort_decompress(dinfo);
		return -1;
	}
	jpeg_start_decompress(dinfo);
	if ((unsigned long)pitch < (unsigned long)dinfo->output_width * dinfo->output_components ||
			(unsigned long)pitch * dinfo->output_height > out_len) {
		jpeg_abort_decompress(dinfo);
		return -1;
	}
	while (dinfo->output_scanline < dinfo->output_height) {
		JSAMPROW row = out + (unsigned long)dinfo->output_scanline * pitch;
		jpeg_read_scanlines(dinfo, &row, 1);
	}
	jpeg_finish_decompress(dinfo);
	return 0;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"
)

// MJPEG decoder writing scanlines straight into the target through libjpeg(-turbo)
type libjpegDecoder struct {
	format PixelFormat
	decoderImpl *C.mjpeg_decoder_t
}

// Create decoder writing pixels in given format
func NewMjpegDecoder(format PixelFormat) (FrameDecoder, error) {
	impl := C.mjpeg_decoder_alloc()
	if impl == nil {
		return nil, errors.New("Can't allocate libjpeg decompressor")
	}
	return &libjpegDecoder{format: format, decoderImpl: impl}, nil
}

// Decode frame into dst; fails with ErrFrameTooBig before writing when bounds are exceeded
func (d *libjpegDecoder) Decode(frame []byte, dst []byte, pitch, maxWidth, maxHeight int) error {
	if d.decoderImpl == nil { return errDecoderClosed }
	if len(frame) == 0 { return errors.New("mjpeg: empty frame") }
	if len(dst) == 0 { return fmt.Errorf("%w: empty target", ErrFrameTooBig) }
	frame = withHuffmanTables(frame)
	gray := C.int(0)
	if d.format == PixelFormatGray { gray = 1 }
	ret := C.mjpeg_decode(d.decoderImpl,
		(*C.uchar)(unsafe.Pointer(&frame[0])), C.ulong(len(frame)),
		(*C.uchar)(unsafe.Pointer(&dst[0])), C.ulong(len(dst)),
		C.int(pitch), C.int(maxWidth), C.int(maxHeight), gray)
	switch ret {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("%w: exceeds %dx%d or target of %d bytes with pitch %d", ErrFrameTooBig, maxWidth, maxHeight, len(dst), pitch)
	}
	return fmt.Errorf("mjpeg: %s", C.GoString(&d.decoderImpl.jerr.msg[0]))
}

// Deallocate decompressor; repeated calls are no-ops
func (d *libjpegDecoder) Close() error {
	if d.decoderImpl != nil {
		C.mjpeg_decoder_free(d.decoderImpl)
		d.decoderImpl = nil
	}
	return nil
}
