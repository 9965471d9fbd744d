// Package pixel converts rendered pixels into the panel's wire encoding.
//
// Down-conversion from 8-bit channels rounds to the nearest representable
// level instead of truncating, so gradients do not drift dark.
package pixel

import (
	"errors"
	"fmt"

	"rgbpanel/hal"
)

var (
	// ErrConversion means the transient conversion buffer could not be provided.
	ErrConversion = errors.New("pixel conversion buffer unavailable")
	// ErrUnsupported means there is no conversion between the two formats.
	ErrUnsupported = errors.New("unsupported pixel conversion")
	// ErrShortSpan means the source holds fewer bytes than the rectangle needs.
	ErrShortSpan = errors.New("pixel span shorter than rectangle")
)

// Scale8To5 maps an 8-bit channel to 5 bits with rounding.
func Scale8To5(v uint8) uint16 { return (uint16(v)*31 + 127) / 255 }

// Scale8To6 maps an 8-bit channel to 6 bits with rounding.
func Scale8To6(v uint8) uint16 { return (uint16(v)*63 + 127) / 255 }

// Expand5To8 maps a 5-bit channel back to 8 bits with rounding.
func Expand5To8(v uint16) uint8 { return uint8(((v&0x1F)*255 + 15) / 31) }

// Expand6To8 maps a 6-bit channel back to 8 bits with rounding.
func Expand6To8(v uint16) uint8 { return uint8(((v&0x3F)*255 + 31) / 63) }

// RGB565 packs 8-bit channels into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return Scale8To5(r)<<11 | Scale8To6(g)<<5 | Scale8To5(b)
}

// RGB888From565 unpacks a 5-6-5 pixel to 8-bit channels.
func RGB888From565(p uint16) (r, g, b uint8) {
	return Expand5To8(p >> 11), Expand6To8(p >> 5), Expand5To8(p)
}

// Put writes one pixel of color (r, g, b) in format f at buf[off:].
func Put(buf []byte, off int, f hal.PixelFormat, r, g, b uint8) {
	switch f {
	case hal.PixelFormatRGB565:
		p := RGB565(r, g, b)
		buf[off] = byte(p)
		buf[off+1] = byte(p >> 8)
	case hal.PixelFormatRGB565BE:
		p := RGB565(r, g, b)
		buf[off] = byte(p >> 8)
		buf[off+1] = byte(p)
	case hal.PixelFormatRGB888:
		buf[off] = r
		buf[off+1] = g
		buf[off+2] = b
	case hal.PixelFormatBGR888:
		buf[off] = b
		buf[off+1] = g
		buf[off+2] = r
	}
}

// Fill writes n pixels of color (r, g, b) starting at buf[off:].
func Fill(buf []byte, off, n int, f hal.PixelFormat, r, g, b uint8) {
	bpp := f.BytesPerPixel()
	if bpp == 0 || n <= 0 {
		return
	}
	Put(buf, off, f, r, g, b)
	// Doubling copy: one encode, then memmove.
	filled := bpp
	total := n * bpp
	for filled < total {
		filled += copy(buf[off+filled:off+total], buf[off:off+filled])
	}
}

// Converter turns toolkit pixels into wire pixels. It keeps one scratch buffer
// that is reused across calls, so a flush allocates at most once when the
// rectangle is larger than anything seen before.
//
// A Converter is not safe for concurrent use; the flush path is single-threaded.
type Converter struct {
	// MaxScratch caps the scratch buffer in bytes; a rectangle needing more
	// fails with ErrConversion. Zero means no cap.
	MaxScratch int

	scratch []byte
}

// NewConverter returns a converter whose scratch buffer may grow to maxScratch bytes.
func NewConverter(maxScratch int) *Converter {
	return &Converter{MaxScratch: maxScratch}
}

// Needed reports whether pixels in from must be transformed to be sent as to.
func Needed(from, to hal.PixelFormat) bool { return from != to }

// Convert transforms a w*h span from one format to another.
//
// When the formats match, src itself is returned (no copy, no allocation).
// Otherwise the result aliases the converter's scratch buffer and is only
// valid until the next Convert call.
func (c *Converter) Convert(src []byte, w, h int, from, to hal.PixelFormat) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("convert %dx%d: %w", w, h, ErrShortSpan)
	}
	srcBpp := from.BytesPerPixel()
	dstBpp := to.BytesPerPixel()
	if srcBpp == 0 || dstBpp == 0 {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrUnsupported)
	}
	n := w * h
	if len(src) < n*srcBpp {
		return nil, fmt.Errorf("convert %dx%d %s: have %d bytes: %w", w, h, from, len(src), ErrShortSpan)
	}
	if !Needed(from, to) {
		return src[:n*srcBpp], nil
	}
	// Only 16bpp wire formats are produced.
	if dstBpp != 2 {
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrUnsupported)
	}

	dst, err := c.buffer(n * dstBpp)
	if err != nil {
		return nil, err
	}

	swap := to == hal.PixelFormatRGB565BE
	switch from {
	case hal.PixelFormatRGB888:
		down888(dst, src, n, 0, 2, swap)
	case hal.PixelFormatBGR888:
		down888(dst, src, n, 2, 0, swap)
	case hal.PixelFormatRGB565, hal.PixelFormatRGB565BE:
		// Same width, opposite byte order.
		for i := 0; i < n*2; i += 2 {
			dst[i] = src[i+1]
			dst[i+1] = src[i]
		}
	default:
		return nil, fmt.Errorf("%s -> %s: %w", from, to, ErrUnsupported)
	}
	return dst, nil
}

func down888(dst, src []byte, n, ri, bi int, swap bool) {
	for i := 0; i < n; i++ {
		s := src[i*3 : i*3+3]
		p := Scale8To5(s[ri])<<11 | Scale8To6(s[1])<<5 | Scale8To5(s[bi])
		if swap {
			dst[i*2] = byte(p >> 8)
			dst[i*2+1] = byte(p)
		} else {
			dst[i*2] = byte(p)
			dst[i*2+1] = byte(p >> 8)
		}
	}
}

func (c *Converter) buffer(size int) ([]byte, error) {
	if c.MaxScratch > 0 && size > c.MaxScratch {
		return nil, fmt.Errorf("need %d bytes, limit %d: %w", size, c.MaxScratch, ErrConversion)
	}
	if cap(c.scratch) < size {
		c.scratch = make([]byte, size)
	}
	return c.scratch[:size], nil
}

// ScratchCap returns the capacity of the reusable conversion buffer.
func (c *Converter) ScratchCap() int { return cap(c.scratch) }
