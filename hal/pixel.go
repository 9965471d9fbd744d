package hal

// rgb888From565 mirrors pixel.RGB888From565; internal/pixel imports hal.
func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr*255 + 15) / 31)
	g = uint8((gg*255 + 31) / 63)
	b = uint8((bb*255 + 15) / 31)
	return r, g, b
}

// wirePixel reads the 16bpp pixel at byte offset off.
func wirePixel(buf []byte, off int, f PixelFormat) uint16 {
	if f == PixelFormatRGB565BE {
		return uint16(buf[off])<<8 | uint16(buf[off+1])
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

// expandWire converts 16bpp wire pixels into RGBA (4 bytes per pixel, alpha 0xFF).
func expandWire(dst, src []byte, f PixelFormat) {
	for i := 0; i+1 < len(src) && (i/2)*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(wirePixel(src, i, f))
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}
