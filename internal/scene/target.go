package scene

import (
	"image/color"

	"rgbpanel/hal"
	"rgbpanel/internal/pixel"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*target)(nil)

// target is a drivers.Displayer over one strip of the draw buffer. It takes
// panel coordinates and drops anything outside the strip, so widgets can draw
// themselves whole and the strip keeps only its slice.
type target struct {
	buf    []byte
	format hal.PixelFormat
	bpp    int
	area   Area
	stride int
	panelW int
	panelH int
}

func newTarget(buf []byte, format hal.PixelFormat, area Area, panelW, panelH int) *target {
	bpp := format.BytesPerPixel()
	return &target{
		buf:    buf,
		format: format,
		bpp:    bpp,
		area:   area,
		stride: area.Width() * bpp,
		panelW: panelW,
		panelH: panelH,
	}
}

func (t *target) Size() (x, y int16) { return int16(t.panelW), int16(t.panelH) }

func (t *target) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < t.area.X1 || ix > t.area.X2 || iy < t.area.Y1 || iy > t.area.Y2 {
		return
	}
	off := (iy-t.area.Y1)*t.stride + (ix-t.area.X1)*t.bpp
	if off < 0 || off+t.bpp > len(t.buf) {
		return
	}
	if c.A != 0xFF {
		c = t.blend(off, c)
	}
	pixel.Put(t.buf, off, t.format, c.R, c.G, c.B)
}

// Display is a no-op: the scene hands finished strips to its flush callback.
func (t *target) Display() error { return nil }

// fill paints the part of a that overlaps the strip.
func (t *target) fill(a Area, c color.RGBA) {
	a, ok := a.Intersect(t.area)
	if !ok {
		return
	}
	n := a.Width()
	for y := a.Y1; y <= a.Y2; y++ {
		off := (y-t.area.Y1)*t.stride + (a.X1-t.area.X1)*t.bpp
		pixel.Fill(t.buf, off, n, t.format, c.R, c.G, c.B)
	}
}

func (t *target) blend(off int, c color.RGBA) color.RGBA {
	r, g, b := t.at(off)
	a := uint16(c.A)
	mix := func(fg, bg uint8) uint8 {
		return uint8((uint16(fg)*a + uint16(bg)*(255-a) + 127) / 255)
	}
	return color.RGBA{R: mix(c.R, r), G: mix(c.G, g), B: mix(c.B, b), A: 0xFF}
}

func (t *target) at(off int) (r, g, b uint8) {
	switch t.format {
	case hal.PixelFormatRGB565:
		return pixel.RGB888From565(uint16(t.buf[off]) | uint16(t.buf[off+1])<<8)
	case hal.PixelFormatRGB565BE:
		return pixel.RGB888From565(uint16(t.buf[off])<<8 | uint16(t.buf[off+1]))
	case hal.PixelFormatRGB888:
		return t.buf[off], t.buf[off+1], t.buf[off+2]
	case hal.PixelFormatBGR888:
		return t.buf[off+2], t.buf[off+1], t.buf[off]
	}
	return 0, 0, 0
}
