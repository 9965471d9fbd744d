// Package scene is a small retained-mode UI: a screen with widgets, dirty-area
// tracking, periodic timers, and partial rendering into a strip buffer that is
// handed to a flush callback one rectangle at a time.
//
// Rendering follows the flush-callback contract of embedded UI toolkits: the
// callback receives a rectangle and its pixels, and must call FlushReady
// before the next rectangle is rendered into the same buffer.
package scene

import (
	"errors"
	"image/color"

	"rgbpanel/hal"
)

// ErrFlushPending means the previous flush has not been acknowledged with
// FlushReady; nothing is rendered until it is.
var ErrFlushPending = errors.New("flush pending: FlushReady not called")

// maxInvalid is the number of separate dirty areas tracked before the whole
// screen is marked dirty instead.
const maxInvalid = 32

// FlushFunc receives one rendered rectangle. last marks the final rectangle
// of the current refresh.
type FlushFunc func(a Area, pixels []byte, last bool)

// Buffers is where the scene gets its draw buffer from. The buffer may change
// between refreshes, never during one.
type Buffers interface {
	RenderBuffer() []byte
}

// Display is the screen.
type Display struct {
	w, h   int
	format hal.PixelFormat
	bufs   Buffers
	clock  hal.TickSource

	flush   FlushFunc
	pending bool

	bg      color.RGBA
	widgets []Widget
	invalid []Area
	timers  []*Timer

	refreshes uint64
}

// New returns a w x h screen rendering in format.
func New(w, h int, format hal.PixelFormat, bufs Buffers, clock hal.TickSource) *Display {
	d := &Display{
		w:      w,
		h:      h,
		format: format,
		bufs:   bufs,
		clock:  clock,
		bg:     color.RGBA{A: 0xFF},
	}
	d.Invalidate(d.Screen())
	return d
}

// Screen is the full-screen area.
func (d *Display) Screen() Area { return Area{X2: d.w - 1, Y2: d.h - 1} }

// SetFlushFunc registers the flush callback.
func (d *Display) SetFlushFunc(f FlushFunc) { d.flush = f }

// FlushReady acknowledges the last flush; the draw buffer may be reused.
func (d *Display) FlushReady() { d.pending = false }

// Refreshes counts completed refresh passes.
func (d *Display) Refreshes() uint64 { return d.refreshes }

// SetBackground changes the screen color.
func (d *Display) SetBackground(c color.RGBA) {
	d.bg = c
	d.Invalidate(d.Screen())
}

// Add puts w on top of the existing widgets.
func (d *Display) Add(w Widget) {
	w.attach(d)
	d.widgets = append(d.widgets, w)
	d.Invalidate(w.Bounds())
}

// Invalidate marks a as needing a redraw. Areas are clipped to the screen and
// merged with overlapping ones.
func (d *Display) Invalidate(a Area) {
	a, ok := a.Intersect(d.Screen())
	if !ok {
		return
	}
	for i := 0; i < len(d.invalid); i++ {
		if _, overlap := d.invalid[i].Intersect(a); !overlap {
			continue
		}
		a = a.Union(d.invalid[i])
		d.invalid = append(d.invalid[:i], d.invalid[i+1:]...)
		i = -1
	}
	if len(d.invalid) >= maxInvalid {
		d.invalid = append(d.invalid[:0], d.Screen())
		return
	}
	d.invalid = append(d.invalid, a)
}

// Invalid returns the pending dirty areas.
func (d *Display) Invalid() []Area {
	out := make([]Area, len(d.invalid))
	copy(out, d.invalid)
	return out
}

// Handler runs due timers and then redraws the dirty areas. It is the
// toolkit's periodic entry point.
func (d *Display) Handler() error {
	if d.clock != nil {
		now := d.clock.NowMillis()
		for _, t := range d.timers {
			t.run(now)
		}
	}
	return d.Refresh()
}

// Refresh renders all dirty areas in strips that fit the draw buffer and
// passes each strip to the flush callback.
func (d *Display) Refresh() error {
	if d.pending {
		return ErrFlushPending
	}
	if len(d.invalid) == 0 || d.flush == nil {
		return nil
	}
	bpp := d.format.BytesPerPixel()
	buf := d.bufs.RenderBuffer()
	if bpp == 0 || len(buf) < d.w*bpp {
		return errors.New("scene: draw buffer smaller than one line")
	}

	areas := d.invalid
	d.invalid = nil
	for i, a := range areas {
		rows := len(buf) / (a.Width() * bpp)
		for y := a.Y1; y <= a.Y2; y += rows {
			strip := Area{X1: a.X1, Y1: y, X2: a.X2, Y2: min(y+rows-1, a.Y2)}
			px := buf[:strip.Size()*bpp]
			d.render(strip, px)

			last := i == len(areas)-1 && strip.Y2 == a.Y2
			d.pending = true
			d.flush(strip, px, last)
			if d.pending {
				// Keep what was not drawn so nothing is lost once the
				// callback catches up.
				if strip.Y2 < a.Y2 {
					d.invalid = append(d.invalid, Area{X1: a.X1, Y1: strip.Y2 + 1, X2: a.X2, Y2: a.Y2})
				}
				d.invalid = append(d.invalid, areas[i+1:]...)
				return ErrFlushPending
			}
		}
	}
	d.refreshes++
	return nil
}

func (d *Display) render(strip Area, px []byte) {
	t := newTarget(px, d.format, strip, d.w, d.h)
	t.fill(strip, d.bg)
	for _, w := range d.widgets {
		if _, ok := w.Bounds().Intersect(strip); ok {
			w.draw(t)
		}
	}
}
