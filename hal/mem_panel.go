package hal

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"
)

var ErrPanelNotInitialized = errors.New("panel not initialized")

// MemPanel is a software panel: Present writes into an in-memory copy of the
// panel's pixel memory. Host builds show it in a window or dump it to PNG.
//
// With scan sync enabled, Present waits for the start of the next refresh
// period before writing, which is what a driver with vsync-gated transfers
// does on hardware.
type MemPanel struct {
	mu     sync.Mutex
	cfg    PanelConfig
	stride int
	buf    []byte
	inited bool

	scanSync bool
	period   time.Duration
	epoch    time.Time
	now      func() time.Time
	sleep    func(time.Duration)

	presents uint64
}

// NewMemPanel returns an uninitialized software panel using the wall clock.
func NewMemPanel() *MemPanel {
	return newMemPanelWithClock(time.Now, time.Sleep)
}

func newMemPanelWithClock(now func() time.Time, sleep func(time.Duration)) *MemPanel {
	return &MemPanel{now: now, sleep: sleep}
}

func (p *MemPanel) Init(cfg PanelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cfg = cfg
	p.stride = cfg.Width * 2
	p.buf = make([]byte, p.stride*cfg.Height)
	p.period = cfg.RefreshPeriod()
	p.epoch = p.now()
	p.inited = true
	return nil
}

func (p *MemPanel) SetScanSync(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if enabled && p.period <= 0 {
		return fmt.Errorf("scan sync: %w", ErrNotImplemented)
	}
	p.scanSync = enabled
	return nil
}

func (p *MemPanel) Present(x, y, w, h int, pixels []byte) error {
	p.mu.Lock()
	inited, sync, period := p.inited, p.scanSync, p.period
	p.mu.Unlock()

	if !inited {
		return ErrPanelNotInitialized
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > p.cfg.Width || y+h > p.cfg.Height {
		return fmt.Errorf("present %d,%d %dx%d: rectangle outside panel", x, y, w, h)
	}
	rowBytes := w * 2
	if len(pixels) < rowBytes*h {
		return fmt.Errorf("present %dx%d: %d bytes, want %d", w, h, len(pixels), rowBytes*h)
	}

	if sync && period > 0 {
		if phase := p.now().Sub(p.epoch) % period; phase != 0 {
			p.sleep(period - phase)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for row := 0; row < h; row++ {
		off := (y+row)*p.stride + x*2
		copy(p.buf[off:off+rowBytes], pixels[row*rowBytes:(row+1)*rowBytes])
	}
	p.presents++
	return nil
}

// Config returns the configuration passed to Init.
func (p *MemPanel) Config() PanelConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Presents returns the number of completed Present calls.
func (p *MemPanel) Presents() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presents
}

// PixelAt returns the raw 16bpp wire value at (x, y).
func (p *MemPanel) PixelAt(x, y int) uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inited || x < 0 || y < 0 || x >= p.cfg.Width || y >= p.cfg.Height {
		return 0
	}
	return wirePixel(p.buf, y*p.stride+x*2, p.cfg.WireFormat)
}

// Snapshot decodes the panel memory into img, reallocating it when the size
// does not match. It returns the image written.
func (p *MemPanel) Snapshot(img *image.RGBA) *image.RGBA {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.inited {
		return img
	}
	if img == nil || img.Bounds().Dx() != p.cfg.Width || img.Bounds().Dy() != p.cfg.Height {
		img = image.NewRGBA(image.Rect(0, 0, p.cfg.Width, p.cfg.Height))
	}
	expandWire(img.Pix, p.buf, p.cfg.WireFormat)
	return img
}
