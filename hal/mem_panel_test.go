package hal

import (
	"errors"
	"testing"
	"time"
)

type fakeTime struct {
	cur    time.Time
	sleeps []time.Duration
}

func (f *fakeTime) now() time.Time { return f.cur }

func (f *fakeTime) sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
	f.cur = f.cur.Add(d)
}

func smallPanel() PanelConfig {
	return PanelConfig{Width: 4, Height: 3, WireFormat: PixelFormatRGB565}
}

func TestMemPanel_PresentBeforeInit(t *testing.T) {
	p := NewMemPanel()
	if err := p.Present(0, 0, 1, 1, []byte{0, 0}); !errors.Is(err, ErrPanelNotInitialized) {
		t.Fatalf("Present = %v; want ErrPanelNotInitialized", err)
	}
	if p.Snapshot(nil) != nil {
		t.Fatalf("Snapshot before Init returned an image")
	}
}

func TestMemPanel_Present(t *testing.T) {
	p := NewMemPanel()
	if err := p.Init(smallPanel()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// 2x2 red at (1,1).
	red := []byte{0x00, 0xF8, 0x00, 0xF8, 0x00, 0xF8, 0x00, 0xF8}
	if err := p.Present(1, 1, 2, 2, red); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if p.PixelAt(1, 1) != 0xF800 || p.PixelAt(2, 2) != 0xF800 || p.PixelAt(0, 0) != 0 || p.PixelAt(3, 1) != 0 {
		t.Fatalf("panel memory wrong around the rectangle")
	}
	if p.Presents() != 1 {
		t.Fatalf("Presents = %d", p.Presents())
	}

	img := p.Snapshot(nil)
	if c := img.RGBAAt(1, 1); c.R != 0xFF || c.G != 0 || c.B != 0 || c.A != 0xFF {
		t.Fatalf("snapshot (1,1) = %v; want red", c)
	}
	if again := p.Snapshot(img); again != img {
		t.Fatalf("Snapshot reallocated a matching image")
	}

	if err := p.Present(3, 0, 2, 1, red); err == nil {
		t.Fatalf("Present accepted a rectangle past the right edge")
	}
	if err := p.Present(0, 0, 2, 2, red[:6]); err == nil {
		t.Fatalf("Present accepted short data")
	}
}

func TestMemPanel_BigEndianWire(t *testing.T) {
	p := NewMemPanel()
	cfg := smallPanel()
	cfg.WireFormat = PixelFormatRGB565BE
	if err := p.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.Present(0, 0, 1, 1, []byte{0x07, 0xE0}); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if got := p.PixelAt(0, 0); got != 0x07E0 {
		t.Fatalf("PixelAt = %#04x; want green", got)
	}
}

func TestMemPanel_ScanSync(t *testing.T) {
	ft := &fakeTime{cur: time.Unix(0, 0)}
	p := newMemPanelWithClock(ft.now, ft.sleep)
	cfg := smallPanel()
	cfg.PixelClockHz = 1000 // 4x3 pixels, no blanking: 12 ms per scan.
	if err := p.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.SetScanSync(true); err != nil {
		t.Fatalf("SetScanSync: %v", err)
	}

	px := make([]byte, 2)
	ft.cur = ft.cur.Add(5 * time.Millisecond)
	if err := p.Present(0, 0, 1, 1, px); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(ft.sleeps) != 1 || ft.sleeps[0] != 7*time.Millisecond {
		t.Fatalf("sleeps = %v; want [7ms] to the next scan start", ft.sleeps)
	}

	// Already on a boundary: no wait.
	if err := p.Present(0, 0, 1, 1, px); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(ft.sleeps) != 1 {
		t.Fatalf("sleeps = %v; want no wait on a boundary", ft.sleeps)
	}

	if err := p.SetScanSync(false); err != nil {
		t.Fatalf("SetScanSync(false): %v", err)
	}
	ft.cur = ft.cur.Add(time.Millisecond)
	_ = p.Present(0, 0, 1, 1, px)
	if len(ft.sleeps) != 1 {
		t.Fatalf("unsynced present waited: %v", ft.sleeps)
	}
}

func TestMemPanel_ScanSyncNeedsClock(t *testing.T) {
	p := NewMemPanel()
	if err := p.Init(smallPanel()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := p.SetScanSync(true); !errors.Is(err, ErrNotImplemented) {
		t.Fatalf("SetScanSync without pixel clock = %v; want ErrNotImplemented", err)
	}
}
