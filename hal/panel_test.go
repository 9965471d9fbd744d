package hal

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultPanelConfig(t *testing.T) {
	c := DefaultPanelConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.Width != 800 || c.Height != 480 || c.Pins.Backlight != 2 || !c.PCLKActiveNeg {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	// (800+20) * (480+20) clocks at 16 MHz.
	if got, want := c.RefreshPeriod(), 25625*time.Microsecond; got != want {
		t.Fatalf("RefreshPeriod = %s; want %s", got, want)
	}
	if s := c.String(); s != "800x480 rgb565" {
		t.Fatalf("String = %q", s)
	}
}

func TestPanelConfig_Validate(t *testing.T) {
	tcs := []struct {
		name string
		mod  func(*PanelConfig)
	}{
		{name: "zero width", mod: func(c *PanelConfig) { c.Width = 0 }},
		{name: "negative height", mod: func(c *PanelConfig) { c.Height = -1 }},
		{name: "24bpp wire", mod: func(c *PanelConfig) { c.WireFormat = PixelFormatRGB888 }},
		{name: "unknown wire", mod: func(c *PanelConfig) { c.WireFormat = 0 }},
		{name: "negative clock", mod: func(c *PanelConfig) { c.PixelClockHz = -1 }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultPanelConfig()
			tc.mod(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidPanelConfig) {
				t.Fatalf("Validate = %v; want ErrInvalidPanelConfig", err)
			}
		})
	}

	c := DefaultPanelConfig()
	c.PixelClockHz = 0
	if c.RefreshPeriod() != 0 {
		t.Fatalf("RefreshPeriod without clock = %s; want 0", c.RefreshPeriod())
	}
}

func TestParse(t *testing.T) {
	for _, f := range []PixelFormat{PixelFormatRGB565, PixelFormatRGB565BE, PixelFormatRGB888, PixelFormatBGR888} {
		got, err := ParsePixelFormat(f.String())
		if err != nil || got != f {
			t.Fatalf("ParsePixelFormat(%q) = %v, %v", f.String(), got, err)
		}
	}
	for _, tier := range []MemoryTier{TierSPIRAM, TierInternal, TierDMA, TierGeneral} {
		got, err := ParseMemoryTier(tier.String())
		if err != nil || got != tier {
			t.Fatalf("ParseMemoryTier(%q) = %v, %v", tier.String(), got, err)
		}
	}
	if _, err := ParsePixelFormat("rgb666"); err == nil {
		t.Fatalf("ParsePixelFormat accepted rgb666")
	}
	if _, err := ParseMemoryTier("flash"); err == nil {
		t.Fatalf("ParseMemoryTier accepted flash")
	}
}

func TestMonoClock(t *testing.T) {
	cur := time.Unix(100, 0)
	c := newMonoClock(func() time.Time { return cur })
	cur = cur.Add(1500 * time.Millisecond)
	if got := c.NowMillis(); got != 1500 {
		t.Fatalf("NowMillis = %d; want 1500", got)
	}
}
