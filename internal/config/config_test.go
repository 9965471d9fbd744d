package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"rgbpanel/hal"
	"rgbpanel/internal/flush"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if c.BufferLines != 120 || c.Buffering != flush.Single || c.TearMode != flush.DriverSync {
		t.Fatalf("defaults = %+v", c)
	}
	if c.UIFormat != hal.PixelFormatRGB888 || c.Panel.WireFormat != hal.PixelFormatRGB565 {
		t.Fatalf("formats = %s -> %s", c.UIFormat, c.Panel.WireFormat)
	}
	if got := FormatTiers(c.Tiers); got != "spiram,internal" {
		t.Fatalf("tiers = %q", got)
	}
	if c.LineBytes() != 800*3 {
		t.Fatalf("LineBytes = %d", c.LineBytes())
	}
	if p := c.Policy(); p.Mode != flush.DriverSync || p.Delay() != 0 {
		t.Fatalf("policy = %+v", p)
	}
}

func TestForPanel_ClampsLines(t *testing.T) {
	c := ForPanel(hal.PanelConfig{Width: 160, Height: 80, WireFormat: hal.PixelFormatRGB565BE})
	if c.BufferLines != 80 {
		t.Fatalf("BufferLines = %d; want 80", c.BufferLines)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tcs := []struct {
		name string
		mod  func(*Config)
	}{
		{name: "ui format", mod: func(c *Config) { c.UIFormat = 0 }},
		{name: "no lines", mod: func(c *Config) { c.BufferLines = 0 }},
		{name: "taller than panel", mod: func(c *Config) { c.BufferLines = 481 }},
		{name: "min above lines", mod: func(c *Config) { c.MinBufferLines = 121 }},
		{name: "buffering", mod: func(c *Config) { c.Buffering = 9 }},
		{name: "no tiers", mod: func(c *Config) { c.Tiers = nil }},
		{name: "tear mode", mod: func(c *Config) { c.TearMode = 9 }},
		{name: "tick delay", mod: func(c *Config) { c.TickDelay = -time.Millisecond }},
		{name: "convert cap", mod: func(c *Config) { c.MaxConvertBytes = -1 }},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mod(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate = %v; want ErrInvalid", err)
			}
		})
	}

	c := Default()
	c.Panel.Width = 0
	if err := c.Validate(); !errors.Is(err, hal.ErrInvalidPanelConfig) {
		t.Fatalf("panel error = %v; want ErrInvalidPanelConfig", err)
	}
}

func TestParseTiers(t *testing.T) {
	got, err := ParseTiers(" internal, dma ,")
	if err != nil {
		t.Fatalf("ParseTiers: %v", err)
	}
	if len(got) != 2 || got[0] != hal.TierInternal || got[1] != hal.TierDMA {
		t.Fatalf("ParseTiers = %v", got)
	}
	if _, err := ParseTiers(","); !errors.Is(err, ErrInvalid) {
		t.Fatalf("empty list err = %v", err)
	}
	if _, err := ParseTiers("spiram,rom"); err == nil {
		t.Fatalf("unknown tier accepted")
	}
}

func TestRegisterFlags(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	err := fs.Parse([]string{
		"-lines", "60",
		"-min-lines", "15",
		"-buffering", "double",
		"-tiers", "internal",
		"-tear", "software-paced",
		"-tick-delay", "10ms",
		"-ui-format", "rgb565",
		"-wire-format", "rgb565be",
		"-max-convert", "4096",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.BufferLines != 60 || c.MinBufferLines != 15 || c.Buffering != flush.Double {
		t.Fatalf("buffer flags not applied: %+v", c)
	}
	if len(c.Tiers) != 1 || c.Tiers[0] != hal.TierInternal {
		t.Fatalf("tiers = %v", c.Tiers)
	}
	if c.TearMode != flush.SoftwarePaced || c.TickDelay != 10*time.Millisecond {
		t.Fatalf("tear = %s delay = %s", c.TearMode, c.TickDelay)
	}
	if c.UIFormat != hal.PixelFormatRGB565 || c.Panel.WireFormat != hal.PixelFormatRGB565BE || c.MaxConvertBytes != 4096 {
		t.Fatalf("format flags not applied: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-tear", "vsync"}); err == nil {
		t.Fatalf("bad tear mode accepted")
	}
}
