package config

import (
	"flag"

	"rgbpanel/hal"
	"rgbpanel/internal/flush"
)

// RegisterFlags binds the configuration surface to fs, using c's current
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.BufferLines, "lines", c.BufferLines, "Draw buffer height in panel lines.")
	fs.IntVar(&c.MinBufferLines, "min-lines", c.MinBufferLines, "Smallest buffer height allocation may fall back to (0 = no shrinking).")
	fs.DurationVar(&c.TickDelay, "tick-delay", c.TickDelay, "Per-tick delay in software-paced mode.")
	fs.IntVar(&c.MaxConvertBytes, "max-convert", c.MaxConvertBytes, "Conversion scratch limit in bytes (0 = one draw buffer).")

	fs.Func("ui-format", "Toolkit pixel format: rgb565, rgb565be, rgb888, bgr888 (default "+c.UIFormat.String()+").", func(s string) error {
		f, err := hal.ParsePixelFormat(s)
		if err != nil {
			return err
		}
		c.UIFormat = f
		return nil
	})
	fs.Func("wire-format", "Panel wire format: rgb565 or rgb565be (default "+c.Panel.WireFormat.String()+").", func(s string) error {
		f, err := hal.ParsePixelFormat(s)
		if err != nil {
			return err
		}
		c.Panel.WireFormat = f
		return nil
	})
	fs.Func("buffering", "Buffering mode: single or double (default "+c.Buffering.String()+").", func(s string) error {
		b, err := flush.ParseBuffering(s)
		if err != nil {
			return err
		}
		c.Buffering = b
		return nil
	})
	fs.Func("tiers", "Memory tier order, e.g. spiram,internal (default "+FormatTiers(c.Tiers)+").", func(s string) error {
		t, err := ParseTiers(s)
		if err != nil {
			return err
		}
		c.Tiers = t
		return nil
	})
	fs.Func("tear", "Tear avoidance: driver-sync or software-paced (default "+c.TearMode.String()+").", func(s string) error {
		m, err := flush.ParseTearMode(s)
		if err != nil {
			return err
		}
		c.TearMode = m
		return nil
	})
}
