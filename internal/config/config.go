// Package config holds the pipeline's configuration surface.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rgbpanel/hal"
	"rgbpanel/internal/flush"
)

var ErrInvalid = errors.New("invalid config")

// Config is fixed at startup.
type Config struct {
	Panel hal.PanelConfig

	// UIFormat is what the toolkit renders in. It is never inferred.
	UIFormat hal.PixelFormat

	// BufferLines is the height of each draw buffer in panel lines. Taller
	// buffers mean fewer flushes per frame and more memory.
	BufferLines int
	// MinBufferLines lets allocation halve the buffer down to this height
	// when no tier fits the full size. Zero disables shrinking.
	MinBufferLines int

	Buffering flush.Buffering
	// Tiers is the memory tier preference order, fastest first.
	Tiers []hal.MemoryTier

	TearMode  flush.TearMode
	TickDelay time.Duration

	// MaxConvertBytes caps the conversion scratch buffer. Zero sizes it to
	// one draw buffer in the wire format.
	MaxConvertBytes int
}

// Default returns the configuration of the 800x480 board: 120-line single
// buffer in PSRAM (falling back to internal RAM), 24-bit rendering converted
// to RGB565 on the wire, driver-synchronized presentation.
func Default() Config {
	return ForPanel(hal.DefaultPanelConfig())
}

// ForPanel returns the defaults adjusted to a board's panel.
func ForPanel(p hal.PanelConfig) Config {
	lines := 120
	if p.Height > 0 && lines > p.Height {
		lines = p.Height
	}
	return Config{
		Panel:       p,
		UIFormat:    hal.PixelFormatRGB888,
		BufferLines: lines,
		Buffering:   flush.Single,
		Tiers:       []hal.MemoryTier{hal.TierSPIRAM, hal.TierInternal},
		TearMode:    flush.DriverSync,
		TickDelay:   flush.DefaultTickDelay,
	}
}

// Validate checks the configuration as a whole.
func (c Config) Validate() error {
	if err := c.Panel.Validate(); err != nil {
		return err
	}
	if c.UIFormat.BytesPerPixel() == 0 {
		return fmt.Errorf("%w: ui format %s", ErrInvalid, c.UIFormat)
	}
	if c.BufferLines <= 0 || c.BufferLines > c.Panel.Height {
		return fmt.Errorf("%w: buffer lines %d outside 1..%d", ErrInvalid, c.BufferLines, c.Panel.Height)
	}
	if c.MinBufferLines < 0 || c.MinBufferLines > c.BufferLines {
		return fmt.Errorf("%w: min buffer lines %d outside 0..%d", ErrInvalid, c.MinBufferLines, c.BufferLines)
	}
	if c.Buffering != flush.Single && c.Buffering != flush.Double {
		return fmt.Errorf("%w: buffering %s", ErrInvalid, c.Buffering)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: no memory tiers", ErrInvalid)
	}
	if c.TearMode != flush.DriverSync && c.TearMode != flush.SoftwarePaced {
		return fmt.Errorf("%w: tear mode %s", ErrInvalid, c.TearMode)
	}
	if c.TickDelay < 0 {
		return fmt.Errorf("%w: tick delay %s", ErrInvalid, c.TickDelay)
	}
	if c.MaxConvertBytes < 0 {
		return fmt.Errorf("%w: max convert bytes %d", ErrInvalid, c.MaxConvertBytes)
	}
	return nil
}

// LineBytes is the size of one draw-buffer line in the UI format.
func (c Config) LineBytes() int { return c.Panel.Width * c.UIFormat.BytesPerPixel() }

// Policy is the tear-avoidance policy this configuration asks for.
func (c Config) Policy() flush.Policy {
	return flush.Policy{Mode: c.TearMode, Buffering: c.Buffering, TickDelay: c.TickDelay}
}

// ParseTiers parses a comma-separated tier list such as "spiram,internal".
func ParseTiers(s string) ([]hal.MemoryTier, error) {
	var out []hal.MemoryTier
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		t, err := hal.ParseMemoryTier(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty tier list %q", ErrInvalid, s)
	}
	return out, nil
}

// FormatTiers is the inverse of ParseTiers.
func FormatTiers(tiers []hal.MemoryTier) string {
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}
