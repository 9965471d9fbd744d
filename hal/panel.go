package hal

import (
	"errors"
	"fmt"
	"time"
)

// SyncTiming is the porch/pulse timing of one sync line, in pixel clocks
// (horizontal) or lines (vertical).
type SyncTiming struct {
	Polarity   uint8
	FrontPorch int
	PulseWidth int
	BackPorch  int
}

func (t SyncTiming) blanking() int { return t.FrontPorch + t.PulseWidth + t.BackPorch }

// PanelPins is the RGB parallel wiring. Data lines are listed LSB first.
type PanelPins struct {
	DE, VSync, HSync, PCLK int
	Red                    [5]int
	Green                  [6]int
	Blue                   [5]int
	Backlight              int
}

// PanelConfig is fixed at startup and never mutated afterwards.
type PanelConfig struct {
	Width  int
	Height int
	// WireFormat is the encoding the panel accepts in Present.
	WireFormat PixelFormat

	Pins PanelPins

	HSync         SyncTiming
	VSync         SyncTiming
	PCLKActiveNeg bool
	PixelClockHz  int
}

var ErrInvalidPanelConfig = errors.New("invalid panel config")

// DefaultPanelConfig is the 5" 800x480 RGB parallel panel on the ESP32-S3 PowerBoard.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		Width:      800,
		Height:     480,
		WireFormat: PixelFormatRGB565,
		Pins: PanelPins{
			DE:        40,
			VSync:     41,
			HSync:     39,
			PCLK:      42,
			Red:       [5]int{45, 48, 47, 21, 14},
			Green:     [6]int{5, 6, 7, 15, 16, 4},
			Blue:      [5]int{8, 3, 46, 9, 1},
			Backlight: 2,
		},
		HSync:         SyncTiming{Polarity: 0, FrontPorch: 8, PulseWidth: 4, BackPorch: 8},
		VSync:         SyncTiming{Polarity: 0, FrontPorch: 8, PulseWidth: 4, BackPorch: 8},
		PCLKActiveNeg: true,
		PixelClockHz:  16_000_000,
	}
}

// Validate checks the resolution, wire format and clock.
func (c PanelConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidPanelConfig, c.Width, c.Height)
	}
	if c.WireFormat.BytesPerPixel() != 2 {
		return fmt.Errorf("%w: wire format %s is not 16bpp", ErrInvalidPanelConfig, c.WireFormat)
	}
	if c.PixelClockHz < 0 {
		return fmt.Errorf("%w: pixel clock %d", ErrInvalidPanelConfig, c.PixelClockHz)
	}
	return nil
}

// RefreshPeriod is the duration of one full scan including blanking.
// It returns 0 when no pixel clock is configured.
func (c PanelConfig) RefreshPeriod() time.Duration {
	if c.PixelClockHz <= 0 {
		return 0
	}
	total := int64(c.Width+c.HSync.blanking()) * int64(c.Height+c.VSync.blanking())
	return time.Duration(total * int64(time.Second) / int64(c.PixelClockHz))
}

func (c PanelConfig) String() string {
	return fmt.Sprintf("%dx%d %s", c.Width, c.Height, c.WireFormat)
}
