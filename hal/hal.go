package hal

import (
	"errors"
	"fmt"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Backlight is the panel backlight enable line.
type Backlight interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines a pixel encoding, either the toolkit's render format or
// the panel's wire format.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGB565BE is 16bpp with the two bytes swapped (big-endian on the wire).
	PixelFormatRGB565BE
	// PixelFormatRGB888 is 24bpp stored as R, G, B bytes.
	PixelFormatRGB888
	// PixelFormatBGR888 is 24bpp stored as B, G, R bytes.
	PixelFormatBGR888
)

// BytesPerPixel returns the storage size of one pixel, or 0 for an unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565, PixelFormatRGB565BE:
		return 2
	case PixelFormatRGB888, PixelFormatBGR888:
		return 3
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGB565BE:
		return "rgb565be"
	case PixelFormatRGB888:
		return "rgb888"
	case PixelFormatBGR888:
		return "bgr888"
	default:
		return fmt.Sprintf("PixelFormat(%d)", uint8(f))
	}
}

// ParsePixelFormat maps a format name (as printed by String) to a PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for _, f := range []PixelFormat{PixelFormatRGB565, PixelFormatRGB565BE, PixelFormatRGB888, PixelFormatBGR888} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q", s)
}

// Presenter is the panel driver contract.
//
// Present transfers a w*h rectangle of wire-format pixels to the panel at
// (x, y). It returns once the transfer is complete.
type Presenter interface {
	Init(cfg PanelConfig) error
	Present(x, y, w, h int, pixels []byte) error
}

// ScanSyncer is implemented by presenters that can hold back a transfer until
// the panel scan reaches a safe window.
type ScanSyncer interface {
	SetScanSync(enabled bool) error
}

// TickSource is the toolkit's monotonic millisecond clock.
type TickSource interface {
	NowMillis() uint32
}

// MemoryTier names a pool of memory with distinct speed and capacity.
type MemoryTier uint8

const (
	// TierSPIRAM is external PSRAM: large and slower.
	TierSPIRAM MemoryTier = iota + 1
	// TierInternal is on-chip SRAM: fast and scarce.
	TierInternal
	// TierDMA is internal memory reachable by the DMA engine.
	TierDMA
	// TierGeneral is the general-purpose heap.
	TierGeneral
)

func (t MemoryTier) String() string {
	switch t {
	case TierSPIRAM:
		return "spiram"
	case TierInternal:
		return "internal"
	case TierDMA:
		return "dma"
	case TierGeneral:
		return "general"
	default:
		return fmt.Sprintf("MemoryTier(%d)", uint8(t))
	}
}

// ParseMemoryTier maps a tier name (as printed by String) to a MemoryTier.
func ParseMemoryTier(s string) (MemoryTier, error) {
	for _, t := range []MemoryTier{TierSPIRAM, TierInternal, TierDMA, TierGeneral} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown memory tier %q", s)
}

// Memory reports how many bytes each tier can hand out to framebuffers.
// A budget of 0 means the tier is not present on this board.
type Memory interface {
	Budget(tier MemoryTier) int
}

// HAL provides the only contact point between the pipeline and the board.
type HAL interface {
	Logger() Logger
	Backlight() Backlight
	Panel() Presenter
	Ticks() TickSource
	Memory() Memory
	// PanelConfig returns the board's wiring and timing for its panel.
	PanelConfig() PanelConfig
}

// Budgets is a fixed Memory table.
type Budgets map[MemoryTier]int

func (b Budgets) Budget(tier MemoryTier) int { return b[tier] }
