//go:build tinygo && baremetal && pyportal

package hal

import (
	"errors"
	"fmt"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/pixel"
)

// New returns a PyPortal HAL: ILI9341 on the 8-bit parallel bus, 320x240
// landscape.
func New() HAL {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})

	return &board{
		logger: &uartLogger{uart: uart},
		bl:     newPinBacklight(machine.TFT_BACKLIGHT),
		panel:  &ili9341Panel{},
		clock:  newBoardClock(),
		mem: Budgets{
			TierInternal: 96 << 10,
			TierGeneral:  32 << 10,
		},
		cfg: PanelConfig{
			Width:      320,
			Height:     240,
			WireFormat: PixelFormatRGB565BE,
			Pins: PanelPins{
				DE:        int(machine.TFT_CS),
				PCLK:      int(machine.TFT_WR),
				Backlight: int(machine.TFT_BACKLIGHT),
			},
		},
	}
}

type ili9341Panel struct {
	dev *ili9341.Device
}

func (p *ili9341Panel) Init(cfg PanelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.WireFormat != PixelFormatRGB565BE {
		return fmt.Errorf("ili9341: wire format %s unsupported", cfg.WireFormat)
	}
	p.dev = ili9341.NewParallel(
		machine.LCD_DATA0,
		machine.TFT_WR,
		machine.TFT_DC,
		machine.TFT_CS,
		machine.TFT_RESET,
		machine.TFT_RD,
	)
	p.dev.Configure(ili9341.Config{})
	if err := p.dev.SetRotation(drivers.Rotation90); err != nil {
		return fmt.Errorf("ili9341 rotation: %w", err)
	}
	w, h := p.dev.Size()
	if int(w) != cfg.Width || int(h) != cfg.Height {
		return fmt.Errorf("ili9341: panel is %dx%d, config wants %dx%d", w, h, cfg.Width, cfg.Height)
	}
	return nil
}

func (p *ili9341Panel) Present(x, y, w, h int, pixels []byte) error {
	if p.dev == nil {
		return ErrPanelNotInitialized
	}
	if len(pixels) < w*h*2 {
		return errors.New("ili9341: short pixel buffer")
	}
	img := pixel.NewImageFromBytes[pixel.RGB565BE](w, h, pixels[:w*h*2])
	return p.dev.DrawBitmap(int16(x), int16(y), img)
}
