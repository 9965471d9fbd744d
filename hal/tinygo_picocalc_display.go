//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"fmt"
	"machine"
	"time"
)

type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	w, h   int
	inited bool
}

func (d *ili9488) Init(cfg PanelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.WireFormat != PixelFormatRGB565BE {
		return fmt.Errorf("ili9488: wire format %s unsupported", cfg.WireFormat)
	}
	if machine.SPI1 == nil {
		return errors.New("SPI1 unavailable")
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	})

	d.spi = *machine.SPI1
	d.cs = machine.GP13
	d.dc = machine.GP14
	d.rst = machine.GP15
	d.w, d.h = cfg.Width, cfg.Height

	d.cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.dc.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.rst.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.cs.High()
	d.dc.High()
	d.rst.High()

	d.reset()
	d.configure()
	d.inited = true
	return nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9488) configure() {
	d.cmd(0xC0, 0x17, 0x15)             // PWCTRL1
	d.cmd(0xC1, 0x41)                   // PWCTRL2
	d.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL
	d.cmd(0x3A, 0x55)                   // COLMOD: 16bpp

	d.cmd(0xB1, 0xA0, 0x11)       // FRMCTRL1
	d.cmd(0xB6, 0x02, 0x22, 0x27) // DISCTRL (320 lines)

	// Many panels look correct with inversion enabled.
	d.cmd(0x21) // INVON

	// Mirror for PicoCalc wiring + BGR panel order.
	d.cmd(0x36, 0x40|0x04|0x08) // MX|MH|BGR

	d.cmd(0x11) // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

// Present streams an RGB565BE rectangle. The SPI transfer is blocking, so the
// caller's buffer is free again when this returns.
func (d *ili9488) Present(x, y, w, h int, pixels []byte) error {
	if !d.inited {
		return ErrPanelNotInitialized
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > d.w || y+h > d.h {
		return errors.New("ili9488: rectangle outside panel")
	}
	n := w * h * 2
	if len(pixels) < n {
		return errors.New("ili9488: short pixel buffer")
	}

	d.setWindow(uint16(x), uint16(y), uint16(x+w-1), uint16(y+h-1))

	d.cs.Low()
	d.dc.High()
	err := d.spi.Tx(pixels[:n], nil)
	d.cs.High()
	return err
}
