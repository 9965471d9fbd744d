//go:build tinygo && baremetal && picocalc

package hal

import "machine"

// New returns a PicoCalc HAL (Pico/Pico2 on the PicoCalc carrier) driving the
// 320x320 ILI9488 over SPI1.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &board{
		logger: &uartLogger{uart: uart},
		bl:     newPinBacklight(machine.LED),
		panel:  &ili9488{},
		clock:  newBoardClock(),
		mem: Budgets{
			TierInternal: 200 << 10,
			TierDMA:      32 << 10,
			TierGeneral:  64 << 10,
		},
		cfg: PanelConfig{
			Width:      320,
			Height:     320,
			WireFormat: PixelFormatRGB565BE,
			Pins: PanelPins{
				PCLK:      int(machine.GP10),
				Backlight: int(machine.LED),
			},
			PixelClockHz: 0,
		},
	}
}
