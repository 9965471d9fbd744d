//go:build tinygo && baremetal && !picocalc && !pyportal

package hal

import "machine"

// New returns a Pico 2 (RP2350) HAL with no panel attached.
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
		panel:  stubPresenter{},
		clock:  newBoardClock(),
		mem: Budgets{
			TierInternal: 128 << 10,
			TierGeneral:  64 << 10,
		},
		cfg: PanelConfig{Width: 320, Height: 240, WireFormat: PixelFormatRGB565BE},
	}
}
