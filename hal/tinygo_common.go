//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinBacklight struct {
	pin machine.Pin
}

func (l *pinBacklight) High() { l.pin.High() }
func (l *pinBacklight) Low()  { l.pin.Low() }

func newPinBacklight(pin machine.Pin) *pinBacklight {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &pinBacklight{pin: pin}
}

// board is the shared shape of the bare-metal HALs; each board file fills it in.
type board struct {
	logger Logger
	bl     Backlight
	panel  Presenter
	clock  *monoClock
	mem    Budgets
	cfg    PanelConfig
}

func (b *board) Logger() Logger           { return b.logger }
func (b *board) Backlight() Backlight     { return b.bl }
func (b *board) Panel() Presenter         { return b.panel }
func (b *board) Ticks() TickSource        { return b.clock }
func (b *board) Memory() Memory           { return b.mem }
func (b *board) PanelConfig() PanelConfig { return b.cfg }

func newBoardClock() *monoClock { return newMonoClock(time.Now) }
