//go:build tinygo && !baremetal

package hal

import (
	"fmt"
	"runtime"
	"time"
)

type tinyGoHostHAL struct {
	logger *tinyGoHostLogger
	bl     *tinyGoHostBacklight
	panel  *MemPanel
	clock  *monoClock
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU pin mapping.
func New() HAL {
	l := &tinyGoHostLogger{}
	return &tinyGoHostHAL{
		logger: l,
		bl:     &tinyGoHostBacklight{logger: l},
		panel:  NewMemPanel(),
		clock:  newMonoClock(time.Now),
	}
}

func (h *tinyGoHostHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHostHAL) Backlight() Backlight { return h.bl }
func (h *tinyGoHostHAL) Panel() Presenter     { return h.panel }
func (h *tinyGoHostHAL) Ticks() TickSource    { return h.clock }
func (h *tinyGoHostHAL) Memory() Memory {
	return Budgets{TierInternal: 512 << 10, TierGeneral: 4 << 20}
}
func (h *tinyGoHostHAL) PanelConfig() PanelConfig { return DefaultPanelConfig() }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostBacklight struct {
	on     bool
	logger *tinyGoHostLogger
}

func (l *tinyGoHostBacklight) High() {
	l.on = true
	l.logger.WriteLineString(fmt.Sprintf("backlight: HIGH (tinygo/%s)", runtime.GOOS))
}

func (l *tinyGoHostBacklight) Low() {
	l.on = false
	l.logger.WriteLineString(fmt.Sprintf("backlight: LOW (tinygo/%s)", runtime.GOOS))
}
