//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Host is the desktop HAL: a software panel, a stdout logger and a wall clock.
type Host struct {
	logger *hostLogger
	bl     *hostBacklight
	panel  *MemPanel
	clock  *monoClock
	mem    Budgets
	cfg    PanelConfig
}

// New returns a host HAL implementation.
func New() HAL {
	return NewHost()
}

// NewHost returns the concrete host HAL so runners can reach the software panel.
func NewHost() *Host {
	logger := &hostLogger{w: os.Stdout}
	return &Host{
		logger: logger,
		bl:     &hostBacklight{logger: logger},
		panel:  NewMemPanel(),
		clock:  newMonoClock(time.Now),
		// ESP32-S3 with 8 MiB PSRAM: the sizes the firmware actually saw.
		mem: Budgets{
			TierSPIRAM:   8 << 20,
			TierInternal: 320 << 10,
			TierDMA:      64 << 10,
			TierGeneral:  320 << 10,
		},
		cfg: DefaultPanelConfig(),
	}
}

func (h *Host) Logger() Logger           { return h.logger }
func (h *Host) Backlight() Backlight     { return h.bl }
func (h *Host) Panel() Presenter         { return h.panel }
func (h *Host) Ticks() TickSource        { return h.clock }
func (h *Host) Memory() Memory           { return h.mem }
func (h *Host) PanelConfig() PanelConfig { return h.cfg }

// MemPanel returns the software panel backing Panel.
func (h *Host) MemPanel() *MemPanel { return h.panel }

// BacklightOn reports the last level written to the backlight.
func (h *Host) BacklightOn() bool {
	h.bl.mu.Lock()
	defer h.bl.mu.Unlock()
	return h.bl.on
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostBacklight struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostBacklight) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("backlight: HIGH")
}

func (l *hostBacklight) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("backlight: LOW")
}
