package app

import (
	"fmt"
	"strings"

	"rgbpanel/hal"
)

// halt is the fail-stop path: the panel stays dark and the cause goes to the
// log. It never returns.
func halt(h hal.HAL, cause any) {
	if bl := h.Backlight(); bl != nil {
		bl.Low()
	}
	if l := h.Logger(); l != nil {
		for _, line := range strings.Split(fmt.Sprint(cause), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString("CRITICAL: " + line)
		}
		l.WriteLineString("CRITICAL: halted")
	}
	select {}
}

// haltOnPanic turns a panic in the render loop into a logged halt instead of
// a reset loop.
func haltOnPanic(h hal.HAL) {
	if r := recover(); r != nil {
		halt(h, fmt.Sprintf("panic: %v", r))
	}
}
