package app

import (
	"rgbpanel/hal"
	"rgbpanel/internal/config"
	"rgbpanel/internal/fbmem"
	"rgbpanel/internal/flush"
)

const heartbeatPeriod = 5000 // ms

func logHeartbeat(log hal.Logger, st flush.Stats) {
	logf(log, "heartbeat: %d frames, %d/%d flushes presented, %d dropped, %d present errors",
		st.Frames, st.Presented, st.Requests, st.Dropped(), st.PresentErrors)
}

func logMemory(log hal.Logger, arena *fbmem.Arena) {
	for _, s := range arena.Stats() {
		logf(log, "mem: %s %d KB, free %d KB", s.Tier, s.Capacity/1024, s.Free()/1024)
	}
}

func logBuffers(log hal.Logger, cfg config.Config, bufs *fbmem.Set, p flush.Policy) {
	logf(log, "draw: %d lines x %d bytes/line, %d bytes per pixel",
		bufs.Primary.Lines(), cfg.LineBytes(), cfg.UIFormat.BytesPerPixel())
	switch {
	case bufs.Double():
		logf(log, "draw: double buffering enabled")
	case bufs.Degraded:
		logf(log, "draw: double buffering requested, running single")
	default:
		logf(log, "draw: single buffering")
	}
	if d := p.Delay(); d > 0 {
		logf(log, "draw: software pacing %s per tick", d)
	}
}
