package app

import (
	"errors"
	"fmt"
	"time"

	"rgbpanel/hal"
	"rgbpanel/internal/buildinfo"
	"rgbpanel/internal/config"
	"rgbpanel/internal/fbmem"
	"rgbpanel/internal/flush"
	"rgbpanel/internal/pixel"
	"rgbpanel/internal/scene"
)

// Context owns everything the render loop touches: the draw buffers, the
// panel, the flush scheduler, the screen and the widgets timer callbacks
// update. Nothing in the pipeline is a package-level variable.
type Context struct {
	log   hal.Logger
	bufs  *fbmem.Set
	sched *flush.Scheduler
	disp  *scene.Display
	demo  *demoScreen

	sleep   func(time.Duration)
	stalled bool
}

// New places the draw buffers, brings up the panel and builds the demo
// screen. It fails only when the primary draw buffer cannot be placed, which
// wraps fbmem.ErrAllocation: without a buffer nothing can be rendered.
//
// A panel that fails to initialize is logged and left dark; flushes are then
// dropped until a restart.
func New(h hal.HAL, cfg config.Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := h.Logger()
	logf(log, "rgbpanel %s", buildinfo.Short())

	arena := fbmem.NewArena(h.Memory(), cfg.Tiers...)
	logMemory(log, arena)

	bufs, err := fbmem.AcquireSet(arena, fbmem.SetRequest{
		Tiers:     cfg.Tiers,
		LineBytes: cfg.LineBytes(),
		Lines:     cfg.BufferLines,
		MinLines:  cfg.MinBufferLines,
		Double:    cfg.Buffering == flush.Double,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("draw buffer: %w", err)
	}

	maxConvert := cfg.MaxConvertBytes
	if maxConvert == 0 {
		maxConvert = bufs.Primary.Cap() / cfg.UIFormat.BytesPerPixel() * cfg.Panel.WireFormat.BytesPerPixel()
	}

	sched := flush.New(flush.Config{
		Panel:    cfg.Panel,
		UIFormat: cfg.UIFormat,
		Policy:   cfg.Policy(),
		Ticks:    h.Ticks(),
	}, h.Panel(), bufs, pixel.NewConverter(maxConvert), log)

	disp := scene.New(cfg.Panel.Width, cfg.Panel.Height, cfg.UIFormat, sched, h.Ticks())
	disp.SetFlushFunc(func(a scene.Area, px []byte, last bool) {
		sched.Flush(flush.Rect(a), px, last)
	})
	sched.SetReadier(disp)

	c := &Context{
		log:   log,
		bufs:  bufs,
		sched: sched,
		disp:  disp,
		sleep: time.Sleep,
	}

	if err := sched.Init(); err != nil {
		logf(log, "app: %v; panel stays dark", err)
	} else if bl := h.Backlight(); bl != nil {
		bl.High()
	}
	logBuffers(log, cfg, bufs, sched.Policy())

	c.demo = newDemoScreen(disp)
	disp.AddTimer(heartbeatPeriod, func(*scene.Timer) { logHeartbeat(log, sched.Stats()) })
	return c, nil
}

// Step runs one tick of the UI: timers, rendering and flushes, then the
// software pacing delay if the tear policy asks for one.
func (c *Context) Step() error {
	err := c.disp.Handler()
	switch {
	case errors.Is(err, scene.ErrFlushPending):
		if !c.stalled {
			logf(c.log, "app: %v", err)
		}
		c.stalled = true
	case err != nil:
		return err
	default:
		c.stalled = false
	}
	if d := c.sched.Policy().Delay(); d > 0 && c.sleep != nil {
		c.sleep(d)
	}
	return nil
}

// Scheduler exposes the flush path for diagnostics.
func (c *Context) Scheduler() *flush.Scheduler { return c.sched }

// Display exposes the screen.
func (c *Context) Display() *scene.Display { return c.disp }

// Buffers exposes the draw buffer placement.
func (c *Context) Buffers() *fbmem.Set { return c.bufs }

// NewStep adapts New to the host runners: it returns the per-tick function.
func NewStep(cfg config.Config) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		c, err := New(h, cfg)
		if err != nil {
			return nil, err
		}
		return c.Step, nil
	}
}

// Run starts the pipeline with the board's defaults and never returns
// (TinyGo entrypoint). A primary buffer allocation failure halts.
func Run(h hal.HAL) {
	defer haltOnPanic(h)
	cfg := config.ForPanel(h.PanelConfig())
	// Boards without PSRAM get a shorter strip rather than none.
	cfg.MinBufferLines = min(cfg.BufferLines, 10)
	c, err := New(h, cfg)
	if err != nil {
		halt(h, err)
	}
	for {
		if err := c.Step(); err != nil {
			logf(h.Logger(), "app: %v", err)
		}
	}
}

func logf(log hal.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}
