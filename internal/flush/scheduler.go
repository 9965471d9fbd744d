// Package flush moves dirty rectangles from the UI toolkit to the panel.
//
// The toolkit calls Scheduler.Flush synchronously from its render loop. Each
// call validates the rectangle, converts the pixels to the panel's wire
// format if needed, presents them, and then signals flush-complete back to
// the toolkit. The completion signal is sent for every call, including the
// ones that were dropped, because the toolkit uses it only to reclaim its
// draw buffer: a missing signal stalls the UI forever.
package flush

import (
	"errors"
	"fmt"

	"rgbpanel/hal"
	"rgbpanel/internal/fbmem"
	"rgbpanel/internal/pixel"
)

var (
	// ErrOutOfBounds is a dirty rectangle outside the panel.
	ErrOutOfBounds = errors.New("dirty rectangle out of panel bounds")
	// ErrNotInitialized is a flush requested before Init succeeded.
	ErrNotInitialized = errors.New("flush before panel init")
)

// Readier is the toolkit's flush-complete signal.
type Readier interface {
	FlushReady()
}

// ReadyFunc adapts a function to Readier.
type ReadyFunc func()

func (f ReadyFunc) FlushReady() { f() }

// Config is the scheduler's slice of the configuration surface.
type Config struct {
	Panel hal.PanelConfig
	// UIFormat is the encoding the toolkit renders in.
	UIFormat hal.PixelFormat
	Policy   Policy
	// Ticks timestamps frame boundaries. Optional.
	Ticks hal.TickSource
}

// Stats counts what happened to flush requests.
type Stats struct {
	Requests  uint64
	Presented uint64
	Completed uint64
	Frames    uint64

	DroppedBounds     uint64
	DroppedUninit     uint64
	DroppedShortSpan  uint64
	DroppedConversion uint64
	PresentErrors     uint64

	Swaps uint64
	// LastFrameMillis is the tick count at the most recent frame boundary.
	LastFrameMillis uint32
}

// Dropped is the total number of requests that never reached the panel.
func (s Stats) Dropped() uint64 {
	return s.DroppedBounds + s.DroppedUninit + s.DroppedShortSpan + s.DroppedConversion
}

// Scheduler is the flush path. It is driven from a single goroutine.
type Scheduler struct {
	cfg    Config
	panel  hal.Presenter
	conv   *pixel.Converter
	bufs   *fbmem.Set
	log    hal.Logger
	ready  Readier
	policy Policy
	inited bool

	// render is where the toolkit draws; front holds the last complete frame.
	// They are the same buffer in single mode.
	render *fbmem.FrameBuffer
	front  *fbmem.FrameBuffer

	stats Stats
}

// New builds a scheduler over an already placed buffer set. The effective
// buffering follows the set: a Double policy over a degraded set runs single.
func New(cfg Config, panel hal.Presenter, bufs *fbmem.Set, conv *pixel.Converter, log hal.Logger) *Scheduler {
	if conv == nil {
		conv = pixel.NewConverter(0)
	}
	s := &Scheduler{
		cfg:    cfg,
		panel:  panel,
		conv:   conv,
		bufs:   bufs,
		log:    log,
		policy: cfg.Policy,
	}
	if bufs != nil {
		s.render = bufs.Primary
		s.front = bufs.Primary
		if cfg.Policy.Buffering == Double && bufs.Double() {
			s.front = bufs.Secondary
		} else {
			s.policy.Buffering = Single
		}
	}
	return s
}

// SetReadier registers the toolkit's flush-complete signal.
func (s *Scheduler) SetReadier(r Readier) { s.ready = r }

// Init brings up the panel and applies the tear policy.
func (s *Scheduler) Init() error {
	if s.panel == nil {
		return fmt.Errorf("flush init: %w", hal.ErrNotImplemented)
	}
	if err := s.panel.Init(s.cfg.Panel); err != nil {
		return fmt.Errorf("panel init: %w", err)
	}
	s.policy = s.policy.apply(s.panel, s.log)
	s.inited = true
	logf(s.log, "flush: panel %dx%d %s, ui %s, %s, %s buffering",
		s.cfg.Panel.Width, s.cfg.Panel.Height, s.cfg.Panel.WireFormat, s.cfg.UIFormat, s.policy.Mode, s.policy.Buffering)
	return nil
}

// Policy returns the policy in effect after Init.
func (s *Scheduler) Policy() Policy { return s.policy }

// Stats returns a copy of the counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// RenderBuffer is the buffer the toolkit draws the next rectangle into.
func (s *Scheduler) RenderBuffer() []byte {
	if s.render == nil {
		return nil
	}
	return s.render.Bytes()
}

// RenderLines is the number of panel lines that fit the render buffer.
func (s *Scheduler) RenderLines() int {
	if s.render == nil {
		return 0
	}
	return s.render.Lines()
}

// Buffers returns the buffer set the scheduler draws from.
func (s *Scheduler) Buffers() *fbmem.Set { return s.bufs }

// FrontBuffer is the buffer holding the last complete frame.
func (s *Scheduler) FrontBuffer() []byte {
	if s.front == nil {
		return nil
	}
	return s.front.Bytes()
}

// Flush presents one dirty rectangle. last marks the final rectangle of a
// frame; buffers only swap after it, even when that rectangle is dropped.
// Flush always signals completion.
func (s *Scheduler) Flush(r Rect, pixels []byte, last bool) {
	s.stats.Requests++
	defer s.complete()

	if err := s.present(r, pixels); err != nil {
		s.drop(r, err)
	}
	if last {
		s.endFrame()
	}
}

func (s *Scheduler) present(r Rect, pixels []byte) error {
	if !s.inited {
		return ErrNotInitialized
	}
	if err := r.Check(s.cfg.Panel.Width, s.cfg.Panel.Height); err != nil {
		return err
	}

	w, h := r.Width(), r.Height()
	data, err := s.conv.Convert(pixels, w, h, s.cfg.UIFormat, s.cfg.Panel.WireFormat)
	if err != nil {
		return err
	}

	if err := s.panel.Present(r.X1, r.Y1, w, h, data); err != nil {
		s.stats.PresentErrors++
		logf(s.log, "flush: present %s: %v", r, err)
		return nil
	}
	s.stats.Presented++
	return nil
}

func (s *Scheduler) drop(r Rect, err error) {
	switch {
	case errors.Is(err, ErrNotInitialized):
		s.stats.DroppedUninit++
	case errors.Is(err, ErrOutOfBounds):
		s.stats.DroppedBounds++
	case errors.Is(err, pixel.ErrShortSpan):
		s.stats.DroppedShortSpan++
	default:
		s.stats.DroppedConversion++
	}
	logf(s.log, "flush: dropped %s: %v", r, err)
}

// endFrame swaps render and front in double mode. It is the only place the
// render target changes, so a frame's rectangles all land in one buffer.
func (s *Scheduler) endFrame() {
	s.stats.Frames++
	if s.cfg.Ticks != nil {
		s.stats.LastFrameMillis = s.cfg.Ticks.NowMillis()
	}
	if s.policy.Buffering != Double || s.render == s.front {
		return
	}
	s.render, s.front = s.front, s.render
	s.stats.Swaps++
}

func (s *Scheduler) complete() {
	s.stats.Completed++
	if s.ready != nil {
		s.ready.FlushReady()
	}
}

func logf(log hal.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}
