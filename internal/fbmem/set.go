package fbmem

import (
	"fmt"

	"rgbpanel/hal"
)

// SetRequest describes the draw buffers to place.
type SetRequest struct {
	Tiers     []Tier
	LineBytes int
	Lines     int
	// MinLines allows the primary buffer to shrink by halving down to this
	// many lines. Zero keeps the full line count.
	MinLines int
	Double   bool
}

// Set owns the one or two draw buffers for the life of the process.
type Set struct {
	Primary   *FrameBuffer
	Secondary *FrameBuffer

	PrimaryOutcome   Outcome
	SecondaryOutcome Outcome
	// Degraded is true when Double was requested but only one buffer fit.
	Degraded bool
}

// Double reports whether two buffers are available.
func (s *Set) Double() bool { return s != nil && s.Secondary.Live() }

// Release frees both buffers.
func (s *Set) Release() {
	if s == nil {
		return
	}
	s.Primary.Release()
	s.Secondary.Release()
}

// AcquireSet places the primary buffer and, if requested, a secondary one of
// the same size. Failing to place the primary is fatal and returns
// ErrAllocation; failing to place the secondary only degrades the set to
// single buffering.
func AcquireSet(h Heap, req SetRequest, log hal.Logger) (*Set, error) {
	if req.LineBytes <= 0 || req.Lines <= 0 || len(req.Tiers) == 0 {
		return nil, fmt.Errorf("%w: empty request (line bytes %d, lines %d, %d tiers)",
			ErrAllocation, req.LineBytes, req.Lines, len(req.Tiers))
	}

	primary, pout, err := Acquire(h, Candidates(req.Tiers, req.LineBytes, req.Lines, req.MinLines))
	if err != nil {
		logf(log, "fbmem: CRITICAL: primary buffer: %v", err)
		for _, a := range pout.Failures {
			logf(log, "fbmem:   %s: %v", a.Candidate, a.Err)
		}
		return nil, err
	}
	logf(log, "fbmem: buffer 1: %d bytes in %s (%d lines)", primary.Cap(), primary.Tier(), primary.Lines())

	set := &Set{Primary: primary, PrimaryOutcome: pout}
	if !req.Double {
		return set, nil
	}

	// The secondary follows the same tier order at the size the primary got.
	secondary, sout, err := Acquire(h, Candidates(req.Tiers, req.LineBytes, primary.Lines(), primary.Lines()))
	set.SecondaryOutcome = sout
	if err != nil {
		set.Degraded = true
		logf(log, "fbmem: buffer 2 allocation failed, using single buffer: %v", err)
		return set, nil
	}
	set.Secondary = secondary
	logf(log, "fbmem: buffer 2: %d bytes in %s (double buffering enabled)", secondary.Cap(), secondary.Tier())
	return set, nil
}

func logf(log hal.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}
