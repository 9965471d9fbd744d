package flush

import (
	"fmt"
	"time"

	"rgbpanel/hal"
)

// TearMode selects how presentation is kept clear of the panel scan.
type TearMode uint8

const (
	// DriverSync lets the panel driver hold each transfer until the scan is
	// in a safe window. Present may block for up to one refresh period.
	DriverSync TearMode = iota + 1
	// SoftwarePaced presents immediately; the tick loop sleeps a fixed delay
	// per iteration to approximate the refresh cadence.
	SoftwarePaced
)

func (m TearMode) String() string {
	switch m {
	case DriverSync:
		return "driver-sync"
	case SoftwarePaced:
		return "software-paced"
	default:
		return fmt.Sprintf("TearMode(%d)", uint8(m))
	}
}

// ParseTearMode maps a mode name (as printed by String) to a TearMode.
func ParseTearMode(s string) (TearMode, error) {
	switch s {
	case "driver-sync":
		return DriverSync, nil
	case "software-paced":
		return SoftwarePaced, nil
	}
	return 0, fmt.Errorf("unknown tear mode %q", s)
}

// Buffering is the number of draw buffers in rotation.
type Buffering uint8

const (
	Single Buffering = iota + 1
	Double
)

func (b Buffering) String() string {
	switch b {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("Buffering(%d)", uint8(b))
	}
}

// ParseBuffering maps "single" or "double" to a Buffering.
func ParseBuffering(s string) (Buffering, error) {
	switch s {
	case "single":
		return Single, nil
	case "double":
		return Double, nil
	}
	return 0, fmt.Errorf("unknown buffering mode %q", s)
}

// DefaultTickDelay is the per-iteration sleep of the software-paced loop.
const DefaultTickDelay = 5 * time.Millisecond

// Policy is fixed at configuration time.
type Policy struct {
	Mode      TearMode
	Buffering Buffering
	// TickDelay is slept once per tick in SoftwarePaced mode.
	TickDelay time.Duration
}

// Delay returns the pause the tick loop must insert after each tick.
func (p Policy) Delay() time.Duration {
	if p.Mode != SoftwarePaced {
		return 0
	}
	if p.TickDelay <= 0 {
		return DefaultTickDelay
	}
	return p.TickDelay
}

// apply configures the presenter for the policy and returns the policy that
// is actually in effect. A presenter that cannot sync to its scan drops the
// policy to SoftwarePaced.
func (p Policy) apply(panel hal.Presenter, log hal.Logger) Policy {
	switch p.Mode {
	case DriverSync:
		syncer, ok := panel.(hal.ScanSyncer)
		if !ok {
			p.Mode = SoftwarePaced
			logf(log, "flush: panel has no scan sync, falling back to %s (%s per tick)", SoftwarePaced, p.Delay())
			return p
		}
		if err := syncer.SetScanSync(true); err != nil {
			p.Mode = SoftwarePaced
			logf(log, "flush: enabling scan sync: %v; falling back to %s (%s per tick)", err, SoftwarePaced, p.Delay())
			return p
		}
	case SoftwarePaced:
		if syncer, ok := panel.(hal.ScanSyncer); ok {
			if err := syncer.SetScanSync(false); err != nil {
				logf(log, "flush: disabling scan sync: %v", err)
			}
		}
	default:
		p.Mode = SoftwarePaced
	}
	return p
}
