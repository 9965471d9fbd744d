// Package fbmem places the toolkit's draw buffers in memory tiers.
//
// Placement is an ordered list of (tier, size) candidates tried in sequence;
// the candidate that succeeded, and every attempt before it, is reported in an
// Outcome so callers and tests can see where a buffer landed.
package fbmem

import (
	"errors"
	"fmt"

	"rgbpanel/hal"
)

var (
	// ErrAllocation means no candidate could be satisfied.
	ErrAllocation = errors.New("framebuffer allocation failed")
	// ErrTierUnavailable means the board has no memory in the tier.
	ErrTierUnavailable = errors.New("memory tier unavailable")
	// ErrTierExhausted means the tier cannot fit the request.
	ErrTierExhausted = errors.New("memory tier exhausted")
)

// Tier is a memory tier as named by the HAL.
type Tier = hal.MemoryTier

// Heap hands out raw memory from a tier.
type Heap interface {
	Alloc(tier Tier, size int) ([]byte, error)
	Free(tier Tier, buf []byte)
}

// Candidate is one placement attempt.
type Candidate struct {
	Tier  Tier
	Size  int
	Lines int
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s/%dB/%dlines", c.Tier, c.Size, c.Lines)
}

// Attempt records a failed candidate.
type Attempt struct {
	Candidate Candidate
	Err       error
}

// Outcome describes how a buffer was placed.
type Outcome struct {
	Chosen   Candidate
	Index    int
	Failures []Attempt
}

// FrameBuffer is a contiguous draw buffer of fixed capacity.
type FrameBuffer struct {
	buf   []byte
	tier  Tier
	lines int
	heap  Heap
	live  bool
}

func (fb *FrameBuffer) Bytes() []byte { return fb.buf }
func (fb *FrameBuffer) Tier() Tier    { return fb.tier }
func (fb *FrameBuffer) Cap() int      { return len(fb.buf) }
func (fb *FrameBuffer) Lines() int    { return fb.lines }
func (fb *FrameBuffer) Live() bool    { return fb != nil && fb.live }

// Release returns the memory to its tier. The buffer must not be used afterwards.
func (fb *FrameBuffer) Release() {
	if fb == nil || !fb.live {
		return
	}
	if fb.heap != nil {
		fb.heap.Free(fb.tier, fb.buf)
	}
	fb.buf = nil
	fb.live = false
}

// Candidates builds the placement order: every tier at the full line count,
// then every tier at half the lines, and so on down to minLines.
// lineBytes is the size of one scan line (panel width * bytes per pixel).
func Candidates(tiers []Tier, lineBytes, lines, minLines int) []Candidate {
	if minLines <= 0 || minLines > lines {
		minLines = lines
	}
	if lines <= 0 {
		return nil
	}
	steps := []int{lines}
	for n := lines / 2; n >= minLines; n /= 2 {
		steps = append(steps, n)
	}
	if steps[len(steps)-1] != minLines {
		steps = append(steps, minLines)
	}

	var out []Candidate
	for _, n := range steps {
		for _, t := range tiers {
			out = append(out, Candidate{Tier: t, Size: lineBytes * n, Lines: n})
		}
	}
	return out
}

// Acquire tries candidates in order and returns the first buffer obtained.
// The buffer's capacity equals the chosen candidate's size exactly.
func Acquire(h Heap, candidates []Candidate) (*FrameBuffer, Outcome, error) {
	var out Outcome
	for i, c := range candidates {
		if c.Size <= 0 {
			out.Failures = append(out.Failures, Attempt{Candidate: c, Err: ErrTierExhausted})
			continue
		}
		buf, err := h.Alloc(c.Tier, c.Size)
		if err != nil {
			out.Failures = append(out.Failures, Attempt{Candidate: c, Err: err})
			continue
		}
		out.Chosen = c
		out.Index = i
		return &FrameBuffer{buf: buf[:c.Size], tier: c.Tier, lines: c.Lines, heap: h, live: true}, out, nil
	}
	out.Index = -1
	return nil, out, fmt.Errorf("%w: %d candidates tried", ErrAllocation, len(candidates))
}
