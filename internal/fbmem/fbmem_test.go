package fbmem

import (
	"errors"
	"strings"
	"testing"

	"rgbpanel/hal"
)

type memLog struct{ lines []string }

func (l *memLog) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLog) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

func (l *memLog) contains(sub string) bool {
	for _, s := range l.lines {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const lineBytes = 800 * 3

func TestCandidates_Order(t *testing.T) {
	tiers := []Tier{hal.TierSPIRAM, hal.TierInternal}

	got := Candidates(tiers, 10, 120, 0)
	if len(got) != 2 || got[0].Tier != hal.TierSPIRAM || got[1].Tier != hal.TierInternal || got[0].Size != 1200 {
		t.Fatalf("Candidates(no shrink) = %v", got)
	}

	got = Candidates(tiers, 10, 120, 20)
	var lines []int
	for i, c := range got {
		if c.Tier != tiers[i%2] {
			t.Fatalf("candidate %d tier %s; want %s", i, c.Tier, tiers[i%2])
		}
		if c.Size != c.Lines*10 {
			t.Fatalf("candidate %d size %d; want %d", i, c.Size, c.Lines*10)
		}
		if i%2 == 0 {
			lines = append(lines, c.Lines)
		}
	}
	want := []int{120, 60, 30, 20}
	if len(lines) != len(want) {
		t.Fatalf("line steps = %v; want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line steps = %v; want %v", lines, want)
		}
	}
}

func TestAcquire_FallsBackToNextTier(t *testing.T) {
	arena := NewArena(hal.Budgets{hal.TierInternal: 1 << 20}, hal.TierSPIRAM, hal.TierInternal)
	size := lineBytes * 120

	fb, out, err := Acquire(arena, Candidates([]Tier{hal.TierSPIRAM, hal.TierInternal}, lineBytes, 120, 0))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if fb.Tier() != hal.TierInternal || fb.Cap() != size || len(fb.Bytes()) != size {
		t.Fatalf("buffer tier=%s cap=%d; want internal/%d", fb.Tier(), fb.Cap(), size)
	}
	if out.Index != 1 || len(out.Failures) != 1 || !errors.Is(out.Failures[0].Err, ErrTierUnavailable) {
		t.Fatalf("outcome = %+v; want index 1 after one unavailable tier", out)
	}

	fb.Release()
	if fb.Live() {
		t.Fatalf("released buffer still live")
	}
	if s := arena.Stats(); len(s) != 1 || s[0].Used != 0 {
		t.Fatalf("stats after release = %+v", s)
	}
}

func TestAcquire_AllTiersFail(t *testing.T) {
	arena := NewArena(hal.Budgets{hal.TierInternal: 1024}, hal.TierSPIRAM, hal.TierInternal)

	fb, out, err := Acquire(arena, Candidates([]Tier{hal.TierSPIRAM, hal.TierInternal}, lineBytes, 120, 0))
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("err = %v; want ErrAllocation", err)
	}
	if fb != nil || out.Index != -1 || len(out.Failures) != 2 {
		t.Fatalf("fb=%v outcome=%+v; want nil, index -1, two failures", fb, out)
	}
	if !errors.Is(out.Failures[1].Err, ErrTierExhausted) {
		t.Fatalf("internal failure = %v; want ErrTierExhausted", out.Failures[1].Err)
	}
}

func TestAcquire_Shrinks(t *testing.T) {
	arena := NewArena(hal.Budgets{hal.TierInternal: lineBytes * 40}, hal.TierInternal)

	fb, _, err := Acquire(arena, Candidates([]Tier{hal.TierInternal}, lineBytes, 120, 10))
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if fb.Lines() != 30 || fb.Cap() != lineBytes*30 {
		t.Fatalf("lines=%d cap=%d; want 30 lines", fb.Lines(), fb.Cap())
	}
}

func TestAcquireSet_Double(t *testing.T) {
	arena := NewArena(hal.Budgets{hal.TierSPIRAM: 8 << 20}, hal.TierSPIRAM, hal.TierInternal)
	log := &memLog{}

	set, err := AcquireSet(arena, SetRequest{
		Tiers:     []Tier{hal.TierSPIRAM, hal.TierInternal},
		LineBytes: lineBytes,
		Lines:     120,
		Double:    true,
	}, log)
	if err != nil {
		t.Fatalf("AcquireSet: %v", err)
	}
	if !set.Double() || set.Degraded {
		t.Fatalf("Double=%v Degraded=%v; want double", set.Double(), set.Degraded)
	}
	if set.Primary.Cap() != set.Secondary.Cap() {
		t.Fatalf("buffer sizes differ: %d vs %d", set.Primary.Cap(), set.Secondary.Cap())
	}
	if &set.Primary.Bytes()[0] == &set.Secondary.Bytes()[0] {
		t.Fatalf("buffers alias")
	}
	if !log.contains("double buffering enabled") {
		t.Fatalf("log = %q", log.lines)
	}

	set.Release()
	if s := arena.Stats(); s[0].Used != 0 {
		t.Fatalf("used after release = %d", s[0].Used)
	}
}

func TestAcquireSet_SecondaryDegrades(t *testing.T) {
	// Room for exactly one 120-line buffer.
	arena := NewArena(hal.Budgets{hal.TierInternal: lineBytes * 120}, hal.TierSPIRAM, hal.TierInternal)
	log := &memLog{}

	set, err := AcquireSet(arena, SetRequest{
		Tiers:     []Tier{hal.TierSPIRAM, hal.TierInternal},
		LineBytes: lineBytes,
		Lines:     120,
		Double:    true,
	}, log)
	if err != nil {
		t.Fatalf("AcquireSet: %v", err)
	}
	if set.Double() || !set.Degraded || set.Secondary != nil {
		t.Fatalf("Double=%v Degraded=%v; want degraded single", set.Double(), set.Degraded)
	}
	if set.Primary.Lines() != 120 {
		t.Fatalf("primary lines = %d", set.Primary.Lines())
	}
	if !log.contains("using single buffer") {
		t.Fatalf("log = %q", log.lines)
	}
}

func TestAcquireSet_PrimaryFailureIsCritical(t *testing.T) {
	arena := NewArena(hal.Budgets{}, hal.TierSPIRAM, hal.TierInternal)
	log := &memLog{}

	set, err := AcquireSet(arena, SetRequest{
		Tiers:     []Tier{hal.TierSPIRAM, hal.TierInternal},
		LineBytes: lineBytes,
		Lines:     120,
	}, log)
	if !errors.Is(err, ErrAllocation) || set != nil {
		t.Fatalf("set=%v err=%v; want ErrAllocation", set, err)
	}
	if !log.contains("CRITICAL") {
		t.Fatalf("log = %q; want a CRITICAL line", log.lines)
	}
}

func TestArena_Stats(t *testing.T) {
	arena := NewArena(hal.Budgets{hal.TierSPIRAM: 4096, hal.TierInternal: 1024}, hal.TierInternal, hal.TierSPIRAM, hal.TierDMA)
	if _, err := arena.Alloc(hal.TierInternal, 1000); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if _, err := arena.Alloc(hal.TierInternal, 100); !errors.Is(err, ErrTierExhausted) {
		t.Fatalf("over budget err = %v", err)
	}
	if _, err := arena.Alloc(hal.TierDMA, 1); !errors.Is(err, ErrTierUnavailable) {
		t.Fatalf("zero-budget tier err = %v", err)
	}

	s := arena.Stats()
	if len(s) != 2 || s[0].Tier > s[1].Tier {
		t.Fatalf("stats = %+v; want two tiers in order", s)
	}
	for _, st := range s {
		if st.Tier == hal.TierInternal && st.Free() != 24 {
			t.Fatalf("internal free = %d; want 24", st.Free())
		}
	}
}
