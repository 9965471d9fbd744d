package fbmem

import (
	"fmt"
	"sort"

	"rgbpanel/hal"
)

// Arena is a Heap that enforces per-tier byte budgets. The backing memory
// comes from the Go heap; the budget is what decides whether a tier can take
// another buffer.
type Arena struct {
	tiers map[Tier]*tierState
}

type tierState struct {
	capacity int
	used     int
}

// TierStats is one tier's accounting.
type TierStats struct {
	Tier     Tier
	Capacity int
	Used     int
}

func (s TierStats) Free() int { return s.Capacity - s.Used }

// NewArena builds an arena from the board's memory budgets for the given tiers.
func NewArena(mem hal.Memory, tiers ...Tier) *Arena {
	a := &Arena{tiers: make(map[Tier]*tierState, len(tiers))}
	for _, t := range tiers {
		if mem == nil {
			continue
		}
		if n := mem.Budget(t); n > 0 {
			a.tiers[t] = &tierState{capacity: n}
		}
	}
	return a
}

func (a *Arena) Alloc(tier Tier, size int) ([]byte, error) {
	st, ok := a.tiers[tier]
	if !ok {
		return nil, fmt.Errorf("%s: %w", tier, ErrTierUnavailable)
	}
	if size <= 0 || st.used+size > st.capacity {
		return nil, fmt.Errorf("%s: %d bytes requested, %d free: %w", tier, size, st.capacity-st.used, ErrTierExhausted)
	}
	st.used += size
	return make([]byte, size), nil
}

func (a *Arena) Free(tier Tier, buf []byte) {
	st, ok := a.tiers[tier]
	if !ok {
		return
	}
	st.used -= len(buf)
	if st.used < 0 {
		st.used = 0
	}
}

// Stats returns per-tier accounting ordered by tier.
func (a *Arena) Stats() []TierStats {
	out := make([]TierStats, 0, len(a.tiers))
	for t, st := range a.tiers {
		out = append(out, TierStats{Tier: t, Capacity: st.capacity, Used: st.used})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tier < out[j].Tier })
	return out
}
