package hal

import "time"

// monoClock counts milliseconds since it was created. The value wraps after
// about 49 days, which the toolkit's tick arithmetic tolerates.
type monoClock struct {
	start time.Time
	now   func() time.Time
}

func newMonoClock(now func() time.Time) *monoClock {
	return &monoClock{start: now(), now: now}
}

func (c *monoClock) NowMillis() uint32 {
	return uint32(c.now().Sub(c.start) / time.Millisecond)
}
