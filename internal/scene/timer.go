package scene

// Timer calls its callback every period milliseconds of the display clock.
type Timer struct {
	period uint32
	last   uint32
	cb     func(*Timer)
	paused bool
	runs   uint64
}

// AddTimer registers cb to run every period ms from now.
func (d *Display) AddTimer(period uint32, cb func(*Timer)) *Timer {
	t := &Timer{period: period, cb: cb}
	if d.clock != nil {
		t.last = d.clock.NowMillis()
	}
	d.timers = append(d.timers, t)
	return t
}

// Pause stops the timer from firing until Resume.
func (t *Timer) Pause() { t.paused = true }

// Resume restarts a paused timer.
func (t *Timer) Resume() { t.paused = false }

// Runs counts how many times the callback fired.
func (t *Timer) Runs() uint64 { return t.runs }

func (t *Timer) run(now uint32) {
	if t.paused || t.cb == nil || t.period == 0 {
		return
	}
	// Unsigned subtraction keeps working across the 32-bit wrap.
	if now-t.last < t.period {
		return
	}
	// Catch up by whole periods so the cadence does not drift.
	t.last += (now - t.last) / t.period * t.period
	t.runs++
	t.cb(t)
}
