package core

// Countdown is a duration in milliseconds decremented by simulation time.
// Every "do X after N ms" effect is a Countdown checked each tick.
type Countdown float64

// Set starts (or restarts) the countdown.
func (c *Countdown) Set(ms float64) {
	if ms < 0 {
		ms = 0
	}
	*c = Countdown(ms)
}

// Stop cancels the countdown.
func (c *Countdown) Stop() {
	*c = 0
}

// Active reports whether time remains.
func (c Countdown) Active() bool {
	return c > 0
}

// Remaining returns the milliseconds left.
func (c Countdown) Remaining() float64 {
	return float64(c)
}

// Tick advances the countdown by dt milliseconds.
// Returns true only on the tick where it reaches zero.
func (c *Countdown) Tick(dt float64) bool {
	if *c <= 0 {
		return false
	}
	*c -= Countdown(dt)
	if *c <= 0 {
		*c = 0
		return true
	}
	return false
}
